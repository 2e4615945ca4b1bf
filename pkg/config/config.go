// Package config loads the anonymizer's configuration from, in increasing
// priority: built-in defaults, graphanon.toml, GRAPHANON_* environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Modes of operation: which privacy attack the run defends against.
const (
	ModeAttribute = "attribute"
	ModeIdentity  = "identity"
)

// Config holds one anonymization run's parameters.
type Config struct {
	Mode   string `koanf:"mode"`
	Input  string `koanf:"input"`
	Output string `koanf:"output"`
	Format string `koanf:"format"`

	// Attribute-disclosure parameter.
	Alpha float64 `koanf:"alpha"`

	// Identity-disclosure parameters.
	K       int  `koanf:"k"`
	HideNew bool `koanf:"hide-new"`

	// Random graph generation (used when no input file is given).
	Vertices  int     `koanf:"vertices"`
	Occupancy float64 `koanf:"occupancy"`
	Labels    int     `koanf:"labels"`

	Seed int64 `koanf:"seed"`

	Metrics bool `koanf:"metrics"`
	SCLimit int  `koanf:"sc-limit"`

	Web   bool `koanf:"web"`
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`

	Verbosity string `koanf:"verbosity"`
}

// Load resolves the configuration. Flags may be nil (defaults, file, and
// environment only).
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"mode":      ModeAttribute,
		"input":     "",
		"output":    "",
		"format":    "adjlist-labelled",
		"alpha":     0.0,
		"k":         0,
		"hide-new":  false,
		"vertices":  0,
		"occupancy": 0.0,
		"labels":    0,
		"seed":      int64(0),
		"metrics":   false,
		"sc-limit":  8,
		"web":       false,
		"port":      8080,
		"watch":     false,
		"verbosity": "",
	}
	if err := k.Load(mapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// The config file is optional.
	_ = k.Load(file.Provider("graphanon.toml"), toml.Parser())

	if err := k.Load(env.Provider("GRAPHANON_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "GRAPHANON_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeAttribute:
		if c.Alpha <= 0 {
			return fmt.Errorf("attribute mode requires alpha > 0 (got %g)", c.Alpha)
		}
	case ModeIdentity:
		if c.K < 1 {
			return fmt.Errorf("identity mode requires k >= 1 (got %d)", c.K)
		}
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if c.Input == "" {
		if c.Vertices < 1 {
			return fmt.Errorf("without an input file, vertices must be set")
		}
		if c.Occupancy < 0 || c.Occupancy > 1 {
			return fmt.Errorf("occupancy must be in [0, 1] (got %g)", c.Occupancy)
		}
		if c.Mode == ModeAttribute && c.Labels < 1 {
			return fmt.Errorf("attribute mode without an input file requires labels >= 1")
		}
	}
	return nil
}

// mapProviderT adapts a plain map to a koanf provider.
type mapProviderT struct {
	m map[string]interface{}
}

func mapProvider(m map[string]interface{}) *mapProviderT {
	return &mapProviderT{m: m}
}

func (p *mapProviderT) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProviderT) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
