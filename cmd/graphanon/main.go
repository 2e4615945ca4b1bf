// Command graphanon anonymizes social-network-style graphs against
// attribute disclosure (alpha-proximity) and identity disclosure
// (k-degree-anonymity) attacks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/privgraph/graphanon/pkg/attribute"
	"github.com/privgraph/graphanon/pkg/config"
	"github.com/privgraph/graphanon/pkg/graph"
	"github.com/privgraph/graphanon/pkg/graphio"
	"github.com/privgraph/graphanon/pkg/identity"
	"github.com/privgraph/graphanon/pkg/logging"
	"github.com/privgraph/graphanon/pkg/metrics"
	"github.com/privgraph/graphanon/pkg/output"
	"github.com/privgraph/graphanon/pkg/watcher"
	"github.com/privgraph/graphanon/pkg/web"
)

func main() {
	f := pflag.NewFlagSet("graphanon", pflag.ExitOnError)
	f.String("mode", config.ModeAttribute, "anonymization mode: attribute or identity")
	f.String("input", "", "path to the input graph file (omit to generate a random graph)")
	f.String("output", "", "path to write the anonymized graph to")
	f.String("format", string(graphio.AdjacencyListLabelled), "graph file format: adjlist, adjlist-labelled, edgelist")
	f.Float64("alpha", 0, "attribute privacy threshold (attribute mode)")
	f.Int("k", 0, "degree anonymity threshold (identity mode)")
	f.Bool("hide-new", false, "also anonymize the vertices added during identity anonymization")
	f.Int("vertices", 0, "number of vertices in the generated random graph")
	f.Float64("occupancy", 0, "target occupancy of the generated random graph")
	f.Int("labels", 0, "label alphabet size of the generated random graph")
	f.Int64("seed", 0, "random seed (0 seeds from the clock)")
	f.Bool("metrics", false, "compute structural metrics after anonymizing")
	f.Int("sc-limit", 8, "maximum walk length for subgraph centrality (cubic per step)")
	f.Bool("web", false, "serve results over HTTP instead of printing")
	f.Int("port", 8080, "web server port")
	f.Bool("watch", false, "re-run when the input file changes (web mode)")
	f.String("verbosity", "", "log level: debug, info, warn, error")
	_ = f.Parse(os.Args[1:])

	cfg, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	setVerbosity(cfg.Verbosity)

	if cfg.Web {
		runWeb(cfg)
		return
	}

	g, lg, report, err := runOnce(cfg, nil)
	if err != nil {
		logging.Fatal("anonymization failed", "error", err)
	}
	output.PrintReport(report)
	if cfg.Output != "" {
		if err := writeResult(cfg, g, lg); err != nil {
			logging.Fatal("writing output graph", "error", err)
		}
	}
}

// runOnce loads or generates a graph, anonymizes it, and builds the report.
// In attribute mode the returned Labelled is non-nil and wraps the returned
// Graph. status may be nil.
func runOnce(cfg *config.Config, status func(phase, message string, step, total int)) (*graph.Graph, *graph.Labelled, *output.Report, error) {
	if status == nil {
		status = func(string, string, int, int) {}
	}
	rng := newRand(cfg.Seed)

	status("loading", "loading graph", 1, 3)
	g, lg, err := loadOrGenerate(cfg, rng)
	if err != nil {
		return nil, nil, nil, err
	}

	report := &output.Report{
		Mode:            cfg.Mode,
		VerticesBefore:  g.NumVertices(),
		EdgesBefore:     g.NumEdges(),
		OccupancyBefore: g.Occupancy(),
	}

	status("anonymizing", fmt.Sprintf("running %s anonymization", cfg.Mode), 2, 3)
	start := time.Now()
	switch cfg.Mode {
	case config.ModeAttribute:
		engine := attribute.NewEngine(lg)
		engine.Greedy(cfg.Alpha)
		// Greedy terminating without reaching proximality means the
		// algorithm itself is broken; do not report success.
		if !engine.IsAlphaProximal(cfg.Alpha) {
			return nil, nil, nil, fmt.Errorf("graph is not alpha-proximal after greedy: algorithm defect")
		}
	case config.ModeIdentity:
		engine := identity.NewEngine(g)
		if err := engine.HideWaldo(cfg.K, cfg.HideNew); err != nil {
			return nil, nil, nil, err
		}
		// Without --hide-new the added vertices keep their own degrees and
		// only the original vertices are guaranteed anonymous.
		if cfg.HideNew && !engine.IsAnonymous(cfg.K) {
			return nil, nil, nil, fmt.Errorf("graph is not %d-degree-anonymous after augmentation: algorithm defect", cfg.K)
		}
	}
	logging.Info("anonymization complete",
		"mode", cfg.Mode,
		"durationMs", time.Since(start).Milliseconds(),
	)

	report.VerticesAfter = g.NumVertices()
	report.EdgesAfter = g.NumEdges()
	report.OccupancyAfter = g.Occupancy()
	report.OccupancyChange = output.OccupancyChange(report.OccupancyBefore, report.OccupancyAfter)

	if cfg.Metrics {
		status("metrics", "computing graph metrics", 3, 3)
		report.Metrics = computeMetrics(g, cfg.SCLimit)
	}
	return g, lg, report, nil
}

func loadOrGenerate(cfg *config.Config, rng *rand.Rand) (*graph.Graph, *graph.Labelled, error) {
	if cfg.Mode == config.ModeAttribute {
		var lg *graph.Labelled
		var err error
		if cfg.Input != "" {
			lg, err = graphio.LoadLabelledFile(cfg.Input)
			if err != nil {
				return nil, nil, err
			}
			lg.WithRand(rng)
		} else {
			lg, err = graph.NewLabelled(cfg.Vertices, cfg.Labels)
			if err != nil {
				return nil, nil, err
			}
			lg.WithRand(rng)
			lg.EvenlyDistributeLabels()
			populate(lg.Graph, cfg.Occupancy)
		}
		return lg.Graph, lg, nil
	}

	if cfg.Input != "" {
		format, err := graphio.ParseFormat(cfg.Format)
		if err != nil {
			return nil, nil, err
		}
		g, err := graphio.LoadFile(cfg.Input, format)
		if err != nil {
			return nil, nil, err
		}
		g.WithRand(rng)
		return g, nil, nil
	}
	g := graph.New(cfg.Vertices).WithRand(rng)
	populate(g, cfg.Occupancy)
	return g, nil, nil
}

func populate(g *graph.Graph, occupancy float64) {
	n := g.NumVertices()
	numEdges := int(occupancy * float64(n) * float64(n-1) / 2)
	if !g.PopulateUniformly(numEdges) {
		logging.Warn("could not reach target occupancy", "target", occupancy)
	}
}

func computeMetrics(g *graph.Graph, scLimit int) *output.GraphMetrics {
	hp := metrics.ComputeHopPlot(g)
	return &output.GraphMetrics{
		ClusteringCoefficient: metrics.ClusteringCoefficient(g),
		AveragePathLength:     metrics.AveragePathLength(g, hp, false),
		HarmonicMean:          metrics.HarmonicMean(g, hp),
		SubgraphCentrality:    metrics.SubgraphCentrality(g, scLimit),
		SubgraphCentralityLim: scLimit,
		Components:            metrics.Components(g),
		Degrees:               metrics.ComputeDegreeStats(g),
		HopPlot:               hp,
	}
}

func writeResult(cfg *config.Config, g *graph.Graph, lg *graph.Labelled) error {
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if lg != nil {
		return graphio.WriteLabelled(f, lg)
	}
	format, err := graphio.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if format == graphio.AdjacencyListLabelled {
		format = graphio.AdjacencyList
	}
	return graphio.WriteGraph(f, g, format)
}

func runWeb(cfg *config.Config) {
	server := web.NewServer()
	ctx := context.Background()

	runAndServe := func() {
		g, lg, report, err := runOnce(cfg, server.PublishStatus)
		if err != nil {
			logging.Error("anonymization failed", "error", err)
			server.PublishStatus("failed", err.Error(), 0, 0)
			return
		}
		server.SetGraph(g, lg)
		server.SetReport(report)
		server.PublishStatus("done", "anonymization complete", 3, 3)
		if cfg.Output != "" {
			if err := writeResult(cfg, g, lg); err != nil {
				logging.Error("writing output graph", "error", err)
			}
		}
	}
	go runAndServe()

	if cfg.Watch && cfg.Input != "" {
		fw, err := watcher.NewFileWatcher(cfg.Input)
		if err != nil {
			logging.Fatal("creating watcher", "error", err)
		}
		if err := fw.Start(ctx); err != nil {
			logging.Fatal("starting watcher", "error", err)
		}
		debouncer := watcher.NewDebouncer(fw.Events(), 500*time.Millisecond, 5*time.Second)
		debouncer.Start(ctx)
		go func() {
			for range debouncer.Output() {
				logging.Info("input changed, re-running anonymization", "path", cfg.Input)
				runAndServe()
			}
		}()
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("web server failed", "error", err)
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func setVerbosity(verbosity string) {
	switch verbosity {
	case "debug":
		logging.SetLevel(slog.LevelDebug)
	case "warn":
		logging.SetLevel(slog.LevelWarn)
	case "error":
		logging.SetLevel(slog.LevelError)
	case "", "info":
		// default level
	default:
		logging.Warn("unknown verbosity, using info", "verbosity", verbosity)
	}
}
