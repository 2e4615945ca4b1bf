// Package graphio reads and writes the plain-text graph formats of the
// anonymizer: adjacency lists, vertex-labelled adjacency lists, and edge
// lists. Input files are assumed well-formed beyond the header; malformed
// bodies yield undefined adjacency rather than a structured error.
package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/privgraph/graphanon/pkg/graph"
)

// Format identifies a plain-text graph representation.
type Format string

const (
	// AdjacencyList has a header line with the vertex count, then one line
	// per vertex listing its neighbour ids.
	AdjacencyList Format = "adjlist"
	// AdjacencyListLabelled has a header with vertex count and alphabet
	// size, then one line per vertex: its label followed by neighbour ids.
	AdjacencyListLabelled Format = "adjlist-labelled"
	// EdgeList has a header line with the vertex count, then one line per
	// edge with its two endpoints.
	EdgeList Format = "edgelist"
)

// ErrBadHeader is returned when the first line of an input does not contain
// the expected counts.
var ErrBadHeader = fmt.Errorf("malformed graph header")

// ParseFormat maps a configuration string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case AdjacencyList, AdjacencyListLabelled, EdgeList:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown graph format %q", s)
}

// ReadGraph parses an unlabelled graph from r in the given format.
func ReadGraph(r io.Reader, format Format) (*graph.Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, err := readHeader(scanner, 1)
	if err != nil {
		return nil, err
	}
	g := graph.New(header[0])

	switch format {
	case AdjacencyList:
		for u := 0; u < g.NumVertices() && scanner.Scan(); u++ {
			for _, field := range strings.Fields(scanner.Text()) {
				v, err := strconv.Atoi(field)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: parsing neighbour %q: %w", u, field, err)
				}
				g.AddEdge(u, v)
			}
		}
	case EdgeList:
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("edge line %q: need two endpoints", scanner.Text())
			}
			u, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("parsing edge source %q: %w", fields[0], err)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("parsing edge target %q: %w", fields[1], err)
			}
			g.AddEdge(u, v)
		}
	default:
		return nil, fmt.Errorf("format %q does not describe an unlabelled graph", format)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	return g, nil
}

// ReadLabelled parses a vertex-labelled graph from r in the labelled
// adjacency list format.
func ReadLabelled(r io.Reader) (*graph.Labelled, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, err := readHeader(scanner, 2)
	if err != nil {
		return nil, err
	}
	lg, err := graph.NewLabelled(header[0], header[1])
	if err != nil {
		return nil, err
	}

	for u := 0; u < lg.NumVertices() && scanner.Scan(); u++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			return nil, fmt.Errorf("vertex %d: missing label", u)
		}
		l, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("vertex %d: parsing label %q: %w", u, fields[0], err)
		}
		if err := lg.SetLabel(u, l); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", u, err)
		}
		for _, field := range fields[1:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: parsing neighbour %q: %w", u, field, err)
			}
			lg.AddEdge(u, v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	return lg, nil
}

// WriteGraph emits g to w: a header with the vertex count, then the sorted
// neighbour ids of each vertex in id order (adjacency list), or one line per
// edge (edge list).
func WriteGraph(w io.Writer, g *graph.Graph, format Format) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, g.NumVertices()); err != nil {
		return err
	}

	switch format {
	case AdjacencyList:
		for v := 0; v < g.NumVertices(); v++ {
			if err := writeNeighbours(bw, g, v, ""); err != nil {
				return err
			}
		}
	case EdgeList:
		for v := 0; v < g.NumVertices(); v++ {
			for _, u := range sortedNeighbours(g, v) {
				if v < u {
					if _, err := fmt.Fprintf(bw, "%d %d\n", v, u); err != nil {
						return err
					}
				}
			}
		}
	default:
		return fmt.Errorf("format %q does not describe an unlabelled graph", format)
	}
	return bw.Flush()
}

// WriteLabelled emits lg in the labelled adjacency list format.
func WriteLabelled(w io.Writer, lg *graph.Labelled) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", lg.NumVertices(), lg.Alphabet()); err != nil {
		return err
	}
	for v := 0; v < lg.NumVertices(); v++ {
		if err := writeNeighbours(bw, lg.Graph, v, strconv.Itoa(lg.Label(v))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadFile reads an unlabelled graph from a file.
func LoadFile(path string, format Format) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()
	return ReadGraph(f, format)
}

// LoadLabelledFile reads a labelled graph from a file.
func LoadLabelledFile(path string) (*graph.Labelled, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()
	return ReadLabelled(f)
}

func readHeader(scanner *bufio.Scanner, want int) ([]int, error) {
	if !scanner.Scan() {
		return nil, ErrBadHeader
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < want {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrBadHeader, len(fields), want)
	}
	out := make([]int, want)
	for i := 0; i < want; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
		}
		out[i] = v
	}
	if out[0] < 0 {
		return nil, fmt.Errorf("%w: negative vertex count", ErrBadHeader)
	}
	return out, nil
}

func writeNeighbours(bw *bufio.Writer, g *graph.Graph, v int, prefix string) error {
	parts := make([]string, 0, g.Degree(v)+1)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for _, u := range sortedNeighbours(g, v) {
		parts = append(parts, strconv.Itoa(u))
	}
	_, err := fmt.Fprintln(bw, strings.Join(parts, " "))
	return err
}

func sortedNeighbours(g *graph.Graph, v int) []int {
	neighbours := g.Neighbors(v)
	sort.Ints(neighbours)
	return neighbours
}
