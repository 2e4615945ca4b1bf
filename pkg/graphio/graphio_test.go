package graphio

import (
	"errors"
	"strings"
	"testing"

	"github.com/privgraph/graphanon/pkg/graph"
)

func TestParseFormat_KnownAndUnknown(t *testing.T) {
	for _, s := range []string{"adjlist", "adjlist-labelled", "edgelist"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("Expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParseFormat("graphml"); err == nil {
		t.Errorf("Expected an error for an unknown format")
	}
}

func TestReadGraph_AdjacencyList(t *testing.T) {
	input := "3\n1 2\n0\n0\n"
	g, err := ReadGraph(strings.NewReader(input), AdjacencyList)
	if err != nil {
		t.Fatalf("Expected the adjacency list to parse, got %v", err)
	}
	if g.NumVertices() != 3 {
		t.Errorf("Expected 3 vertices, got %d", g.NumVertices())
	}
	if g.NumEdges() != 2 {
		t.Errorf("Expected 2 edges, got %d", g.NumEdges())
	}
	if !g.HasEdge(0, 1) || !g.HasEdge(0, 2) {
		t.Errorf("Expected edges (0,1) and (0,2)")
	}
}

func TestReadGraph_EdgeList(t *testing.T) {
	input := "4\n0 1\n1 2\n\n2 3\n"
	g, err := ReadGraph(strings.NewReader(input), EdgeList)
	if err != nil {
		t.Fatalf("Expected the edge list to parse, got %v", err)
	}
	if g.NumEdges() != 3 {
		t.Errorf("Expected 3 edges, got %d", g.NumEdges())
	}
	if !g.HasEdge(2, 3) {
		t.Errorf("Expected edge (2,3)")
	}
}

func TestReadGraph_BadHeader(t *testing.T) {
	cases := []string{"", "abc\n", "-1\n"}
	for _, input := range cases {
		if _, err := ReadGraph(strings.NewReader(input), AdjacencyList); !errors.Is(err, ErrBadHeader) {
			t.Errorf("Expected ErrBadHeader for %q, got %v", input, err)
		}
	}
}

func TestReadGraph_RejectsLabelledFormat(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("1 2\n"), AdjacencyListLabelled); err == nil {
		t.Errorf("Expected the labelled format to be rejected for unlabelled reads")
	}
}

func TestReadGraph_BadNeighbour(t *testing.T) {
	input := "2\n1 x\n0\n"
	if _, err := ReadGraph(strings.NewReader(input), AdjacencyList); err == nil {
		t.Errorf("Expected an error for a non-numeric neighbour")
	}
}

func TestWriteGraph_RoundTripAdjacencyList(t *testing.T) {
	g := graph.New(4)
	g.AddEdge(0, 3)
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)

	var buf strings.Builder
	if err := WriteGraph(&buf, g, AdjacencyList); err != nil {
		t.Fatalf("Expected the write to succeed, got %v", err)
	}

	back, err := ReadGraph(strings.NewReader(buf.String()), AdjacencyList)
	if err != nil {
		t.Fatalf("Expected the round trip to parse, got %v", err)
	}
	if back.NumVertices() != 4 || back.NumEdges() != 3 {
		t.Errorf("Expected 4 vertices and 3 edges back, got %d and %d",
			back.NumVertices(), back.NumEdges())
	}
	for _, e := range [][2]int{{0, 3}, {0, 1}, {2, 3}} {
		if !back.HasEdge(e[0], e[1]) {
			t.Errorf("Expected edge %v to survive the round trip", e)
		}
	}
}

func TestWriteGraph_EdgeListEmitsEachEdgeOnce(t *testing.T) {
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	var buf strings.Builder
	if err := WriteGraph(&buf, g, EdgeList); err != nil {
		t.Fatalf("Expected the write to succeed, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected a header plus 2 edge lines, got %q", buf.String())
	}
	if lines[1] != "0 1" || lines[2] != "1 2" {
		t.Errorf("Expected each edge once with the smaller endpoint first, got %v", lines[1:])
	}
}

func TestReadLabelled_ParsesLabelsAndEdges(t *testing.T) {
	input := "3 2\n1 1 2\n0 0\n1 0\n"
	lg, err := ReadLabelled(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected the labelled graph to parse, got %v", err)
	}
	if lg.Alphabet() != 2 {
		t.Errorf("Expected alphabet 2, got %d", lg.Alphabet())
	}
	if lg.Label(0) != 1 || lg.Label(1) != 0 || lg.Label(2) != 1 {
		t.Errorf("Expected labels 1,0,1, got %d,%d,%d", lg.Label(0), lg.Label(1), lg.Label(2))
	}
	if lg.NumEdges() != 2 {
		t.Errorf("Expected 2 edges, got %d", lg.NumEdges())
	}
}

func TestReadLabelled_RejectsLabelOutsideAlphabet(t *testing.T) {
	input := "2 2\n5\n0\n"
	if _, err := ReadLabelled(strings.NewReader(input)); err == nil {
		t.Errorf("Expected label 5 to be rejected for a 2-label alphabet")
	}
}

func TestWriteLabelled_RoundTrip(t *testing.T) {
	lg, err := graph.NewLabelled(3, 3)
	if err != nil {
		t.Fatalf("Expected construction to succeed, got %v", err)
	}
	lg.SetLabel(0, 2)
	lg.SetLabel(2, 1)
	lg.AddEdge(0, 1)
	lg.AddEdge(1, 2)

	var buf strings.Builder
	if err := WriteLabelled(&buf, lg); err != nil {
		t.Fatalf("Expected the write to succeed, got %v", err)
	}

	back, err := ReadLabelled(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Expected the round trip to parse, got %v", err)
	}
	if back.Label(0) != 2 || back.Label(1) != 0 || back.Label(2) != 1 {
		t.Errorf("Expected labels to survive the round trip, got %d,%d,%d",
			back.Label(0), back.Label(1), back.Label(2))
	}
	if !back.HasEdge(0, 1) || !back.HasEdge(1, 2) {
		t.Errorf("Expected both edges back")
	}
}
