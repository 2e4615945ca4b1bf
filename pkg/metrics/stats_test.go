package metrics

import (
	"math"
	"testing"

	"github.com/privgraph/graphanon/pkg/graph"
)

func TestSubgraphCentrality_Triangle(t *testing.T) {
	// Triangle: trace(A^2) = 6 and trace(A^3) = 6, so the sum up to walk
	// length 3 is 6/2! + 6/3! = 4, and the per-vertex mean is 4/3.
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(0, 2)

	want := 4.0 / 3.0
	if got := SubgraphCentrality(g, 3); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected subgraph centrality %v, got %v", want, got)
	}
}

func TestSubgraphCentrality_EdgelessGraph(t *testing.T) {
	g := graph.New(4)
	if got := SubgraphCentrality(g, 6); got != 0 {
		t.Errorf("Expected 0 without any closed walks, got %v", got)
	}
}

func TestSubgraphCentrality_EmptyGraph(t *testing.T) {
	if got := SubgraphCentrality(graph.New(0), 4); got != 0 {
		t.Errorf("Expected 0 on the empty graph, got %v", got)
	}
}

func TestComputeDegreeStats_StarGraph(t *testing.T) {
	// Star on 5 vertices: degrees 4,1,1,1,1.
	g := graph.New(5)
	for v := 1; v < 5; v++ {
		g.AddEdge(0, v)
	}

	stats := ComputeDegreeStats(g)
	if math.Abs(stats.Mean-1.6) > 1e-9 {
		t.Errorf("Expected mean degree 1.6, got %v", stats.Mean)
	}
	if stats.Min != 1 || stats.Max != 4 {
		t.Errorf("Expected degree range [1, 4], got [%v, %v]", stats.Min, stats.Max)
	}
	if stats.StdDev <= 0 {
		t.Errorf("Expected positive standard deviation, got %v", stats.StdDev)
	}
}

func TestComputeDegreeStats_EmptyGraph(t *testing.T) {
	stats := ComputeDegreeStats(graph.New(0))
	if stats != (DegreeStats{}) {
		t.Errorf("Expected zero stats for the empty graph, got %+v", stats)
	}
}

func TestComponents_CountsIsolatedVertices(t *testing.T) {
	// Two disjoint edges plus an isolated vertex.
	g := graph.New(5)
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)

	if got := Components(g); got != 3 {
		t.Errorf("Expected 3 components, got %d", got)
	}
}

func TestComponents_ConnectedGraph(t *testing.T) {
	g := graph.New(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	if got := Components(g); got != 1 {
		t.Errorf("Expected a single component, got %d", got)
	}
}
