package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/privgraph/graphanon/pkg/graph"
)

// DegreeStats summarizes the degree distribution of a graph.
type DegreeStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// ComputeDegreeStats returns mean, standard deviation, and extremes of the
// vertex degrees. Zero-valued for the empty graph.
func ComputeDegreeStats(g *graph.Graph) DegreeStats {
	n := g.NumVertices()
	if n == 0 {
		return DegreeStats{}
	}
	degrees := make([]float64, n)
	for v := 0; v < n; v++ {
		degrees[v] = float64(g.Degree(v))
	}
	return DegreeStats{
		Mean:   stat.Mean(degrees, nil),
		StdDev: stat.StdDev(degrees, nil),
		Min:    floats.Min(degrees),
		Max:    floats.Max(degrees),
	}
}

// Components returns the number of connected components.
func Components(g *graph.Graph) int {
	if g.NumVertices() == 0 {
		return 0
	}
	return len(topo.ConnectedComponents(g.ToGonum()))
}
