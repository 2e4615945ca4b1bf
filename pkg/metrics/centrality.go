package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/privgraph/graphanon/pkg/graph"
)

// SubgraphCentrality estimates the mean subgraph centrality of the graph by
// accumulating trace(A^l)/l! for walk lengths l = 2..limit, where A is the
// dense adjacency matrix, and dividing the total by n.
//
// This is by far the most expensive metric: it holds three dense n x n
// matrices (O(n^2) memory) and performs limit-1 matrix products (O(limit *
// n^3) time). Choose n and limit accordingly.
func SubgraphCentrality(g *graph.Graph, limit int) float64 {
	n := g.NumVertices()
	if n == 0 {
		return 0
	}

	adjacency := mat.NewDense(n, n, nil)
	for v := 0; v < n; v++ {
		g.EachNeighbor(v, func(u int) {
			adjacency.Set(v, u, 1)
		})
	}

	// power holds A^(l-1); next receives each product since mat.Dense
	// cannot multiply in place, then the two swap roles.
	power := mat.DenseCopyOf(adjacency)
	next := mat.NewDense(n, n, nil)

	var sum float64
	factorial := 1.0
	for l := 2; l <= limit; l++ {
		factorial *= float64(l)
		next.Mul(power, adjacency)
		sum += mat.Trace(next) / factorial
		power, next = next, power
	}
	return sum / float64(n)
}
