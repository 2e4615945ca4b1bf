package metrics

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/privgraph/graphanon/pkg/graph"
)

// ClusteringCoefficient is the ratio of closed to open ordered triangles:
// the number of ordered triples (u,v,w) with edges u-v, u-w, and v-w,
// divided by sum over u of deg(u)(deg(u)-1). Returns 0 for a graph with no
// open triangles.
func ClusteringCoefficient(g *graph.Graph) float64 {
	n := g.NumVertices()

	var possible int64
	for u := 0; u < n; u++ {
		d := int64(g.Degree(u))
		possible += d * (d - 1)
	}
	if possible == 0 {
		return 0
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	closedByWorker := make([]int64, workers)
	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			var closed int64
			for u := w; u < n; u += workers {
				neighbours := g.Neighbors(u)
				for _, v := range neighbours {
					for _, x := range neighbours {
						if v != x && g.HasEdge(v, x) {
							closed++
						}
					}
				}
			}
			closedByWorker[w] = closed
			return nil
		})
	}
	_ = eg.Wait()

	var closed int64
	for _, c := range closedByWorker {
		closed += c
	}
	return float64(closed) / float64(possible)
}

// ClusteringCoefficientBruteForce computes the same ratio by scanning every
// ordered vertex triple. Cubic in n and intended only for verifying the fast
// variant; the two must agree exactly.
func ClusteringCoefficientBruteForce(g *graph.Graph) float64 {
	n := g.NumVertices()
	var closed, possible int64

	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v || !g.HasEdge(u, v) {
				continue
			}
			for w := 0; w < n; w++ {
				if w == u || w == v {
					continue
				}
				if g.HasEdge(v, w) {
					possible++
					if g.HasEdge(u, w) {
						closed++
					}
				}
			}
		}
	}

	if possible == 0 {
		return 0
	}
	return float64(closed) / float64(possible)
}
