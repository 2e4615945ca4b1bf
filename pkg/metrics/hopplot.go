// Package metrics computes structural graph metrics for reporting: hop
// plots and path lengths, clustering coefficients, subgraph centrality,
// connected components, and degree statistics.
//
// The traversal and reduction phases read the graph without mutating it and
// fan out over vertex indices; callers must not mutate the graph while a
// metrics computation is running.
package metrics

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/privgraph/graphanon/pkg/graph"
)

// HopPlot is a histogram of shortest-path lengths: it maps each distance
// d >= 1 to the number of ordered vertex pairs whose shortest path has
// exactly d edges. Unreachable pairs are absent.
type HopPlot map[int]int64

// ComputeHopPlot runs a breadth-first search from every vertex in parallel
// and merges the per-worker histograms into one.
func ComputeHopPlot(g *graph.Graph) HopPlot {
	n := g.NumVertices()
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([]HopPlot, workers)
	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			local := make(HopPlot)
			// visited[v] holds the last source that reached v, so the
			// slice is allocated once per worker instead of once per BFS.
			visited := make([]int, n)
			for i := range visited {
				visited[i] = -1
			}
			for source := w; source < n; source += workers {
				bfsFrom(g, source, visited, func(d int) {
					local[d]++
				})
			}
			partials[w] = local
			return nil
		})
	}
	_ = eg.Wait() // workers never fail

	merged := make(HopPlot)
	for _, p := range partials {
		for d, count := range p {
			merged[d] += count
		}
	}
	return merged
}

// bfsFrom runs one breadth-first search and calls visit with the distance of
// every vertex discovered from source. visited is a scratch slice marking
// each vertex with the last source that reached it.
func bfsFrom(g *graph.Graph, source int, visited []int, visit func(d int)) {
	type hop struct{ vertex, dist int }
	var queue []hop

	visited[source] = source
	g.EachNeighbor(source, func(u int) {
		visited[u] = source
		queue = append(queue, hop{u, 1})
		visit(1)
	})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		g.EachNeighbor(cur.vertex, func(u int) {
			if visited[u] != source {
				visited[u] = source
				queue = append(queue, hop{u, cur.dist + 1})
				visit(cur.dist + 1)
			}
		})
	}
}

// PathLength returns the number of edges on a shortest path from u to v, or
// -1 if v is unreachable from u.
func PathLength(g *graph.Graph, u, v int) int {
	if u == v {
		return 0
	}
	n := g.NumVertices()
	visited := make([]int, n)
	for i := range visited {
		visited[i] = -1
	}

	found := -1
	type hop struct{ vertex, dist int }
	var queue []hop
	visited[u] = u
	queue = append(queue, hop{u, 0})
	for len(queue) > 0 && found < 0 {
		cur := queue[0]
		queue = queue[1:]
		g.EachNeighbor(cur.vertex, func(w int) {
			if w == v && found < 0 {
				found = cur.dist + 1
			}
			if visited[w] != u {
				visited[w] = u
				queue = append(queue, hop{w, cur.dist + 1})
			}
		})
	}
	return found
}

// HarmonicMean derives the harmonic mean path length from a hop plot:
// n(n-1) / sum(count_d / d). Returns -1 for a graph with an empty hop plot.
func HarmonicMean(g *graph.Graph, hp HopPlot) float64 {
	var h float64
	for d, count := range hp {
		h += float64(count) / float64(d)
	}
	if h == 0 {
		return -1
	}
	n := float64(g.NumVertices())
	return n * (n - 1) / h
}

// AveragePathLength is the mean shortest-path distance over all reachable
// ordered pairs in the hop plot. If includeSelfPaths is set, the n
// zero-length (v,v) pairs are counted in the denominator as well. Returns 0
// when no pairs are reachable.
func AveragePathLength(g *graph.Graph, hp HopPlot, includeSelfPaths bool) float64 {
	var sum, pairs float64
	for d, count := range hp {
		sum += float64(d) * float64(count)
		pairs += float64(count)
	}
	if includeSelfPaths {
		pairs += float64(g.NumVertices())
	}
	if pairs == 0 {
		return 0
	}
	return sum / pairs
}
