// Package attribute protects a labelled graph against attribute disclosure
// attacks by inserting edges until every vertex's neighbourhood label
// distribution lies within alpha of the graph's global distribution.
package attribute

import (
	"math/bits"

	"github.com/privgraph/graphanon/pkg/graph"
	"github.com/privgraph/graphanon/pkg/logging"
)

// Engine runs the alpha-proximity algorithms over one labelled graph. It
// only ever adds edges; labels are never changed.
type Engine struct {
	g *graph.Labelled
}

// NewEngine creates an engine bound to lg.
func NewEngine(lg *graph.Labelled) *Engine {
	return &Engine{g: lg}
}

// IsAlphaProximal reports whether every vertex's neighbourhood label
// distribution is within alpha distance of the global distribution.
func (e *Engine) IsAlphaProximal(alpha float64) bool {
	global := e.g.GlobalDistribution()
	maxDistance := 0.0
	for v := 0; v < e.g.NumVertices(); v++ {
		d := global.Distance(e.g.NeighbourhoodDistribution(v))
		if d > maxDistance {
			maxDistance = d
		}
	}
	return maxDistance <= alpha
}

// Hopeful is the baseline algorithm: add one random edge at a time until the
// graph is alpha-proximal. It always terminates because the complete graph
// is proximal (every neighbourhood distribution equals the global one).
func (e *Engine) Hopeful(alpha float64) {
	edges := 0
	for !e.IsAlphaProximal(alpha) && !e.g.IsComplete() {
		e.g.AddRandomEdge()
		edges++
	}
	logging.Info("hopeful finished", "edgesAdded", edges)
}

// Greedy anonymizes the graph with the greedy edge-insertion algorithm:
// each iteration pairs up deficient vertices that can repair each other's
// label deficiencies. An iteration that adds no edges falls back to one
// random edge, so termination follows the same completeness argument as
// Hopeful.
func (e *Engine) Greedy(alpha float64) {
	iterations, edges := 0, 0
	for !e.IsAlphaProximal(alpha) && !e.g.IsComplete() {
		added := e.runGreedyIteration(alpha)
		iterations++
		edges += added
		if added == 0 && !e.IsAlphaProximal(alpha) {
			// Stuck: no mutually deficient pair could be connected.
			e.g.AddRandomEdge()
			edges++
		}
	}
	logging.Info("greedy finished", "iterations", iterations, "edgesAdded", edges)
}

// deficientVertex is a queue entry for one greedy iteration: a vertex and
// the bitmask of labels its neighbourhood under-represents.
type deficientVertex struct {
	vertex int
	mask   uint32
}

// runGreedyIteration performs one pass of the greedy algorithm and returns
// the number of edges it added.
//
// Every vertex whose neighbourhood is deficient relative to the global
// distribution is queued. For each deficient label l of a vertex v, the rest
// of the queue is scanned for a mate u that carries label l and is itself
// deficient in v's label, so that the edge (v,u) repairs one deficiency on
// each side.
func (e *Engine) runGreedyIteration(alpha float64) int {
	global := e.g.GlobalDistribution()

	var queue []deficientVertex
	for v := 0; v < e.g.NumVertices(); v++ {
		mask := e.g.NeighbourhoodDistribution(v).Deficiencies(global, alpha)
		if mask != 0 {
			queue = append(queue, deficientVertex{vertex: v, mask: mask})
		}
	}

	// Shuffling the queue spreads the new edges evenly across the graph
	// instead of always favouring low-index vertices.
	rng := e.g.Rand()
	rng.Shuffle(len(queue), func(a, b int) {
		queue[a], queue[b] = queue[b], queue[a]
	})

	edgesAdded := 0
	for i := range queue {
		v := queue[i].vertex
		vLabelBit := uint32(1) << uint(e.g.Label(v))

		for mask := queue[i].mask; mask != 0; {
			l := bits.TrailingZeros32(mask)
			mask &^= 1 << uint(l)

			// Find a mate that offers label l and needs v's label. If no
			// mate exists the deficiency is simply dropped this iteration.
			for j := i + 1; j < len(queue); j++ {
				if queue[j].mask&vLabelBit == 0 || e.g.Label(queue[j].vertex) != l {
					continue
				}
				if e.g.AddEdge(v, queue[j].vertex) {
					queue[j].mask &^= vLabelBit
					edgesAdded++
					break
				}
			}
		}
	}

	logging.Debug("greedy iteration", "deficient", len(queue), "edgesAdded", edgesAdded)
	return edgesAdded
}
