// Package identity protects a graph against identity disclosure attacks by
// making its degree sequence k-anonymous: every degree value is shared by at
// least k vertices, so no vertex can be re-identified from its degree alone.
//
// The transformation is one-shot: an optimal dynamic program partitions the
// descending degree sequence into blocks whose degrees will be equalized,
// and the graph is then augmented with new vertices and edges that realize
// the anonymized sequence exactly.
package identity

import (
	"fmt"

	"github.com/privgraph/graphanon/pkg/graph"
	"github.com/privgraph/graphanon/pkg/logging"
)

// ErrKTooLarge is returned when the privacy threshold exceeds the number of
// vertices; no degree value can then occur k times.
var ErrKTooLarge = fmt.Errorf("anonymity threshold k exceeds vertex count")

// Engine runs k-degree anonymization over one graph.
type Engine struct {
	g *graph.Graph
}

// NewEngine creates an engine bound to g.
func NewEngine(g *graph.Graph) *Engine {
	return &Engine{g: g}
}

// AnonymizeDegreeSequence rewrites the descending-sorted degree sequence so
// that every distinct degree occurs at least k times, and returns the
// maximum per-vertex degree deficit the rewrite introduced.
//
// The sequence is partitioned into contiguous blocks of size >= k; every
// member of a block is raised to the block's maximum degree, so a block's
// cost is its max minus its min. The dynamic program picks the partition
// minimizing the maximum block cost, breaking ties by the smaller sum of
// the two costs at the split.
func AnonymizeDegreeSequence(seq []graph.DegreeVertex, k int) int {
	n := len(seq)
	if n == 0 {
		return 0
	}

	// A sequence too short to split into two valid blocks collapses into
	// a single block.
	if n < 2*k {
		cost := seq[0].Degree - seq[n-1].Degree
		for i := range seq {
			seq[i].Degree = seq[0].Degree
		}
		return cost
	}

	costs := make([]int, n)
	splits := make([]int, n)
	for i := range splits {
		splits[i] = -1
	}

	// Prefixes shorter than 2k must form a single block ending at i.
	for i := 0; i < 2*k-1 && i < n; i++ {
		costs[i] = seq[0].Degree - seq[i].Degree
	}

	for i := 2*k - 1; i < n; i++ {
		lo := k - 1
		if i-2*k+1 > lo {
			lo = i - 2*k + 1
		}
		best, bestSum, bestSplit := -1, 0, -1
		for j := lo; j <= i-k; j++ {
			left := costs[j]
			right := seq[j+1].Degree - seq[i].Degree
			cost := left
			if right > cost {
				cost = right
			}
			if best < 0 || cost < best || (cost == best && left+right < bestSum) {
				best, bestSum, bestSplit = cost, left+right, j
			}
		}
		costs[i] = best
		splits[i] = bestSplit
	}

	// Walk the stored split points backwards, raising each block to its
	// maximum (first) degree.
	for end := n - 1; end >= 0; {
		start := splits[end] + 1 // -1 split marks the first block
		for i := start; i <= end; i++ {
			seq[i].Degree = seq[start].Degree
		}
		end = start - 1
	}

	return costs[n-1]
}

// IsAnonymous reports whether the engine's graph is k-degree-anonymous.
func (e *Engine) IsAnonymous(k int) bool {
	return e.g.IsAnonymous(k)
}

// HideWaldo anonymizes the graph by adding new vertices and connecting each
// existing vertex to enough of them to reach its anonymized degree.
//
// With hideNewVertices false, only the original vertices are guaranteed
// k-degree-anonymous: the added vertices keep whatever degrees the
// augmentation gave them and may form classes smaller than k. With
// hideNewVertices true, an odd count of at least k new vertices is added and
// then levelled into a single degree class, so the whole graph is
// k-degree-anonymous on return.
func (e *Engine) HideWaldo(k int, hideNewVertices bool) error {
	n := e.g.NumVertices()
	if k > n {
		return fmt.Errorf("%w: k=%d, n=%d", ErrKTooLarge, k, n)
	}

	seq := e.g.DegreeSequence()
	anonymized := make([]graph.DegreeVertex, len(seq))
	copy(anonymized, seq)
	maxDeficiency := AnonymizeDegreeSequence(anonymized, k)

	if maxDeficiency == 0 {
		logging.Info("graph already k-degree-anonymous", "k", k)
		return nil
	}

	numNew := maxDeficiency
	if hideNewVertices {
		if numNew < k {
			numNew = k
		}
		if numNew%2 == 0 {
			numNew++
		}
	}
	firstNew := n
	e.g.AddVertices(numNew)

	// Each vertex's deficit is at most maxDeficiency <= numNew, so walking
	// the new vertices cyclically never offers the same endpoint twice to
	// one vertex.
	next := 0
	edgesAdded := 0
	for i, original := range seq {
		deficiency := anonymized[i].Degree - original.Degree
		for d := 0; d < deficiency; d++ {
			e.g.AddEdge(original.Vertex, firstNew+next)
			next = (next + 1) % numNew
			edgesAdded++
		}
	}

	if hideNewVertices && edgesAdded > 0 {
		// The cyclic assignment can leave the new vertices split into two
		// degree classes one apart; level them into a single class of
		// size numNew >= k.
		e.levelNewVertices(firstNew, numNew)
	}

	logging.Info("hide waldo finished",
		"k", k,
		"newVertices", numNew,
		"edgesAdded", edgesAdded,
		"maxDeficiency", maxDeficiency,
	)
	return nil
}

// levelNewVertices adds edges among the new vertices until they all share
// one degree. The cyclic assignment spreads the deficit edges so that new
// vertex degrees differ by at most one, and numNew is odd, so the lower
// class can always be raised to meet the upper one: an even lower class
// pairs up internally, an odd one moves everybody one degree higher.
func (e *Engine) levelNewVertices(firstNew, numNew int) {
	if numNew < 3 {
		return
	}

	top := 0
	for i := 0; i < numNew; i++ {
		if d := e.g.Degree(firstNew + i); d > top {
			top = d
		}
	}
	var lower, upper []int
	for i := 0; i < numNew; i++ {
		if e.g.Degree(firstNew+i) < top {
			lower = append(lower, firstNew+i)
		} else {
			upper = append(upper, firstNew+i)
		}
	}

	switch {
	case len(lower) == 0:
		return
	case len(lower)%2 == 0:
		for i := 0; i+1 < len(lower); i += 2 {
			e.g.AddEdge(lower[i], lower[i+1])
		}
	case len(lower) == 1:
		// The lone straggler borrows two partners from the upper class,
		// putting all three on top+1; the rest of the upper class (even,
		// since numNew is odd) pairs up to follow.
		e.g.AddEdge(lower[0], upper[0])
		e.g.AddEdge(lower[0], upper[1])
		for i := 2; i+1 < len(upper); i += 2 {
			e.g.AddEdge(upper[i], upper[i+1])
		}
	default:
		// An odd lower class of three or more forms a cycle, gaining two
		// edges each; the upper class pairs up to land on top+1 as well.
		for i := range lower {
			e.g.AddEdge(lower[i], lower[(i+1)%len(lower)])
		}
		for i := 0; i+1 < len(upper); i += 2 {
			e.g.AddEdge(upper[i], upper[i+1])
		}
	}
}
