package graph

import (
	"fmt"

	"github.com/privgraph/graphanon/pkg/label"
)

// Labelled is a vertex-labelled graph: an unlabelled Graph plus a label in
// [0, alphabet) for every vertex. Labels are assigned at construction or
// load time only; the anonymization engines add edges but never relabel.
type Labelled struct {
	*Graph
	labels   []int
	alphabet int
}

// NewLabelled creates a labelled graph with n isolated vertices, all
// carrying label 0. The alphabet size is bounded by label.MaxAlphabet so
// that deficiency bitmasks can represent every label.
func NewLabelled(numVertices, alphabet int) (*Labelled, error) {
	if alphabet < 1 || alphabet > label.MaxAlphabet {
		return nil, fmt.Errorf("alphabet size %d outside [1, %d]", alphabet, label.MaxAlphabet)
	}
	return &Labelled{
		Graph:    New(numVertices),
		labels:   make([]int, numVertices),
		alphabet: alphabet,
	}, nil
}

// Alphabet returns the label alphabet size.
func (lg *Labelled) Alphabet() int { return lg.alphabet }

// Label returns the label of vertex v.
func (lg *Labelled) Label(v int) int { return lg.labels[v] }

// SetLabel assigns a label to vertex v. Used by graph loaders; the engines
// never call it.
func (lg *Labelled) SetLabel(v, l int) error {
	if l < 0 || l >= lg.alphabet {
		return fmt.Errorf("label %d outside alphabet [0, %d)", l, lg.alphabet)
	}
	lg.labels[v] = l
	return nil
}

// EvenlyDistributeLabels assigns a random label to every vertex such that
// each label appears with (as near as possible) the same frequency.
func (lg *Labelled) EvenlyDistributeLabels() {
	perVertex := lg.n / lg.alphabet

	// A random permutation of the vertices, carved into equal-size runs,
	// gives each label a uniform random set of vertices.
	perm := lg.rng.Perm(lg.n)
	next := 0
	for l := 0; l < lg.alphabet; l++ {
		for i := 0; i < perVertex; i++ {
			lg.labels[perm[next]] = l
			next++
		}
	}

	// Leftover vertices receive distinct labels drawn at random.
	extra := lg.rng.Perm(lg.alphabet)
	for i := 0; next < lg.n; i++ {
		lg.labels[perm[next]] = extra[i]
		next++
	}
}

// GlobalDistribution returns the label distribution over all vertices.
func (lg *Labelled) GlobalDistribution() *label.Distribution {
	counts := make([]int, lg.alphabet)
	for _, l := range lg.labels {
		counts[l]++
	}
	return label.FromCounts(counts)
}

// NeighbourhoodDistribution returns the label distribution of vertex v's
// closed neighbourhood: v's own label plus the labels of its neighbours.
func (lg *Labelled) NeighbourhoodDistribution(v int) *label.Distribution {
	counts := make([]int, lg.alphabet)
	counts[lg.labels[v]]++
	lg.EachNeighbor(v, func(u int) {
		counts[lg.labels[u]]++
	})
	return label.FromCounts(counts)
}
