package attribute

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privgraph/graphanon/pkg/graph"
)

func newLabelledGraph(t *testing.T, n, alphabet int, seed int64) *graph.Labelled {
	t.Helper()
	lg, err := graph.NewLabelled(n, alphabet)
	require.NoError(t, err)
	lg.WithRand(rand.New(rand.NewSource(seed)))
	lg.EvenlyDistributeLabels()
	return lg
}

func TestIsAlphaProximal_SingleLabelAlwaysHolds(t *testing.T) {
	// With one label every distribution is trivially identical.
	lg, err := graph.NewLabelled(5, 1)
	require.NoError(t, err)

	e := NewEngine(lg)
	require.True(t, e.IsAlphaProximal(0.01))
}

func TestIsAlphaProximal_CompleteGraph(t *testing.T) {
	// Every closed neighbourhood of a complete graph spans all vertices,
	// so each neighbourhood distribution equals the global one.
	lg := newLabelledGraph(t, 6, 3, 5)
	for u := 0; u < 6; u++ {
		for v := u + 1; v < 6; v++ {
			lg.AddEdge(u, v)
		}
	}

	e := NewEngine(lg)
	require.True(t, e.IsAlphaProximal(0.001))
}

func TestIsAlphaProximal_IsolatedVerticesFail(t *testing.T) {
	// An edgeless graph with a skewed labelling: a vertex's closed
	// neighbourhood is only itself, far from the global mix.
	lg, err := graph.NewLabelled(4, 2)
	require.NoError(t, err)
	require.NoError(t, lg.SetLabel(0, 1))
	require.NoError(t, lg.SetLabel(1, 1))

	e := NewEngine(lg)
	require.False(t, e.IsAlphaProximal(0.3))
}

func TestGreedy_ReachesProximality(t *testing.T) {
	lg := newLabelledGraph(t, 30, 3, 7)
	lg.PopulateUniformly(40)

	e := NewEngine(lg)
	e.Greedy(0.2)
	require.True(t, e.IsAlphaProximal(0.2))
}

func TestGreedy_OnlyAddsEdges(t *testing.T) {
	lg := newLabelledGraph(t, 20, 4, 13)
	lg.PopulateUniformly(15)
	before := lg.NumEdges()
	labels := make([]int, 20)
	for v := range labels {
		labels[v] = lg.Label(v)
	}

	e := NewEngine(lg)
	e.Greedy(0.25)

	require.GreaterOrEqual(t, lg.NumEdges(), before)
	require.LessOrEqual(t, lg.NumEdges(), 20*19/2)
	for v, l := range labels {
		require.Equal(t, l, lg.Label(v), "vertex %d was relabelled", v)
	}
}

func TestGreedy_ProximalGraphUntouched(t *testing.T) {
	lg := newLabelledGraph(t, 8, 2, 3)
	for u := 0; u < 8; u++ {
		for v := u + 1; v < 8; v++ {
			lg.AddEdge(u, v)
		}
	}
	before := lg.NumEdges()

	e := NewEngine(lg)
	e.Greedy(0.1)
	require.Equal(t, before, lg.NumEdges())
}

func TestHopeful_ReachesProximality(t *testing.T) {
	lg := newLabelledGraph(t, 15, 3, 23)
	lg.PopulateUniformly(10)

	e := NewEngine(lg)
	e.Hopeful(0.3)
	require.True(t, e.IsAlphaProximal(0.3))
}

func TestRunGreedyIteration_PairsComplementaryDeficiencies(t *testing.T) {
	// Two isolated vertices with opposite labels are deficient in each
	// other's label; one greedy pass must connect them.
	lg, err := graph.NewLabelled(2, 2)
	require.NoError(t, err)
	lg.WithRand(rand.New(rand.NewSource(1)))
	require.NoError(t, lg.SetLabel(0, 0))
	require.NoError(t, lg.SetLabel(1, 1))

	e := NewEngine(lg)
	added := e.runGreedyIteration(0.5)
	require.Equal(t, 1, added)
	require.True(t, lg.HasEdge(0, 1))
}
