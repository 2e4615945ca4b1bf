package graph

import (
	"math/rand"
	"sort"
	"time"
)

// Graph is a simple, undirected, unlabelled graph with no self-loops and no
// parallel edges. Vertex ids are dense integers in [0, n); vertices are only
// ever added, never removed. Edges are counted once per undirected edge, so
// a complete graph holds n(n-1)/2 of them.
//
// Mutating operations must not be called concurrently with each other or
// with any traversal; callers serialize access to a Graph.
type Graph struct {
	n         int
	m         int
	adjacency []map[int]struct{}
	rng       *rand.Rand
}

// DegreeVertex pairs a vertex id with its degree, for degree sequences.
type DegreeVertex struct {
	Degree int
	Vertex int
}

// New creates a graph with n isolated vertices. The random source used for
// edge sampling is seeded from the clock; use WithRand for deterministic
// behaviour.
func New(numVertices int) *Graph {
	g := &Graph{
		n:         numVertices,
		adjacency: make([]map[int]struct{}, numVertices),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i := range g.adjacency {
		g.adjacency[i] = make(map[int]struct{})
	}
	return g
}

// WithRand replaces the graph's random source and returns the graph.
func (g *Graph) WithRand(rng *rand.Rand) *Graph {
	g.rng = rng
	return g
}

// Rand exposes the graph's random source so that the algorithms layered on
// top of the store share one seedable stream.
func (g *Graph) Rand() *rand.Rand { return g.rng }

// NumVertices returns |V|.
func (g *Graph) NumVertices() int { return g.n }

// NumEdges returns |E|, counting each undirected edge once.
func (g *Graph) NumEdges() int { return g.m }

// Degree returns the number of neighbours of v.
func (g *Graph) Degree(v int) int { return len(g.adjacency[v]) }

// HasEdge reports whether the undirected edge (u,v) is present.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n {
		return false
	}
	_, ok := g.adjacency[u][v]
	return ok
}

// Neighbors returns the ids of all neighbours of v, in no particular order.
func (g *Graph) Neighbors(v int) []int {
	out := make([]int, 0, len(g.adjacency[v]))
	for u := range g.adjacency[v] {
		out = append(out, u)
	}
	return out
}

// EachNeighbor calls fn for every neighbour of v. It avoids the allocation
// of Neighbors and is what the traversal loops use. fn must not mutate the
// graph.
func (g *Graph) EachNeighbor(v int, fn func(u int)) {
	for u := range g.adjacency[v] {
		fn(u)
	}
}

// AddEdge inserts the undirected edge (u,v) if u != v and the edge does not
// already exist. It reports whether the edge was newly inserted; on failure
// the graph is unchanged.
func (g *Graph) AddEdge(u, v int) bool {
	if u == v {
		return false
	}
	if _, ok := g.adjacency[u][v]; ok {
		return false
	}
	g.adjacency[u][v] = struct{}{}
	g.adjacency[v][u] = struct{}{}
	g.m++
	return true
}

// AddVertices appends count new isolated vertices.
func (g *Graph) AddVertices(count int) {
	for i := 0; i < count; i++ {
		g.adjacency = append(g.adjacency, make(map[int]struct{}))
	}
	g.n += count
}

// AddRandomEdge inserts one uniformly random edge that was not previously
// present. No-op on a complete graph, where no such edge exists.
func (g *Graph) AddRandomEdge() {
	if g.IsComplete() {
		return
	}
	for {
		u := g.rng.Intn(g.n)
		v := g.rng.Intn(g.n)
		if g.AddEdge(u, v) {
			return
		}
	}
}

// PopulateUniformly inserts numEdges edges chosen uniformly at random from
// the non-edges of the graph. The call is atomic: if fewer than numEdges
// non-edges remain it inserts nothing and returns false.
func (g *Graph) PopulateUniformly(numEdges int) bool {
	if numEdges > g.n*(g.n-1)/2-g.m {
		return false
	}

	possible := make([][2]int, 0, g.n*(g.n-1)/2)
	for i := 0; i < g.n; i++ {
		for j := i + 1; j < g.n; j++ {
			possible = append(possible, [2]int{i, j})
		}
	}
	g.rng.Shuffle(len(possible), func(a, b int) {
		possible[a], possible[b] = possible[b], possible[a]
	})

	added := 0
	for _, e := range possible {
		if g.AddEdge(e[0], e[1]) {
			if added++; added == numEdges {
				break
			}
		}
	}
	return true
}

// Occupancy returns the fraction of possible edges present in the graph,
// m / (n(n-1)/2), or 0 for the empty graph.
func (g *Graph) Occupancy() float64 {
	if g.n < 2 {
		return 0
	}
	return float64(g.m) / (float64(g.n) * float64(g.n-1) / 2)
}

// IsComplete reports whether every possible edge is present.
func (g *Graph) IsComplete() bool {
	return g.m == g.n*(g.n-1)/2
}

// DegreeSequence returns one (degree, vertex) pair per vertex, sorted by
// descending degree. Ties between equal-degree vertices are broken
// arbitrarily.
func (g *Graph) DegreeSequence() []DegreeVertex {
	seq := make([]DegreeVertex, g.n)
	for v := 0; v < g.n; v++ {
		seq[v] = DegreeVertex{Degree: len(g.adjacency[v]), Vertex: v}
	}
	sort.Slice(seq, func(i, j int) bool { return seq[i].Degree > seq[j].Degree })
	return seq
}

// IsAnonymous reports whether the graph is k-degree-anonymous: every
// distinct degree value occurs at least k times.
func (g *Graph) IsAnonymous(k int) bool {
	counts := make(map[int]int)
	for v := 0; v < g.n; v++ {
		counts[len(g.adjacency[v])]++
	}
	for _, c := range counts {
		if c < k {
			return false
		}
	}
	return true
}
