package graph

import "gonum.org/v1/gonum/graph/simple"

// ToGonum converts the graph into a gonum simple.UndirectedGraph with the
// same dense vertex ids, for interop with gonum's graph algorithms.
func (g *Graph) ToGonum() *simple.UndirectedGraph {
	sg := simple.NewUndirectedGraph()
	for v := 0; v < g.n; v++ {
		sg.AddNode(simple.Node(v))
	}
	for v := 0; v < g.n; v++ {
		g.EachNeighbor(v, func(u int) {
			if v < u {
				sg.SetEdge(sg.NewEdge(simple.Node(v), simple.Node(u)))
			}
		})
	}
	return sg
}
