// Package graph builds and renders the entity co-occurrence graph behind the
// visual map: undirected, with deterministic node ordering so layout and
// rendering are reproducible.
package graph

// Edge is an undirected edge between two named nodes.
type Edge struct {
	U, V string
}

// Graph is an undirected graph with insertion-ordered nodes.
type Graph struct {
	nodes   []string
	nodeSet map[string]struct{}
	edges   []Edge
	edgeSet map[Edge]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodeSet: make(map[string]struct{}),
		edgeSet: make(map[Edge]struct{}),
	}
}

// AddNode adds a named node. Empty names and duplicates are ignored.
func (g *Graph) AddNode(name string) {
	if name == "" {
		return
	}
	if _, ok := g.nodeSet[name]; ok {
		return
	}
	g.nodeSet[name] = struct{}{}
	g.nodes = append(g.nodes, name)
}

// AddEdge adds an undirected edge, creating missing endpoints. Self-edges
// and duplicates (in either direction) are ignored.
func (g *Graph) AddEdge(u, v string) {
	if u == "" || v == "" || u == v {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	if g.HasEdge(u, v) {
		return
	}
	g.edgeSet[normalize(u, v)] = struct{}{}
	g.edges = append(g.edges, Edge{U: u, V: v})
}

// AddChain links each adjacent pair of the given names: a sentence with
// entities [X, Y, Z] yields edges (X,Y) and (Y,Z) but not (X,Z).
func (g *Graph) AddChain(names []string) {
	for i := 0; i+1 < len(names); i++ {
		g.AddEdge(names[i], names[i+1])
	}
}

// HasEdge reports whether an edge exists between u and v in either direction.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.edgeSet[normalize(u, v)]
	return ok
}

// Nodes returns the node names in insertion order.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Degree returns the number of edges incident to the named node.
func (g *Graph) Degree(name string) int {
	d := 0
	for _, e := range g.edges {
		if e.U == name || e.V == name {
			d++
		}
	}
	return d
}

// DegreeCentrality returns degree / (n-1) per node; zero for graphs with
// fewer than two nodes.
func (g *Graph) DegreeCentrality() map[string]float64 {
	centrality := make(map[string]float64, len(g.nodes))
	n := len(g.nodes)
	for _, name := range g.nodes {
		if n < 2 {
			centrality[name] = 0
			continue
		}
		centrality[name] = float64(g.Degree(name)) / float64(n-1)
	}
	return centrality
}

// normalize orders an edge key so (u,v) and (v,u) collide.
func normalize(u, v string) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}
