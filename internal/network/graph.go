// Package network builds weighted co-occurrence graphs from dataset records
// and scores their nodes by centrality.
package network

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Pair is an unordered node pair. A is always the lexically smaller name.
type Pair struct {
	A, B string
}

// NewPair orders a and b so that (a,b) and (b,a) map to the same key.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Edge is a weighted undirected edge.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Graph is an undirected, simple graph with integer edge weights, keyed by
// node name. Repeated co-occurrences accumulate into one edge; self-loops are
// rejected. Storage and traversal are delegated to a gonum weighted graph.
type Graph struct {
	g     *simple.WeightedUndirectedGraph
	ids   map[string]int64
	names map[int64]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		g:     simple.NewWeightedUndirectedGraph(0, 0),
		ids:   make(map[string]int64),
		names: make(map[int64]string),
	}
}

// AddNode adds n if absent.
func (g *Graph) AddNode(n string) {
	g.node(n)
}

func (g *Graph) node(n string) graph.Node {
	if id, ok := g.ids[n]; ok {
		return simple.Node(id)
	}
	id := int64(len(g.ids))
	g.ids[n] = id
	g.names[id] = n
	node := simple.Node(id)
	g.g.AddNode(node)
	return node
}

// AddWeight adds w to the edge between a and b, creating both nodes and the
// edge as needed. Self-pairs and non-positive weights are ignored.
func (g *Graph) AddWeight(a, b string, w int) {
	if a == b || w <= 0 {
		return
	}
	u, v := g.node(a), g.node(b)
	total := float64(w)
	if prev, ok := g.g.Weight(u.ID(), v.ID()); ok {
		total += prev
	}
	g.g.SetWeightedEdge(g.g.NewWeightedEdge(u, v, total))
}

// HasNode reports whether n is in the graph.
func (g *Graph) HasNode(n string) bool {
	_, ok := g.ids[n]
	return ok
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b string) bool {
	return g.Weight(a, b) > 0
}

// Weight returns the weight of the a–b edge, or 0 if there is none.
func (g *Graph) Weight(a, b string) int {
	x, okA := g.ids[a]
	y, okB := g.ids[b]
	if !okA || !okB || x == y {
		return 0
	}
	w, ok := g.g.Weight(x, y)
	if !ok {
		return 0
	}
	return int(w)
}

// Neighbors returns the nodes adjacent to n in sorted order.
func (g *Graph) Neighbors(n string) []string {
	id, ok := g.ids[n]
	if !ok {
		return []string{}
	}
	out := g.labels(g.g.From(id))
	slices.Sort(out)
	return out
}

// Degree returns the number of distinct neighbors of n.
func (g *Graph) Degree(n string) int {
	id, ok := g.ids[n]
	if !ok {
		return 0
	}
	return g.g.From(id).Len()
}

// Nodes returns all nodes in sorted order.
func (g *Graph) Nodes() []string {
	out := g.labels(g.g.Nodes())
	slices.Sort(out)
	return out
}

func (g *Graph) labels(it graph.Nodes) []string {
	out := make([]string, 0, it.Len())
	for it.Next() {
		out = append(out, g.names[it.Node().ID()])
	}
	return out
}

// Edges returns every edge once, with Source < Target, sorted by endpoints.
func (g *Graph) Edges() []Edge {
	var out []Edge
	it := g.g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		a, b := g.names[e.From().ID()], g.names[e.To().ID()]
		if b < a {
			a, b = b, a
		}
		out = append(out, Edge{Source: a, Target: b, Weight: int(e.Weight())})
	}
	slices.SortFunc(out, func(x, y Edge) int {
		if c := cmp.Compare(x.Source, y.Source); c != 0 {
			return c
		}
		return cmp.Compare(x.Target, y.Target)
	})
	return out
}

// Weights returns the edge weights keyed by unordered pair.
func (g *Graph) Weights() map[Pair]int {
	out := make(map[Pair]int)
	for _, e := range g.Edges() {
		out[NewPair(e.Source, e.Target)] = e.Weight
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.g.Edges().Len()
}
