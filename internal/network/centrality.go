package network

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	gonet "gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Shortest paths below are counted in hops. Edge weights are stored on the
// graph but not used as distances.

// Betweenness computes normalized betweenness centrality for every node. The
// score of v is the fraction of shortest paths between pairs of other nodes
// that pass through v, divided by the number of such pairs, so it lies in
// [0, 1]. Graphs with fewer than three nodes score zero.
//
// gonum accumulates Brandes dependencies from every source, so each unordered
// pair is counted from both ends. Nodes it leaves out scored zero.
func Betweenness(g *Graph) map[string]float64 {
	cb := make(map[string]float64, g.NodeCount())
	for name := range g.ids {
		cb[name] = 0
	}

	n := len(cb)
	if n < 3 {
		return cb
	}

	norm := float64((n - 1) * (n - 2))
	for id, v := range gonet.Betweenness(g.g) {
		cb[g.names[id]] = v / norm
	}
	return cb
}

// Closeness computes closeness centrality for every node. For a node u that
// reaches r-1 other nodes at total hop distance d, the score is
// (r-1)/d scaled by (r-1)/(n-1), which keeps scores comparable when the graph
// is disconnected. Isolated nodes score zero.
func Closeness(g *Graph) map[string]float64 {
	cc := make(map[string]float64, g.NodeCount())
	n := g.NodeCount()

	for name, id := range g.ids {
		reached, total := hopDistances(g, id)
		if total == 0 || n <= 1 {
			cc[name] = 0
			continue
		}
		score := float64(reached) / float64(total)
		score *= float64(reached) / float64(n-1)
		cc[name] = score
	}
	return cc
}

// hopDistances walks g breadth first from id and returns the number of other
// nodes reached and the sum of their hop distances.
func hopDistances(g *Graph, id int64) (reached, total int) {
	var bf traverse.BreadthFirst
	bf.Walk(g.g, simple.Node(id), func(_ graph.Node, depth int) bool {
		if depth > 0 {
			reached++
			total += depth
		}
		return false
	})
	return reached, total
}

// Score is one labelled bar of a centrality chart.
type Score struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Rank keeps the strictly positive scores and orders them by value
// (descending) then label. It is a display filter applied after the scores
// were computed on the full graph.
func Rank(scores map[string]float64) []Score {
	out := make([]Score, 0, len(scores))
	for label, v := range scores {
		if v > 0 {
			out = append(out, Score{Label: label, Value: v})
		}
	}
	slices.SortFunc(out, func(a, b Score) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// Metric names a centrality measure.
type Metric string

const (
	MetricBetweenness Metric = "betweenness"
	MetricCloseness   Metric = "closeness"
)

// ValidMetrics lists the supported centrality measures.
var ValidMetrics = []Metric{MetricBetweenness, MetricCloseness}

// Compute runs the named metric over g. It returns false for unknown metrics.
func Compute(g *Graph, m Metric) (map[string]float64, bool) {
	switch m {
	case MetricBetweenness:
		return Betweenness(g), true
	case MetricCloseness:
		return Closeness(g), true
	default:
		return nil, false
	}
}
