package viz

import (
	"strings"

	"github.com/matsen/confnet/internal/network"
	"github.com/matsen/confnet/internal/record"
)

// paperPrefix keeps paper IDs apart from person IDs in the bipartite drawing.
const paperPrefix = "paper:"

// FromPeople converts the collaboration network into drawable data.
func FromPeople(g *network.Graph) GraphData {
	nodes := make([]Node, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nodes = append(nodes, Node{
			ID:     n,
			Type:   NodeTypePerson,
			Label:  n,
			Degree: g.Degree(n),
		})
	}
	return GraphData{Nodes: nodes, Edges: convertEdges(g.Edges())}
}

// FromPapers converts the paper co-occurrence network into drawable data.
// records supply tooltip details; the first record with a given title wins.
func FromPapers(g *network.Graph, records []record.Record) GraphData {
	byTitle := make(map[string]record.Record, len(records))
	for _, r := range records {
		if _, ok := byTitle[r.Title]; !ok {
			byTitle[r.Title] = r
		}
	}

	nodes := make([]Node, 0, g.NodeCount())
	for _, title := range g.Nodes() {
		nodes = append(nodes, newPaperNode(title, byTitle[title], g.Degree(title)))
	}
	return GraphData{Nodes: nodes, Edges: convertEdges(g.Edges())}
}

// FromBipartite draws person–paper memberships. Paper node IDs are prefixed
// so that a title equal to a person's name cannot collide with them.
func FromBipartite(memberships []network.Membership, records []record.Record) GraphData {
	byTitle := make(map[string]record.Record, len(records))
	for _, r := range records {
		if _, ok := byTitle[r.Title]; !ok {
			byTitle[r.Title] = r
		}
	}

	degree := make(map[string]int)
	for _, m := range memberships {
		degree[m.Person]++
		degree[paperPrefix+m.Paper]++
	}

	var data GraphData
	seen := make(map[string]bool)
	for _, m := range memberships {
		if !seen[m.Person] {
			seen[m.Person] = true
			data.Nodes = append(data.Nodes, Node{
				ID:     m.Person,
				Type:   NodeTypePerson,
				Label:  m.Person,
				Degree: degree[m.Person],
			})
		}
		paperID := paperPrefix + m.Paper
		if !seen[paperID] {
			seen[paperID] = true
			node := newPaperNode(m.Paper, byTitle[m.Paper], degree[paperID])
			node.ID = paperID
			data.Nodes = append(data.Nodes, node)
		}
		data.Edges = append(data.Edges, Edge{Source: m.Person, Target: paperID, Weight: 1})
	}
	return data
}

func newPaperNode(title string, r record.Record, degree int) Node {
	return Node{
		ID:           title,
		Type:         NodeTypePaper,
		Label:        title,
		Category:     r.Category,
		Participants: strings.Join(r.Participants, ", "),
		Degree:       degree,
	}
}

func convertEdges(edges []network.Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, Edge{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}
	return out
}
