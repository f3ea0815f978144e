package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matsen/confnet/internal/network"
	"github.com/matsen/confnet/internal/record"
)

func testRecords() []record.Record {
	return []record.Record{
		{Title: "P1", Category: "Poster", Participants: []string{"A", "B"}},
		{Title: "P2", Category: "Talk", Participants: []string{"B", "C"}},
		{Title: "P3", Category: "Talk", Participants: []string{"A", "C"}},
	}
}

func TestFromPeople(t *testing.T) {
	g := network.BuildPeople(testRecords(), true, "")
	data := FromPeople(g)

	if len(data.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(data.Nodes))
	}
	for _, n := range data.Nodes {
		if n.Type != NodeTypePerson {
			t.Errorf("node %q: got type %q, want %q", n.ID, n.Type, NodeTypePerson)
		}
		if n.Degree != 2 {
			t.Errorf("node %q: got degree %d, want 2", n.ID, n.Degree)
		}
	}
	if len(data.Edges) != 3 {
		t.Errorf("got %d edges, want 3", len(data.Edges))
	}
	for _, e := range data.Edges {
		if e.Weight != 1 {
			t.Errorf("edge %s-%s: got weight %d, want 1", e.Source, e.Target, e.Weight)
		}
	}
}

func TestFromPapers(t *testing.T) {
	records := testRecords()
	data := FromPapers(network.BuildPapers(records), records)

	if len(data.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(data.Nodes))
	}
	first := data.Nodes[0]
	if first.ID != "P1" || first.Type != NodeTypePaper {
		t.Errorf("first node = %+v, want paper P1", first)
	}
	if first.Category != "Poster" {
		t.Errorf("P1 category = %q, want Poster", first.Category)
	}
	if first.Participants != "A, B" {
		t.Errorf("P1 participants = %q, want %q", first.Participants, "A, B")
	}
}

func TestFromBipartite(t *testing.T) {
	records := []record.Record{
		{Title: "A", Category: "Talk", Participants: []string{"A", "B"}},
		{Title: "T2", Category: "Talk", Participants: []string{"B"}},
	}
	data := FromBipartite(network.BuildBipartite(records, true, ""), records)

	ids := make(map[string]Node)
	for _, n := range data.Nodes {
		ids[n.ID] = n
	}

	if len(ids) != 4 {
		t.Fatalf("got %d distinct nodes, want 4: %+v", len(ids), data.Nodes)
	}
	if n := ids["A"]; n.Type != NodeTypePerson {
		t.Errorf("person A has type %q", n.Type)
	}
	if n := ids["paper:A"]; n.Type != NodeTypePaper || n.Label != "A" {
		t.Errorf("paper A = %+v, want paper node labelled A", n)
	}
	if n := ids["B"]; n.Degree != 2 {
		t.Errorf("person B degree = %d, want 2", n.Degree)
	}
	if len(data.Edges) != 3 {
		t.Errorf("got %d edges, want 3", len(data.Edges))
	}
	for _, e := range data.Edges {
		if !strings.HasPrefix(e.Target, paperPrefix) {
			t.Errorf("edge target should be a paper ID, got %q", e.Target)
		}
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	data := GraphData{
		Nodes: []Node{{ID: "A", Type: NodeTypePerson, Label: "A"}, {ID: "B", Type: NodeTypePerson, Label: "B"}},
		Edges: []Edge{{Source: "A", Target: "B", Weight: 3}},
	}

	out, err := data.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatalf("output is not Cytoscape JSON: %v", err)
	}
	if len(elements.Nodes) != 2 || len(elements.Edges) != 1 {
		t.Fatalf("got %d nodes and %d edges", len(elements.Nodes), len(elements.Edges))
	}
	edge := elements.Edges[0].Data
	if edge.ID != "A-B-0" {
		t.Errorf("edge ID = %q, want %q", edge.ID, "A-B-0")
	}
	if edge.Weight != 3 || edge.Label != "3" {
		t.Errorf("edge weight/label = %d/%q, want 3/\"3\"", edge.Weight, edge.Label)
	}
}

func TestIsEmpty(t *testing.T) {
	var data GraphData
	if !data.IsEmpty() {
		t.Error("zero GraphData should be empty")
	}
	data.Nodes = append(data.Nodes, Node{ID: "x"})
	if data.IsEmpty() {
		t.Error("GraphData with a node should not be empty")
	}
}
