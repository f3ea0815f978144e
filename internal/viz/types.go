// Package viz converts collaboration networks into Cytoscape.js elements and
// renders the dashboard page.
package viz

// Node types.
const (
	NodeTypePerson = "person"
	NodeTypePaper  = "paper"
)

// GraphData contains all data needed to draw one network.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a person or a paper in a drawing.
type Node struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "person" or "paper"

	// Display
	Label string `json:"label"`

	// Paper-specific fields (for tooltips)
	Category     string `json:"category,omitempty"`
	Participants string `json:"participants,omitempty"` // "A, B, C"

	// Sizing
	Degree int `json:"degree"`
}

// Edge is an undirected weighted link. Weight is the co-occurrence count.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
