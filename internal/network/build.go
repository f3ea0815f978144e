package network

import (
	"github.com/matsen/confnet/internal/record"
)

// BuildPeople builds the collaboration network from already filtered records.
// Every unordered pair of distinct participants in a record adds 1 to their
// edge weight. When includeNamed is false, excluded is dropped from the node
// set and every pair touching it is skipped; other weights are unaffected.
func BuildPeople(records []record.Record, includeNamed bool, excluded string) *Graph {
	g := NewGraph()
	keep := func(name string) bool {
		return includeNamed || name != excluded
	}

	for _, r := range records {
		people := distinct(r.Participants)
		for _, p := range people {
			if keep(p) {
				g.AddNode(p)
			}
		}
		for i, a := range people {
			for _, b := range people[i+1:] {
				if keep(a) && keep(b) {
					g.AddWeight(a, b, 1)
				}
			}
		}
	}
	return g
}

// BuildPapers builds the paper co-occurrence network. Nodes are record
// titles; two records are joined with a weight equal to the number of
// participants they share. A record is never compared with itself.
func BuildPapers(records []record.Record) *Graph {
	g := NewGraph()
	members := make([]map[string]struct{}, len(records))
	for i, r := range records {
		g.AddNode(r.Title)
		members[i] = make(map[string]struct{}, len(r.Participants))
		for _, p := range r.Participants {
			members[i][p] = struct{}{}
		}
	}

	for i := range records {
		for j := i + 1; j < len(records); j++ {
			if shared := overlap(members[i], members[j]); shared > 0 {
				g.AddWeight(records[i].Title, records[j].Title, shared)
			}
		}
	}
	return g
}

// Membership is one person–paper link of the bipartite network.
type Membership struct {
	Person string
	Paper  string
}

// BuildBipartite lists person–paper memberships, honoring the same exclusion
// as BuildPeople. Each person appears at most once per paper title.
func BuildBipartite(records []record.Record, includeNamed bool, excluded string) []Membership {
	seen := make(map[Membership]bool)
	var out []Membership
	for _, r := range records {
		for _, p := range distinct(r.Participants) {
			if !includeNamed && p == excluded {
				continue
			}
			m := Membership{Person: p, Paper: r.Title}
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// distinct drops repeated names, keeping first-occurrence order.
func distinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
