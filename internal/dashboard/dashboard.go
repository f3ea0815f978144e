// Package dashboard turns a dataset and the two display flags into a render
// model: the three network drawings, the paper list and the centrality charts.
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/matsen/confnet/internal/network"
	"github.com/matsen/confnet/internal/record"
	"github.com/matsen/confnet/internal/viz"
)

// DefaultExcludedName is the person removed by the "Remove Sandy" option.
const DefaultExcludedName = "Sandy"

// ErrNoDataset is returned when Render is called without a dataset.
var ErrNoDataset = errors.New("no dataset loaded")

// Options are the render settings that come from configuration.
type Options struct {
	ExcludedName string // person dropped when Flags.IncludeNamedIndividual is false
	Seed         int64  // fixed paper list shuffle seed
	Shuffle      bool   // with Seed 0, shuffle the paper list anew on every render
}

// PaperSeed returns the seed for one paper list. A configured Seed always
// wins; otherwise Shuffle draws a fresh non-zero seed and 0 keeps sorted order.
func (o Options) PaperSeed() int64 {
	if o.Seed != 0 || !o.Shuffle {
		return o.Seed
	}
	for {
		if s := rand.Int64(); s != 0 {
			return s
		}
	}
}

// DefaultOptions returns the settings used when no configuration is given.
func DefaultOptions() Options {
	return Options{ExcludedName: DefaultExcludedName}
}

// Stats summarizes one render.
type Stats struct {
	Records        int `json:"records"`
	People         int `json:"people"`
	Collaborations int `json:"collaborations"`
	Papers         int `json:"papers"`
	PaperLinks     int `json:"paper_links"`
}

// Model is everything the dashboard draws for one combination of flags.
type Model struct {
	Flags       record.Flags          `json:"flags"`
	Options     []string              `json:"options"`
	People      viz.CytoscapeElements `json:"people"`
	Papers      viz.CytoscapeElements `json:"papers"`
	Bipartite   viz.CytoscapeElements `json:"bipartite"`
	PaperList   []record.Record       `json:"paper_list"`
	Betweenness []network.Score       `json:"betweenness"`
	Closeness   []network.Score       `json:"closeness"`
	Stats       Stats                 `json:"stats"`
}

// Render computes the model for ds under flags. It reads ds without
// modifying it and keeps no state, so concurrent calls are independent.
func Render(ds *record.Dataset, flags record.Flags, opts Options) (*Model, error) {
	if ds == nil {
		return nil, ErrNoDataset
	}

	all := ds.Records()
	filtered := record.Filter(all, flags)

	people := network.BuildPeople(filtered, flags.IncludeNamedIndividual, opts.ExcludedName)
	papers := network.BuildPapers(filtered)
	memberships := network.BuildBipartite(filtered, flags.IncludeNamedIndividual, opts.ExcludedName)

	peopleData := viz.FromPeople(people)
	paperData := viz.FromPapers(papers, filtered)
	bipartiteData := viz.FromBipartite(memberships, filtered)

	options := flags.Options()
	if options == nil {
		options = []string{}
	}

	return &Model{
		Flags:       flags,
		Options:     options,
		People:      peopleData.ToCytoscape(),
		Papers:      paperData.ToCytoscape(),
		Bipartite:   bipartiteData.ToCytoscape(),
		PaperList:   record.PaperList(all, flags, opts.PaperSeed()),
		Betweenness: network.Rank(network.Betweenness(people)),
		Closeness:   network.Rank(network.Closeness(people)),
		Stats: Stats{
			Records:        len(filtered),
			People:         people.NodeCount(),
			Collaborations: people.EdgeCount(),
			Papers:         papers.NodeCount(),
			PaperLinks:     papers.EdgeCount(),
		},
	}, nil
}

// Centrality scores the people network for flags with one metric and returns
// the full, unfiltered score map alongside the ranked display list.
func Centrality(ds *record.Dataset, flags record.Flags, opts Options, metric network.Metric) (map[string]float64, []network.Score, error) {
	if ds == nil {
		return nil, nil, ErrNoDataset
	}
	filtered := record.Filter(ds.Records(), flags)
	people := network.BuildPeople(filtered, flags.IncludeNamedIndividual, opts.ExcludedName)

	scores, ok := network.Compute(people, metric)
	if !ok {
		return nil, nil, fmt.Errorf("unknown metric %q (valid: %v)", metric, network.ValidMetrics)
	}
	return scores, network.Rank(scores), nil
}

// HTML renders the model as a dashboard page.
func (m *Model) HTML(opts viz.HTMLOptions) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding render model: %w", err)
	}
	return viz.GenerateHTML(data, opts)
}
