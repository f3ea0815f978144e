package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/dashboard"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Compute the dashboard render model",
	Long: `Compute the complete render model for the current display options:
the people, paper and bipartite networks (Cytoscape.js elements), the paper
list and both centrality charts.

Examples:
  confnet render
  confnet render --remove-sandy --remove-posters
  confnet render --human`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	model, err := dashboard.Render(ds, currentFlags(), renderOptions(cfg))
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	if !humanOutput {
		return outputJSON(model)
	}

	outputHuman("Options:        %v\n", model.Options)
	outputHuman("Records:        %d\n", model.Stats.Records)
	outputHuman("People:         %d\n", model.Stats.People)
	outputHuman("Collaborations: %d\n", model.Stats.Collaborations)
	outputHuman("Papers:         %d (%d links)\n", model.Stats.Papers, model.Stats.PaperLinks)
	if len(model.Betweenness) > 0 {
		top := model.Betweenness[0]
		outputHuman("Top broker:     %s (%.3f)\n", top.Label, top.Value)
	}
	if len(model.Closeness) > 0 {
		top := model.Closeness[0]
		outputHuman("Most central:   %s (%.3f)\n", top.Label, top.Value)
	}
	return nil
}
