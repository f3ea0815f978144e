package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/dashboard"
	"github.com/matsen/confnet/internal/viz"
)

var (
	vizOutput string
	vizLayout string
	vizTitle  string
)

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizLayout, "layout", "", "Layout algorithm: force, circle, grid, or tree (default from config)")
	vizCmd.Flags().StringVar(&vizTitle, "title", "", "Page title")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate a static dashboard page",
	Long: `Generate a self-contained HTML dashboard for the current display options.

The page shows the people network, the paper network, the person-paper
bipartite network, the paper list and the betweenness and closeness bar
charts. The option checkboxes reflect the flags used; use 'confnet serve'
for a page that re-renders when they are toggled.

Examples:
  # Generate HTML to stdout
  confnet viz > dashboard.html

  # Generate to file without posters
  confnet viz --remove-posters --output dashboard.html

  # Use circular layout
  confnet viz --layout circle -o dashboard.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	model, err := dashboard.Render(ds, currentFlags(), renderOptions(cfg))
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	opts := viz.DefaultOptions()
	opts.Layout = cfg.Layout
	if vizLayout != "" {
		opts.Layout = vizLayout
	}
	if vizTitle != "" {
		opts.Title = vizTitle
	}

	// GenerateHTML validates options internally
	html, err := model.HTML(opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !humanOutput {
		return outputJSON(OutputResponse{Output: vizOutput})
	}
	outputHuman("Dashboard written to %s\n", vizOutput)
	return nil
}
