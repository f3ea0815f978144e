package main

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/record"
	"github.com/matsen/confnet/internal/storage"
)

var statsTop int

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "Number of most prolific participants to show (0 = all)")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the dataset",
	Long: `Summarize the dataset: record counts by category and the participants
with the most records.

Examples:
  confnet stats
  confnet stats --top 5 --human`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResponse is the JSON output of the stats command.
type StatsResponse struct {
	Records      int                        `json:"records"`
	Categories   map[string]int             `json:"categories"`
	Participants []storage.ParticipantCount `json:"participants"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	db := mustOpenIndex(cfg, ds)
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting records: %v", err)
	}
	categories, err := db.CountByCategory()
	if err != nil {
		exitWithError(ExitError, "counting categories: %v", err)
	}
	participants, err := db.Participants()
	if err != nil {
		exitWithError(ExitError, "listing participants: %v", err)
	}
	if statsTop > 0 && len(participants) > statsTop {
		participants = participants[:statsTop]
	}

	if !humanOutput {
		return outputJSON(StatsResponse{Records: count, Categories: categories, Participants: participants})
	}

	outputHuman("Records: %d\n\n", count)
	outputHuman("By category:\n")
	for _, c := range slices.Sorted(maps.Keys(categories)) {
		marker := ""
		if c == record.PosterCategory {
			marker = "  (removed by --remove-posters)"
		}
		outputHuman("  %-20s %d%s\n", c, categories[c], marker)
	}
	outputHuman("\nMost records:\n")
	for _, p := range participants {
		outputHuman("  %-*s %d\n", LabelMaxLen, truncateString(p.Name, LabelMaxLen), p.Papers)
	}
	return nil
}
