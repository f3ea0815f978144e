package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/dashboard"
	"github.com/matsen/confnet/internal/network"
)

var (
	centralityMetric string
	centralityAll    bool
)

func init() {
	centralityCmd.Flags().StringVar(&centralityMetric, "metric", string(network.MetricBetweenness), "Centrality measure: betweenness or closeness")
	centralityCmd.Flags().BoolVar(&centralityAll, "all", false, "Include people whose score is zero")
	rootCmd.AddCommand(centralityCmd)
}

var centralityCmd = &cobra.Command{
	Use:   "centrality",
	Short: "Rank people by centrality in the co-authorship network",
	Long: `Rank people by betweenness or closeness centrality.

Scores are computed on the whole people network for the current display
options. People scoring zero are hidden unless --all is given.

Examples:
  confnet centrality
  confnet centrality --metric closeness --remove-posters
  confnet centrality --all --human`,
	Args: cobra.NoArgs,
	RunE: runCentrality,
}

// CentralityResponse is the JSON output of the centrality command.
type CentralityResponse struct {
	Metric string          `json:"metric"`
	Scores []network.Score `json:"scores"`
}

func runCentrality(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	metric := network.Metric(centralityMetric)
	scores, ranked, err := dashboard.Centrality(ds, currentFlags(), renderOptions(cfg), metric)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if centralityAll {
		ranked = allScores(scores, ranked)
	}

	if !humanOutput {
		return outputJSON(CentralityResponse{Metric: string(metric), Scores: ranked})
	}

	if len(ranked) == 0 {
		outputHuman("No one has a non-zero %s score.\n", metric)
		return nil
	}
	outputHuman("%-*s  %s\n", LabelMaxLen, "Person", metric)
	for _, s := range ranked {
		outputHuman("%-*s  %.4f\n", LabelMaxLen, truncateString(s.Label, LabelMaxLen), s.Value)
	}
	return nil
}

// allScores appends the zero scores, sorted by name, after the ranked ones.
func allScores(scores map[string]float64, ranked []network.Score) []network.Score {
	var zeros []string
	for label, v := range scores {
		if v == 0 {
			zeros = append(zeros, label)
		}
	}
	slices.Sort(zeros)

	out := append([]network.Score{}, ranked...)
	for _, label := range zeros {
		out = append(out, network.Score{Label: label})
	}
	return out
}
