package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/record"
)

var (
	papersSearch string
	papersLimit  int
)

func init() {
	papersCmd.Flags().StringVarP(&papersSearch, "search", "s", "", "Only records whose title contains this text (case-insensitive)")
	papersCmd.Flags().IntVar(&papersLimit, "limit", 0, "Maximum number of results (0 = no limit)")
	rootCmd.AddCommand(papersCmd)
}

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List the papers shown in the dashboard",
	Long: `List records as the dashboard's paper list shows them: sorted, then
shuffled. A configured seed makes the order reproducible; shuffle: false
keeps it sorted. --remove-posters drops posters; --remove-sandy does not
change the list.

With --search, titles are matched through the SQLite query cache and
results keep dataset order.

Examples:
  confnet papers --human
  confnet papers --remove-posters
  confnet papers --search network --limit 5`,
	Args: cobra.NoArgs,
	RunE: runPapers,
}

func runPapers(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	flags := currentFlags()

	var records []record.Record
	if papersSearch == "" {
		records = record.PaperList(ds.Records(), flags, renderOptions(cfg).PaperSeed())
	} else {
		db := mustOpenIndex(cfg, ds)
		defer db.Close()

		found, err := db.SearchTitles(papersSearch, 0)
		if err != nil {
			exitWithError(ExitError, "searching titles: %v", err)
		}
		records = record.Filter(found, flags)
	}

	if papersLimit > 0 && len(records) > papersLimit {
		records = records[:papersLimit]
	}
	printRecords(records)
	return nil
}
