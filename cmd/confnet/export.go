package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/export"
	"github.com/matsen/confnet/internal/record"
	"github.com/matsen/confnet/internal/storage"
)

var (
	exportJSONL  string
	exportBibtex bool
)

func init() {
	exportCmd.Flags().StringVar(&exportJSONL, "jsonl", "", "Write records as JSON lines to this file")
	exportCmd.Flags().BoolVar(&exportBibtex, "bibtex", false, "Print records as BibTeX")
	exportCmd.MarkFlagsMutuallyExclusive("jsonl", "bibtex")
	exportCmd.MarkFlagsOneRequired("jsonl", "bibtex")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to JSONL or BibTeX",
	Long: `Export the dataset in dataset order. --remove-posters drops posters.

Examples:
  confnet export --jsonl records.jsonl
  confnet export --bibtex --remove-posters > program.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	records := record.Filter(ds.Records(), currentFlags())

	if exportBibtex {
		// BibTeX is always text output, never JSON
		fmt.Print(export.ToBibTeXList(records))
		return nil
	}

	if err := storage.WriteAll(exportJSONL, records); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if !humanOutput {
		return outputJSON(OutputResponse{Output: exportJSONL, Records: len(records)})
	}
	outputHuman("Exported %d records to %s\n", len(records), exportJSONL)
	return nil
}
