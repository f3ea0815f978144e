package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/person"
	"github.com/matsen/confnet/internal/record"
)

func init() {
	rootCmd.AddCommand(personCmd)
}

var personCmd = &cobra.Command{
	Use:   "person <name>",
	Short: "Show the papers of a participant",
	Long: `Show every record a participant appears on.

The name is matched the way people search for authors: a single word
matches a last (or only) name case-insensitively, "First Last" and
"Last, First" also match on a first-name prefix.

Examples:
  confnet person Sandy
  confnet person "Doe, J" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPerson,
}

// PersonResult lists the records of one matched participant.
type PersonResult struct {
	Name   string          `json:"name"`
	Papers []record.Record `json:"papers"`
}

func runPerson(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	db := mustOpenIndex(cfg, ds)
	defer db.Close()

	query := strings.Join(args, " ")
	participants, err := db.Participants()
	if err != nil {
		exitWithError(ExitError, "listing participants: %v", err)
	}
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}

	matches := person.Resolve(person.ParseQuery(query), names)
	if len(matches) == 0 {
		exitWithError(ExitNotFound, "no participant matches %q", query)
	}

	results := make([]PersonResult, 0, len(matches))
	for _, name := range matches {
		papers, err := db.PapersByParticipant(name)
		if err != nil {
			exitWithError(ExitError, "listing papers for %s: %v", name, err)
		}
		results = append(results, PersonResult{Name: name, Papers: record.Filter(papers, currentFlags())})
	}

	if !humanOutput {
		return outputJSON(results)
	}
	for i, res := range results {
		if i > 0 {
			outputHuman("\n")
		}
		outputHuman("%s (%d)\n", res.Name, len(res.Papers))
		for _, r := range res.Papers {
			outputHuman("  %s\n", formatRecordLine(r))
		}
	}
	return nil
}
