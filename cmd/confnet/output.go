package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/confnet/internal/record"
)

// Constants for output formatting.
const (
	ListTitleMaxLen = 50 // Used in papers and person list output
	LabelMaxLen     = 30 // Used in centrality tables
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OutputResponse reports a file written by a command.
type OutputResponse struct {
	Output  string `json:"output"`
	Records int    `json:"records,omitempty"`
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatRecordLine renders one record for list views.
func formatRecordLine(r record.Record) string {
	return fmt.Sprintf("%-*s  %-8s  %s",
		ListTitleMaxLen, truncateString(r.Title, ListTitleMaxLen),
		r.Category,
		strings.Join(r.Participants, ", "))
}

// printRecords writes records as JSON or as an aligned list.
func printRecords(records []record.Record) {
	if records == nil {
		records = []record.Record{}
	}
	if !humanOutput {
		outputJSON(records)
		return
	}
	if len(records) == 0 {
		outputHuman("No records.\n")
		return
	}
	for _, r := range records {
		outputHuman("%s\n", formatRecordLine(r))
	}
}
