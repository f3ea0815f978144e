package export

import (
	"strings"
	"testing"

	"github.com/matsen/confnet/internal/record"
)

func TestToBibTeX_Talk(t *testing.T) {
	r := record.Record{
		Title:        "Crowds & Cascades",
		Category:     "Talk",
		Participants: []string{"Jane Q Doe", "Sandy"},
	}

	got := ToBibTeX(r, "Doe-crowds")

	for _, want := range []string{
		"@inproceedings{Doe-crowds,",
		`author = {Doe, Jane Q and Sandy}`,
		`title = {Crowds \& Cascades}`,
		`booktitle = {IC2S2}`,
		`note = {Talk}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() missing %q, got:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should end with closing brace, got:\n%s", got)
	}
}

func TestToBibTeX_Poster(t *testing.T) {
	r := record.Record{Title: "Mobility", Category: record.PosterCategory, Participants: []string{"Bob"}}

	got := ToBibTeX(r, "Bob-mobility")

	if !strings.HasPrefix(got, "@misc{Bob-mobility,") {
		t.Errorf("poster should be @misc, got:\n%s", got)
	}
	if !strings.Contains(got, `howpublished = {Poster at IC2S2}`) {
		t.Errorf("poster should carry howpublished, got:\n%s", got)
	}
}

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name string
		r    record.Record
		want string
	}{
		{"last name and first long word", record.Record{Title: "The Rise of Crowds", Participants: []string{"Jane Doe"}}, "Doe-rise"},
		{"single name", record.Record{Title: "Mobility Patterns", Participants: []string{"sandy"}}, "Sandy-mobility"},
		{"punctuation stripped", record.Record{Title: "Co-authorship: networks", Participants: []string{"O'Neil"}}, "Oneil-coauthorship"},
		{"no long word", record.Record{Title: "A B C", Participants: []string{"Kim"}}, "Kim"},
		{"nothing usable", record.Record{Title: "?!", Participants: nil}, "record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CitationKey(tt.r); got != tt.want {
				t.Errorf("CitationKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToBibTeXList_UniqueKeys(t *testing.T) {
	records := []record.Record{
		{Title: "Crowds", Category: "Talk", Participants: []string{"Jane Doe"}},
		{Title: "Crowds", Category: "Poster", Participants: []string{"John Doe"}},
		{Title: "Crowds", Category: "Talk", Participants: []string{"Jim Doe"}},
	}

	got := ToBibTeXList(records)

	for _, want := range []string{"{Doe-crowds,", "{Doe-crowds-2,", "{Doe-crowds-3,"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeXList() missing key %q, got:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "\n@"); n != 2 {
		t.Errorf("entries should be separated by blank lines, found %d separators", n)
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"A & B", `A \& B`},
		{"x_y", `x\_y`},
		{"{braces}", `\{braces\}`},
		{"~", `\textasciitilde{}`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeLatex(tt.input); got != tt.want {
				t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
