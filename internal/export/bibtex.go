// Package export provides functions to export records to citation formats.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/matsen/confnet/internal/person"
	"github.com/matsen/confnet/internal/record"
)

// Booktitle is written on every non-poster entry.
const Booktitle = "IC2S2"

// ToBibTeX converts a record to a BibTeX entry with the given citation key.
func ToBibTeX(r record.Record, key string) string {
	entryType := determineEntryType(r)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))

	if len(r.Participants) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(r.Participants)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(r.Title)))

	if entryType == "inproceedings" {
		b.WriteString(fmt.Sprintf("  booktitle = {%s},\n", Booktitle))
	} else {
		b.WriteString(fmt.Sprintf("  howpublished = {%s at %s},\n", escapeLatex(r.Category), Booktitle))
	}

	if r.Category != "" {
		b.WriteString(fmt.Sprintf("  note = {%s},\n", escapeLatex(r.Category)))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts records to BibTeX, assigning each a unique key.
func ToBibTeXList(records []record.Record) string {
	used := make(map[string]bool, len(records))
	var entries []string
	for _, r := range records {
		key := uniqueKey(used, CitationKey(r))
		used[key] = true
		entries = append(entries, ToBibTeX(r, key))
	}
	return strings.Join(entries, "\n")
}

// CitationKey builds a key from the first participant's last name and the
// first significant title word, e.g. "Doe-crowds".
func CitationKey(r record.Record) string {
	var parts []string
	if len(r.Participants) > 0 {
		if last := slugify(person.SplitName(r.Participants[0]).Last); last != "" {
			parts = append(parts, strings.ToUpper(last[:1])+last[1:])
		}
	}
	for _, word := range strings.Fields(r.Title) {
		if w := slugify(word); len(w) > 3 {
			parts = append(parts, w)
			break
		}
	}
	if len(parts) == 0 {
		return "record"
	}
	return strings.Join(parts, "-")
}

// uniqueKey appends -2, -3, etc. when base is taken.
func uniqueKey(used map[string]bool, base string) string {
	if !used[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !used[candidate] {
			return candidate
		}
	}
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// determineEntryType returns the BibTeX entry type for a record.
func determineEntryType(r record.Record) string {
	if r.IsPoster() {
		return "misc"
	}
	return "inproceedings"
}

// formatAuthors formats participants in BibTeX style: "Last, First and Last".
func formatAuthors(participants []string) string {
	var formatted []string
	for _, p := range participants {
		n := person.SplitName(p)
		if n.First != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(n.Last), escapeLatex(n.First)))
		} else {
			formatted = append(formatted, escapeLatex(n.Last))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
