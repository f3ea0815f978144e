// Package record defines the dataset rows (papers, posters, talks) and the
// filters applied to them before graph construction.
package record

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"
)

// PosterCategory is the category tag that the poster filter drops.
const PosterCategory = "Poster"

// Checklist labels understood by FlagsFromOptions.
const (
	OptionRemoveNamed   = "Remove Sandy"
	OptionRemovePosters = "Remove Posters"
)

// Record is one titled item with its category and participants.
type Record struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Participants []string `json:"participants"`
}

// IsPoster reports whether the record carries the poster category.
func (r Record) IsPoster() bool {
	return r.Category == PosterCategory
}

// Fields returns the record in its positional form: title, category, participants...
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r.Participants)+2)
	fields = append(fields, r.Title, r.Category)
	return append(fields, r.Participants...)
}

// String renders the record as a single line, the same format the dataset uses.
func (r Record) String() string {
	return strings.Join(r.Fields(), FieldSeparator)
}

func (r Record) clone() Record {
	r.Participants = slices.Clone(r.Participants)
	return r
}

// Flags are the two display options toggled by the dashboard.
type Flags struct {
	IncludeNamedIndividual bool `json:"include_named_individual"`
	IncludePosters         bool `json:"include_posters"`
}

// DefaultFlags includes everything (no option checked).
func DefaultFlags() Flags {
	return Flags{IncludeNamedIndividual: true, IncludePosters: true}
}

// FlagsFromOptions maps checked checklist labels to flags. Unknown labels are ignored.
func FlagsFromOptions(options []string) Flags {
	flags := DefaultFlags()
	for _, opt := range options {
		switch opt {
		case OptionRemoveNamed:
			flags.IncludeNamedIndividual = false
		case OptionRemovePosters:
			flags.IncludePosters = false
		}
	}
	return flags
}

// Options returns the checklist labels that correspond to these flags.
func (f Flags) Options() []string {
	var opts []string
	if !f.IncludeNamedIndividual {
		opts = append(opts, OptionRemoveNamed)
	}
	if !f.IncludePosters {
		opts = append(opts, OptionRemovePosters)
	}
	return opts
}

// Filter drops poster records when flags.IncludePosters is false. Input order
// is kept and participant lists are never modified: removing the named
// individual is a graph-construction concern, so the paper list stays intact.
func Filter(records []Record, flags Flags) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !flags.IncludePosters && r.IsPoster() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PaperList returns the records shown in the paper list view. The list is
// sorted by title, category and participants, then shuffled with seed when
// seed is non-zero. The named-individual flag does not affect the listing.
func PaperList(records []Record, flags Flags, seed int64) []Record {
	papers := Filter(records, flags)
	slices.SortStableFunc(papers, compareRecords)
	if seed != 0 {
		rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
		rng.Shuffle(len(papers), func(i, j int) {
			papers[i], papers[j] = papers[j], papers[i]
		})
	}
	return papers
}

func compareRecords(a, b Record) int {
	if c := cmp.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	return slices.Compare(a.Participants, b.Participants)
}
