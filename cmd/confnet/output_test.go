package main

import (
	"strings"
	"testing"

	"github.com/matsen/confnet/internal/config"
	"github.com/matsen/confnet/internal/network"
	"github.com/matsen/confnet/internal/record"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"long", "abcdefghij", 6, "abc..."},
		{"tiny limit", "abcdefghij", 2, "ab"},
		{"multibyte", "Zürich Zürich", 8, "Züric..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatRecordLine(t *testing.T) {
	r := record.Record{Title: "Crowds", Category: "Talk", Participants: []string{"Alice", "Bob"}}
	line := formatRecordLine(r)

	if !strings.HasPrefix(line, "Crowds") {
		t.Errorf("line should start with title, got %q", line)
	}
	if !strings.Contains(line, "Talk") {
		t.Errorf("line should contain category, got %q", line)
	}
	if !strings.HasSuffix(line, "Alice, Bob") {
		t.Errorf("line should end with participants, got %q", line)
	}
}

func TestAllScores(t *testing.T) {
	scores := map[string]float64{"Bob": 0.5, "Dave": 0, "Alice": 0, "Carol": 0.25}
	ranked := []network.Score{{Label: "Bob", Value: 0.5}, {Label: "Carol", Value: 0.25}}

	got := allScores(scores, ranked)

	want := []string{"Bob", "Carol", "Alice", "Dave"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, label := range want {
		if got[i].Label != label {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Label, label)
		}
	}
	if got[2].Value != 0 || got[3].Value != 0 {
		t.Errorf("appended scores should be zero: %+v", got[2:])
	}
	if len(ranked) != 2 {
		t.Errorf("ranked was modified: %+v", ranked)
	}
}

func TestCurrentFlags(t *testing.T) {
	oldNamed, oldPosters := removeNamed, removePosters
	defer func() { removeNamed, removePosters = oldNamed, oldPosters }()

	removeNamed, removePosters = false, false
	if got := currentFlags(); got != record.DefaultFlags() {
		t.Errorf("no switches: got %+v, want defaults", got)
	}

	removeNamed, removePosters = true, false
	got := currentFlags()
	if got.IncludeNamedIndividual || !got.IncludePosters {
		t.Errorf("--remove-sandy: got %+v", got)
	}

	removeNamed, removePosters = false, true
	got = currentFlags()
	if !got.IncludeNamedIndividual || got.IncludePosters {
		t.Errorf("--remove-posters: got %+v", got)
	}
}

func TestNormalizeConfigKey(t *testing.T) {
	tests := map[string]string{
		"dataset-path":   "dataset_path",
		"dataset_path":   "dataset_path",
		"DatasetPath":    "dataset_path",
		"addr":           "listen_addr",
		"Log-Level":      "log_level",
		"layout":         "layout",
		" rate-limit ":   "rate_limit",
		"allowedorigins": "allowed_origins",
	}
	for in, want := range tests {
		if got := normalizeConfigKey(in); got != want {
			t.Errorf("normalizeConfigKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigValue(t *testing.T) {
	cfg := config.Default()

	v, ok := configValue(cfg, "excluded_name")
	if !ok || v != "Sandy" {
		t.Errorf("excluded_name = %v, %v", v, ok)
	}

	v, ok = configValue(cfg, "allowed_origins")
	if !ok {
		t.Fatal("allowed_origins should be known")
	}
	if origins, _ := v.([]string); origins == nil {
		t.Errorf("allowed_origins should be an empty slice, got %#v", v)
	}

	if _, ok := configValue(cfg, "nope"); ok {
		t.Error("unknown key should not be found")
	}
}
