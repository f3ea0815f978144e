package viz

import (
	"regexp"
	"strings"
	"testing"
)

// html/template pads JS values with spaces, so match loosely.
var (
	liveTrue  = regexp.MustCompile(`const live =\s*true\s*;`)
	liveFalse = regexp.MustCompile(`const live =\s*false\s*;`)
)

const minimalModel = `{"options":[],"stats":{"records":0,"people":0,"collaborations":0},"people":{"nodes":[],"edges":[]}}`

func TestGenerateHTML(t *testing.T) {
	opts := DefaultOptions()
	opts.Live = true

	html, err := GenerateHTML([]byte(minimalModel), opts)
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}

	for _, want := range []string{
		"<title>Human Dynamics Takes Over IC2S2</title>",
		"cytoscape.min.js",
		"plotly",
		`id="people-graph"`,
		`id="betweenness"`,
		`id="closeness"`,
		"Remove Sandy",
		"Remove Posters",
		`"cose"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("generated HTML missing %q", want)
		}
	}
	if !liveTrue.MatchString(html) {
		t.Error("live flag not rendered into page")
	}
}

func TestGenerateHTML_Static(t *testing.T) {
	html, err := GenerateHTML([]byte(minimalModel), HTMLOptions{Layout: "tree"})
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	if !liveFalse.MatchString(html) {
		t.Error("static page should not be live")
	}
	if !strings.Contains(html, `"breadthfirst"`) {
		t.Error("tree layout should map to breadthfirst")
	}
}

func TestGenerateHTML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		model string
		opts  HTMLOptions
	}{
		{"empty model", "", DefaultOptions()},
		{"invalid JSON", "{not json", DefaultOptions()},
		{"invalid layout", minimalModel, HTMLOptions{Layout: "spiral"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateHTML([]byte(tt.model), tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLayoutToCytoscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "cose"},
		{"force", "cose"},
		{"circle", "circle"},
		{"grid", "grid"},
		{"tree", "breadthfirst"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := layoutToCytoscape(tt.input); got != tt.want {
				t.Errorf("layoutToCytoscape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
