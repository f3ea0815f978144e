package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/confnet/internal/record"
)

func TestReadAll_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ReadAll() returned %d records, want 0", len(records))
	}
}

func TestReadAll_NonExistentFile(t *testing.T) {
	records, err := ReadAll("/nonexistent/path/records.jsonl")
	if err != nil {
		t.Fatalf("ReadAll() error = %v (should return nil for nonexistent file)", err)
	}
	if len(records) != 0 {
		t.Errorf("ReadAll() returned %v, want nil or empty slice", records)
	}
}

func TestReadAll_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"title":"A","category":"Talk","participants":["X","Y"]}

{"title":"B","category":"Poster","participants":["Z"]}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ReadAll() returned %d records, want 2", len(records))
	}
	if records[1].Category != "Poster" || records[1].Participants[0] != "Z" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestReadAll_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"title":"A","category":"Talk","participants":["X"]}
{not json}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := ReadAll(path)
	if err == nil {
		t.Fatal("ReadAll() expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}

func TestWriteAll_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	want := testRecords()

	if err := WriteAll(path, want); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != len(want) {
		t.Errorf("file has %d lines, want %d", lines, len(want))
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadAll() returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].String() != want[i].String() {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteAll_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	if err := WriteAll(path, testRecords()); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := WriteAll(path, []record.Record{{Title: "Only", Category: "Talk", Participants: []string{"A"}}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Only" {
		t.Errorf("ReadAll() = %v, want single record Only", got)
	}
}
