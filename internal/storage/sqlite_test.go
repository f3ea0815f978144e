package storage

import (
	"path/filepath"
	"testing"

	"github.com/matsen/confnet/internal/record"
)

func testRecords() []record.Record {
	return []record.Record{
		{Title: "Crowd Dynamics", Category: "Talk", Participants: []string{"Alice", "Sandy", "Bob"}},
		{Title: "Mobility 100%", Category: "Poster", Participants: []string{"Bob", "Carol"}},
		{Title: "Network Growth", Category: "Talk", Participants: []string{"Carol", "Sandy", "Sandy"}},
		{Title: "Solo_Work", Category: "Tutorial", Participants: []string{"Dave"}},
	}
}

// setupTestDB creates a test database loaded with testRecords.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	n, err := db.Rebuild(testRecords())
	if err != nil {
		t.Fatalf("Failed to rebuild DB: %v", err)
	}
	if n != 4 {
		t.Fatalf("Rebuild() = %d, want 4", n)
	}
	return db
}

func titles(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestOpenDB_CreatesSchema(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "new.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestRebuild_Replaces(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.Rebuild(testRecords()[:1]); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() after second rebuild = %d, want 1", count)
	}

	people, err := db.Participants()
	if err != nil {
		t.Fatalf("Participants() error = %v", err)
	}
	if len(people) != 3 {
		t.Errorf("Participants() = %v, want 3 entries", people)
	}
}

func TestPapersByParticipant(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name string
		want []string
	}{
		{"Sandy", []string{"Crowd Dynamics", "Network Growth"}},
		{"Dave", []string{"Solo_Work"}},
		{"sandy", nil},
		{"Nobody", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.PapersByParticipant(tt.name)
			if err != nil {
				t.Fatalf("PapersByParticipant() error = %v", err)
			}
			gotTitles := titles(got)
			if len(gotTitles) != len(tt.want) {
				t.Fatalf("PapersByParticipant(%q) = %v, want %v", tt.name, gotTitles, tt.want)
			}
			for i := range tt.want {
				if gotTitles[i] != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, gotTitles[i], tt.want[i])
				}
			}
		})
	}
}

func TestPapersByParticipant_KeepsParticipants(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.PapersByParticipant("Carol")
	if err != nil {
		t.Fatalf("PapersByParticipant() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Duplicate names in the source line are preserved on the record.
	if len(got[1].Participants) != 3 {
		t.Errorf("Network Growth participants = %v, want 3 entries", got[1].Participants)
	}
	if got[0].Category != "Poster" {
		t.Errorf("Mobility category = %q, want Poster", got[0].Category)
	}
}

func TestParticipants(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.Participants()
	if err != nil {
		t.Fatalf("Participants() error = %v", err)
	}

	want := []ParticipantCount{
		{"Bob", 2},
		{"Carol", 2},
		{"Sandy", 2},
		{"Alice", 1},
		{"Dave", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Participants() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Participants()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCountByCategory(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory() error = %v", err)
	}

	want := map[string]int{"Talk": 2, "Poster": 1, "Tutorial": 1}
	if len(got) != len(want) {
		t.Fatalf("CountByCategory() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("CountByCategory()[%q] = %d, want %d", k, got[k], v)
		}
	}
}

func TestSearchTitles(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name   string
		substr string
		limit  int
		want   int
	}{
		{"case insensitive", "network", 0, 1},
		{"shared word", "o", 0, 4},
		{"limit", "o", 2, 2},
		{"percent is literal", "100%", 0, 1},
		{"underscore is literal", "o_w", 0, 1},
		{"no match", "quantum", 0, 0},
		{"empty matches all", "", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.SearchTitles(tt.substr, tt.limit)
			if err != nil {
				t.Fatalf("SearchTitles() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("SearchTitles(%q, %d) = %v, want %d results", tt.substr, tt.limit, titles(got), tt.want)
			}
		})
	}
}
