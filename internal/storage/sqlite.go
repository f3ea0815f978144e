package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/confnet/internal/record"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectRecordFields contains the standard field list for SELECT queries.
const selectRecordFields = `title, category, participants_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per dataset line, in file order
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			participants_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_category ON records(category);

		-- Distinct participants per record
		CREATE TABLE IF NOT EXISTS participants (
			record_id INTEGER NOT NULL REFERENCES records(id),
			name TEXT NOT NULL,
			PRIMARY KEY (record_id, name)
		);

		CREATE INDEX IF NOT EXISTS idx_participants_name ON participants(name);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the database and loads records into it.
func (d *DB) Rebuild(records []record.Record) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM participants"); err != nil {
		return 0, fmt.Errorf("clearing participants table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}

	recordStmt, err := tx.Prepare(`
		INSERT INTO records (id, title, category, participants_json)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing records insert: %w", err)
	}
	defer recordStmt.Close()

	participantStmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO participants (record_id, name) VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing participants insert: %w", err)
	}
	defer participantStmt.Close()

	for i, r := range records {
		participantsJSON, err := json.Marshal(r.Participants)
		if err != nil {
			return 0, fmt.Errorf("marshaling participants for %q: %w", r.Title, err)
		}

		id := i + 1
		if _, err := recordStmt.Exec(id, r.Title, r.Category, string(participantsJSON)); err != nil {
			return 0, fmt.Errorf("inserting record %q: %w", r.Title, err)
		}
		for _, name := range r.Participants {
			if _, err := participantStmt.Exec(id, name); err != nil {
				return 0, fmt.Errorf("inserting participant %q of %q: %w", name, r.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(records), nil
}

// Count returns the total number of records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

// PapersByParticipant returns the records the named person takes part in,
// in dataset order. Names match exactly.
func (d *DB) PapersByParticipant(name string) ([]record.Record, error) {
	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM records
		WHERE id IN (SELECT record_id FROM participants WHERE name = ?)
		ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("listing papers for %s: %w", name, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ParticipantCount is a person and the number of records they appear on.
type ParticipantCount struct {
	Name   string `json:"name"`
	Papers int    `json:"papers"`
}

// Participants returns every participant with their record count, most
// prolific first, ties broken by name.
func (d *DB) Participants() ([]ParticipantCount, error) {
	rows, err := d.db.Query(`
		SELECT name, COUNT(*) AS papers
		FROM participants
		GROUP BY name
		ORDER BY papers DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	var out []ParticipantCount
	for rows.Next() {
		var pc ParticipantCount
		if err := rows.Scan(&pc.Name, &pc.Papers); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// CountByCategory returns the number of records per category.
func (d *DB) CountByCategory() (map[string]int, error) {
	rows, err := d.db.Query("SELECT category, COUNT(*) FROM records GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// SearchTitles returns records whose title contains substr, ignoring ASCII
// case. A non-positive limit returns all matches.
func (d *DB) SearchTitles(substr string, limit int) ([]record.Record, error) {
	query := `SELECT ` + selectRecordFields + `
		FROM records
		WHERE title LIKE ? ESCAPE '\'
		ORDER BY id`
	args := []interface{}{"%" + escapeLike(strings.TrimSpace(substr)) + "%"}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching titles: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// escapeLike escapes LIKE wildcards so substr matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (record.Record, error) {
	var r record.Record
	var participantsJSON string
	if err := s.Scan(&r.Title, &r.Category, &participantsJSON); err != nil {
		return r, err
	}
	if err := json.Unmarshal([]byte(participantsJSON), &r.Participants); err != nil {
		return r, fmt.Errorf("parsing participants JSON for %q: %w", r.Title, err)
	}
	return r, nil
}

func scanRecords(rows *sql.Rows) ([]record.Record, error) {
	var out []record.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
