package record

import (
	"fmt"
	"time"
)

// Dataset is the read-only record set every render is computed from.
// It is built once and passed explicitly; nothing mutates it afterwards.
type Dataset struct {
	records  []Record
	source   string
	loadedAt time.Time
}

// NewDataset copies records into a new Dataset. source is informational
// (usually the file path).
func NewDataset(records []Record, source string) *Dataset {
	owned := make([]Record, len(records))
	for i, r := range records {
		owned[i] = r.clone()
	}
	return &Dataset{
		records:  owned,
		source:   source,
		loadedAt: time.Now().UTC(),
	}
}

// LoadDataset parses the dataset file at path.
func LoadDataset(path string) (*Dataset, error) {
	records, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return NewDataset(records, path), nil
}

// Records returns a copy of the records so callers cannot alter the dataset.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = r.clone()
	}
	return out
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Source returns where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the dataset was constructed.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
