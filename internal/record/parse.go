package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FieldSeparator separates the positional fields of a dataset line.
const FieldSeparator = ", "

// MinFields is the smallest usable line: title, category and one participant.
const MinFields = 3

// MaxLineCapacity bounds the scanner buffer for a single dataset line.
const MaxLineCapacity = 1024 * 1024

// ErrTooFewFields is wrapped by ParseError when a line lacks a participant.
var ErrTooFewFields = errors.New("line needs a title, a category and at least one participant")

// ParseError reports a malformed dataset line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine splits one dataset line into a Record.
func ParseLine(line string) (Record, error) {
	line = strings.TrimRight(line, " \t\r\n")
	fields := strings.Split(line, FieldSeparator)
	if len(fields) < MinFields {
		return Record{}, ErrTooFewFields
	}
	return Record{
		Title:        fields[0],
		Category:     fields[1],
		Participants: fields[2:],
	}, nil
}

// Parse reads every non-blank line from r. It stops at the first malformed line.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxLineCapacity)

	var records []Record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		rec, err := ParseLine(text)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Text: text, Err: err}
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return records, nil
}

// ParseFile opens path and parses it as a dataset.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
