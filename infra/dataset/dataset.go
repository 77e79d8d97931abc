// Package dataset reads the CSV inputs of an experiment: the hourly weather
// history used to train the weather process, and the list of candidate
// panels.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmpty is returned for a file without data rows.
	ErrEmpty = errors.New("no data rows")
)

// table is a CSV file with its header indexed by lower-cased name.
type table struct {
	cols map[string]int
	rows [][]string
	// first is the 1-based line number of rows[0].
	first int
}

func readTable(r io.Reader, skip int) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	t := &table{cols: make(map[string]int, len(header)), first: 2 + skip}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := t.cols[h]; !dup {
			t.cols[h] = i
		}
	}
	for i := 0; i < skip; i++ {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, ErrEmpty
			}
			return nil, err
		}
	}
	t.rows, err = cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, ErrEmpty
	}
	return t, nil
}

func (t *table) index(name string) (int, error) {
	i, ok := t.cols[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return i, nil
}

// cell returns field i of row n, failing on short rows.
func (t *table) cell(n, i int) (string, error) {
	row := t.rows[n]
	if i >= len(row) {
		return "", fmt.Errorf("line %d: expected at least %d fields, got %d", t.first+n, i+1, len(row))
	}
	return strings.TrimSpace(row[i]), nil
}

func (t *table) float(n, i int) (float64, error) {
	s, err := t.cell(n, i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", t.first+n, err)
	}
	return v, nil
}

func openWith[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
