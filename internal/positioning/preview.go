// Package positioning previews CFTC Commitments of Traders exports.
package positioning

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// DefaultRows is the number of data rows returned when no count is given.
const DefaultRows = 5

// MaxRows bounds the rows a caller may ask for.
const MaxRows = 1000

var ErrMalformedCSV = errors.New("malformed CSV")

// Table is the header plus the leading rows of a CSV upload.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Preview reads the header and the first rows of r. rows <= 0 means
// DefaultRows and larger counts are clamped to MaxRows. The remainder of the
// input is not read.
func Preview(r io.Reader, rows int) (Table, error) {
	if rows <= 0 {
		rows = DefaultRows
	}
	rows = min(rows, MaxRows)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("%w: empty input", ErrMalformedCSV)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	t := Table{Header: header, Rows: make([][]string, 0, min(rows, 64))}
	for len(t.Rows) < rows {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
