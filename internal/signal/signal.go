// Package signal turns raw tabular or manually entered input into a flat,
// ordered sequence of finite sample values.
package signal

import (
	"errors"
)

// Sentinel errors.
var (
	// ErrMalformedInput is returned when no numeric data survives sanitization
	// or the input cannot be parsed at all.
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptyInput is returned when the flattened sequence has zero elements.
	ErrEmptyInput = errors.New("empty input")
)

// RawTable is a table of unparsed cells, one slice per source row.
type RawTable [][]string

// Matrix is a sanitized table: every value is a finite real number.
// Rows may differ in length when the source rows were irregular.
type Matrix struct {
	Header []string    // Column names from a non-numeric first row (nil if absent)
	Rows   [][]float64 // Numeric rows in source order
}

// Len returns the total number of values in the matrix.
func (m Matrix) Len() int {
	n := 0
	for _, row := range m.Rows {
		n += len(row)
	}
	return n
}

// Sequence is the flattened, ordered list of samples fed to classification
// and rendering.
type Sequence []float64
