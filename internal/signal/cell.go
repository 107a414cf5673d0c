package signal

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// CellKind tags the outcome of parsing a single cell.
type CellKind int

const (
	NonNumeric CellKind = iota
	Numeric
)

// String returns a readable name for the kind.
func (k CellKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "non-numeric"
}

// Cell is the classification of one raw table cell.
type Cell struct {
	Kind  CellKind
	Value float64 // Parsed value; zero unless Kind is Numeric
	Raw   string  // Original text
}

// ClassifyCell parses raw as a finite real number.
// Surrounding whitespace, a UTF-8 byte order mark and full-width digits are
// tolerated. Empty cells, NaN and infinities classify as NonNumeric.
func ClassifyCell(raw string) Cell {
	cell := Cell{Kind: NonNumeric, Raw: raw}

	s := strings.TrimPrefix(raw, "\ufeff")
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return cell
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return cell
	}

	cell.Kind = Numeric
	cell.Value = v
	return cell
}

// classifyRow classifies every cell of a raw row.
func classifyRow(row []string) []Cell {
	cells := make([]Cell, len(row))
	for i, raw := range row {
		cells[i] = ClassifyCell(raw)
	}
	return cells
}

// hasNumeric reports whether any cell in the row is numeric.
func hasNumeric(cells []Cell) bool {
	for _, c := range cells {
		if c.Kind == Numeric {
			return true
		}
	}
	return false
}
