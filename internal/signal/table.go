package signal

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Policy decides how much surrounding data a non-numeric cell takes with it.
type Policy int

const (
	// DropCell drops only the offending cell and keeps the rest of its row.
	DropCell Policy = iota
	// DropRow drops every row that contains a non-numeric cell.
	DropRow
	// DropColumn drops every column that contains a non-numeric cell.
	DropColumn
)

// String returns the policy name used in configuration.
func (p Policy) String() string {
	switch p {
	case DropRow:
		return "row"
	case DropColumn:
		return "column"
	default:
		return "cell"
	}
}

// ParsePolicy converts a configuration name ("cell", "row", "column") into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cell":
		return DropCell, nil
	case "row":
		return DropRow, nil
	case "column":
		return DropColumn, nil
	default:
		return DropCell, fmt.Errorf("unknown sanitize policy %q", name)
	}
}

// candidateDelimiters are the delimiters considered when sniffing.
var candidateDelimiters = []rune{',', ';', '\t'}

// ReadTable reads delimited text into a RawTable.
// A zero delim sniffs the delimiter from the first non-empty line.
// Rows may have differing numbers of fields.
func ReadTable(r io.Reader, delim rune) (RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	if delim == 0 {
		delim = sniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var table RawTable
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing table: %w: %w", ErrMalformedInput, err)
		}
		table = append(table, record)
	}

	return table, nil
}

// sniffDelimiter picks the candidate delimiter that occurs most often in the
// first non-empty line. Defaults to a comma.
func sniffDelimiter(data []byte) rune {
	var line string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// Sanitize converts a RawTable into a Matrix holding only numeric values.
//
// A first row without any numeric cell is treated as the header: it is kept
// in Matrix.Header and never contributes values. The remaining rows are
// filtered according to policy, preserving order. Rows left empty are dropped.
// Returns ErrMalformedInput if no numeric value remains.
func Sanitize(table RawTable, policy Policy) (Matrix, error) {
	var m Matrix

	// Classify every cell up front so the policies share one parse
	rows := make([][]Cell, 0, len(table))
	for _, raw := range table {
		rows = append(rows, classifyRow(raw))
	}

	if len(rows) > 0 && !hasNumeric(rows[0]) {
		m.Header = append([]string(nil), table[0]...)
		rows = rows[1:]
	}

	var keepColumn func(int) bool
	if policy == DropColumn {
		bad := nonNumericColumns(rows)
		keepColumn = func(i int) bool { return !bad[i] }
	}

	for _, cells := range rows {
		if policy == DropRow && !allNumeric(cells) {
			continue
		}

		var values []float64
		for i, c := range cells {
			if c.Kind != Numeric {
				continue
			}
			if keepColumn != nil && !keepColumn(i) {
				continue
			}
			values = append(values, c.Value)
		}

		if len(values) > 0 {
			m.Rows = append(m.Rows, values)
		}
	}

	if m.Len() == 0 {
		return Matrix{}, fmt.Errorf("no numeric values after sanitization: %w", ErrMalformedInput)
	}

	return m, nil
}

// nonNumericColumns returns the set of column indexes holding at least one
// non-numeric cell. Columns missing from short rows do not count against them.
func nonNumericColumns(rows [][]Cell) map[int]bool {
	bad := make(map[int]bool)
	for _, cells := range rows {
		for i, c := range cells {
			if c.Kind != Numeric {
				bad[i] = true
			}
		}
	}
	return bad
}

// allNumeric reports whether every cell in the row is numeric.
func allNumeric(cells []Cell) bool {
	for _, c := range cells {
		if c.Kind != Numeric {
			return false
		}
	}
	return true
}
