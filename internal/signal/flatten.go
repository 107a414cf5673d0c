package signal

import (
	"fmt"
	"strings"
)

// Flatten concatenates the matrix rows in row-major order.
// A positive limit keeps only the first limit values.
// Returns ErrEmptyInput if the result has no elements.
func Flatten(m Matrix, limit int) (Sequence, error) {
	seq := make(Sequence, 0, m.Len())
	for _, row := range m.Rows {
		seq = append(seq, row...)
	}

	if limit > 0 && len(seq) > limit {
		seq = seq[:limit]
	}

	if len(seq) == 0 {
		return nil, ErrEmptyInput
	}

	return seq, nil
}

// ParseManual parses a single line of comma-separated numbers, left to right.
// Blank input returns ErrEmptyInput; any token that is not a finite number
// returns ErrMalformedInput.
func ParseManual(text string) (Sequence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	tokens := strings.Split(text, ",")
	seq := make(Sequence, 0, len(tokens))
	for i, tok := range tokens {
		cell := ClassifyCell(tok)
		if cell.Kind != Numeric {
			return nil, fmt.Errorf("value %d (%q) is not a number: %w", i+1, strings.TrimSpace(tok), ErrMalformedInput)
		}
		seq = append(seq, cell.Value)
	}

	return seq, nil
}
