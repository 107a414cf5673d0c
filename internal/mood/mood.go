// Package mood classifies a signal sequence into a mood category using the
// arithmetic mean of its samples.
package mood

import "github.com/justestif/eeg-mood-visualizer/internal/signal"

// Label is one of the three fixed mood categories.
type Label string

const (
	Happy   Label = "Happy"
	Sad     Label = "Sad"
	Neutral Label = "Neutral"
)

// Labels lists every mood label in a stable order.
var Labels = []Label{Happy, Neutral, Sad}

// Thresholds on the signal mean. Both comparisons are strict, so the
// boundary values themselves classify as Neutral.
const (
	HappyThreshold = 2.0 // mean above this is Happy
	SadThreshold   = 1.0 // mean below this is Sad
)

// Result is the outcome of one classification.
type Result struct {
	Label       Label   // Mood category
	Description string  // Narrative sentence for display
	Mean        float64 // Mean of the classified samples
}

// Mean returns the arithmetic mean of seq. It returns 0 for an empty sequence.
// The mean is accumulated incrementally so large finite samples do not
// overflow a running sum.
func Mean(seq signal.Sequence) float64 {
	var m float64
	for i, v := range seq {
		n := float64(i + 1)
		m += v/n - m/n
	}
	return m
}

// Classify computes the mean of seq and maps it to a mood.
// Returns signal.ErrEmptyInput if seq has no samples.
func Classify(seq signal.Sequence) (Result, error) {
	if len(seq) == 0 {
		return Result{}, signal.ErrEmptyInput
	}
	return ClassifyMean(Mean(seq)), nil
}

// ClassifyMean maps a mean value to a mood.
//
// Policy:
//   - mean > 2.0 = Happy
//   - mean < 1.0 = Sad
//   - otherwise  = Neutral (1.0 and 2.0 included)
func ClassifyMean(mean float64) Result {
	var label Label
	switch {
	case mean > HappyThreshold:
		label = Happy
	case mean < SadThreshold:
		label = Sad
	default:
		label = Neutral
	}

	return Result{
		Label:       label,
		Description: describe(label),
		Mean:        mean,
	}
}

// describe returns the narrative sentence for a label.
func describe(l Label) string {
	switch l {
	case Happy:
		return "Brain activity shows high energy, suggesting a happy mood."
	case Sad:
		return "Low energy detected, may indicate sadness."
	default:
		return "Balanced activity, likely a neutral mood."
	}
}
