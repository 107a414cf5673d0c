package pipeline

import (
	"fmt"
	"strings"
)

// FormatResult returns a human-readable summary of a prediction.
// Rendering failures are listed after the mood.
func FormatResult(r *Result) string {
	if r == nil {
		return "No prediction\n"
	}

	var sb strings.Builder

	sampleWord := "sample"
	if len(r.Sequence) != 1 {
		sampleWord = "samples"
	}

	sb.WriteString(fmt.Sprintf("Prediction %s (%s)\n", r.ID, r.Source))
	sb.WriteString(fmt.Sprintf("Mood: %s\n", r.Mood.Label))
	sb.WriteString(fmt.Sprintf("  %s\n", r.Mood.Description))
	sb.WriteString(fmt.Sprintf("  Mean %.3f over %d %s\n", r.Mood.Mean, len(r.Sequence), sampleWord))

	switch {
	case r.ChartErr != nil:
		sb.WriteString(fmt.Sprintf("Chart: failed: %v\n", r.ChartErr))
	case r.ChartPath != "":
		sb.WriteString(fmt.Sprintf("Chart: %d points saved to %s\n", len(r.Chart.Points), r.ChartPath))
	case r.Chart != nil:
		sb.WriteString(fmt.Sprintf("Chart: %d points\n", len(r.Chart.Points)))
	}

	if r.AnimationErr != nil {
		sb.WriteString(fmt.Sprintf("Animation: failed: %v\n", r.AnimationErr))
	} else if r.AnimationPath != "" {
		sb.WriteString(fmt.Sprintf("Animation: %d frames saved to %s\n", r.Frames, r.AnimationPath))
	}

	return sb.String()
}
