package canvas

import "fmt"

// Artifact names used in RenderError.
const (
	ArtifactChart     = "chart"
	ArtifactAnimation = "animation"
)

// RenderError reports a failure to render or encode an artifact.
type RenderError struct {
	Artifact string // Which artifact failed (ArtifactChart, ArtifactAnimation)
	Err      error  // Underlying cause
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Artifact, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
