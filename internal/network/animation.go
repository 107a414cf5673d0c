package network

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/mood"
)

// Animation is a rendered frame sequence ready to be encoded.
type Animation struct {
	Label      mood.Label
	Frames     []*image.Paletted
	Highlights [][]int // Highlighted edge indexes per frame, ascending
	Delay      time.Duration
}

// Encode writes the animation to w as a GIF that loops forever.
func (an *Animation) Encode(w io.Writer) error {
	if len(an.Frames) == 0 {
		return &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: ErrNoFrames}
	}

	// GIF delays are in hundredths of a second
	delay := int(an.Delay / (10 * time.Millisecond))
	delays := make([]int, len(an.Frames))
	for i := range delays {
		delays[i] = delay
	}

	g := &gif.GIF{
		Image:     an.Frames,
		Delay:     delays,
		LoopCount: 0,
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: fmt.Errorf("encoding gif: %w", err)}
	}
	return nil
}

// WriteFile encodes the animation to path. Any existing file at path is
// replaced; only the latest animation is kept.
func (an *Animation) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: err}
	}

	if err := an.Encode(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: err}
	}
	return nil
}
