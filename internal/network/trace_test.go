package network

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/mood"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

func TestTraceVisible(t *testing.T) {
	tests := []struct {
		name    string
		f       int
		frames  int
		samples int
		want    int
	}{
		{name: "first frame", f: 0, frames: 6, samples: 12, want: 2},
		{name: "last frame shows all", f: 5, frames: 6, samples: 12, want: 12},
		{name: "fewer samples than frames", f: 0, frames: 30, samples: 3, want: 1},
		{name: "middle frame", f: 10, frames: 30, samples: 3, want: 2},
		{name: "final of many frames", f: 29, frames: 30, samples: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, traceVisible(tt.f, tt.frames, tt.samples))
		})
	}
}

func TestTracePoints(t *testing.T) {
	panel := image.Rect(10, 60, 90, 80)

	pts := tracePoints(signal.Sequence{0, 1, 0.5}, panel)
	require.Len(t, pts, 3)
	assert.Equal(t, canvas.Point{X: 10, Y: 80}, pts[0])
	assert.Equal(t, canvas.Point{X: 50, Y: 60}, pts[1])
	assert.Equal(t, canvas.Point{X: 90, Y: 70}, pts[2])

	// A flat or unscalable range is drawn through the middle
	for _, seq := range []signal.Sequence{{3, 3}, {-1e308, 1e308}, {7}} {
		for _, p := range tracePoints(seq, panel) {
			assert.Equal(t, 70.0, p.Y)
		}
	}
}

func TestDrawTrace(t *testing.T) {
	c := canvas.New(100, 100, background)
	panel := image.Rect(10, 60, 90, 90)
	ink := color.RGBA{240, 110, 30, 255}

	drawTrace(c, panel, []canvas.Point{{X: 20, Y: 75}, {X: 80, Y: 75}}, ink)

	assert.Equal(t, ink, c.Image().RGBAAt(50, 74))
	assert.Equal(t, background, c.Image().RGBAAt(50, 65))
}

func TestRenderTrace(t *testing.T) {
	seq := signal.Sequence{1.2, 2.2, 0.5, 3.1, 1.0, 2.1, 2.5, 0.8}

	anim, err := testAnimator().RenderTrace(mood.Result{Label: mood.Happy}, seq)
	require.NoError(t, err)
	assert.Len(t, anim.Frames, 6)
	assert.Len(t, anim.Highlights, 6)
}

func TestRenderTrace_Empty(t *testing.T) {
	anim, err := testAnimator().RenderTrace(mood.Result{Label: mood.Sad}, nil)
	assert.Nil(t, anim)
	require.ErrorIs(t, err, signal.ErrEmptyInput)

	var re *canvas.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, canvas.ArtifactAnimation, re.Artifact)
}

func TestRenderTrace_SameHighlightsAsRender(t *testing.T) {
	res := mood.Result{Label: mood.Neutral}

	plain, err := testAnimator().Render(res)
	require.NoError(t, err)
	traced, err := testAnimator().RenderTrace(res, signal.Sequence{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, plain.Highlights, traced.Highlights)
}
