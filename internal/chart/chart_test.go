package chart

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

func TestRender(t *testing.T) {
	seq := signal.Sequence{1.2, 2.2, 0.5, 3.1, 1.0}

	ch, err := Render(seq)
	require.NoError(t, err)

	require.Len(t, ch.Points, len(seq))
	assert.Equal(t, DefaultWidth, ch.Image.Bounds().Dx())
	assert.Equal(t, DefaultHeight, ch.Image.Bounds().Dy())
	assert.Equal(t, 0.5, ch.Min)
	assert.Equal(t, 3.1, ch.Max)

	// x increases with the sample index
	for i := 1; i < len(ch.Points); i++ {
		assert.Greater(t, ch.Points[i].X, ch.Points[i-1].X)
	}

	// Highest value sits at the top of the plot, lowest at the bottom
	assert.InDelta(t, float64(marginTop), ch.Points[3].Y, 1e-9)
	assert.InDelta(t, float64(DefaultHeight-marginBottom), ch.Points[2].Y, 1e-9)
}

func TestRender_DrawsSeries(t *testing.T) {
	// Samples 1 and 2 form a horizontal segment clear of the grid lines
	ch, err := Render(signal.Sequence{0, 0.3, 0.3, 1})
	require.NoError(t, err)

	y := int(ch.Points[1].Y)
	x := int((ch.Points[1].X + ch.Points[2].X) / 2)
	assert.Equal(t, DefaultSeriesColor, ch.Image.RGBAAt(x, y))
}

func TestRender_Deterministic(t *testing.T) {
	seq := signal.Sequence{0.1, 0.4, 0.2, 0.9}

	a, err := Render(seq)
	require.NoError(t, err)
	b, err := Render(seq)
	require.NoError(t, err)

	assert.Equal(t, a.Points, b.Points)
	assert.Equal(t, a.Image.Pix, b.Image.Pix)
}

func TestRender_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		seq     signal.Sequence
		wantMin float64
		wantMax float64
	}{
		{name: "single sample", seq: signal.Sequence{2}, wantMin: 1, wantMax: 3},
		{name: "flat signal", seq: signal.Sequence{5, 5, 5}, wantMin: 4, wantMax: 6},
		{name: "negative values", seq: signal.Sequence{-3, -1}, wantMin: -3, wantMax: -1},
		{name: "large single sample", seq: signal.Sequence{1e20}, wantMin: 0.95e20, wantMax: 1.05e20},
		{name: "large flat signal", seq: signal.Sequence{-1e17, -1e17}, wantMin: -1.05e17, wantMax: -0.95e17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := Render(tt.seq)
			require.NoError(t, err)
			assert.Len(t, ch.Points, len(tt.seq))
			assert.InEpsilon(t, tt.wantMin, ch.Min, 1e-9)
			assert.InEpsilon(t, tt.wantMax, ch.Max, 1e-9)
			for i, p := range ch.Points {
				assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0), "point %d has y=%v", i, p.Y)
			}
		})
	}
}

func TestRender_UnscalableRange(t *testing.T) {
	_, err := Render(signal.Sequence{-1e308, 1e308})

	var re *canvas.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, canvas.ArtifactChart, re.Artifact)
}

func TestRender_Empty(t *testing.T) {
	ch, err := Render(nil)
	assert.ErrorIs(t, err, signal.ErrEmptyInput)
	assert.Nil(t, ch)
}

func TestRender_TooSmall(t *testing.T) {
	_, err := Render(signal.Sequence{1, 2}, WithSize(40, 40))

	var re *canvas.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, canvas.ArtifactChart, re.Artifact)
}

func TestRender_Options(t *testing.T) {
	ch, err := Render(signal.Sequence{1, 2, 3}, WithSize(320, 200), WithTitle("Channel Fp1"))
	require.NoError(t, err)
	assert.Equal(t, 320, ch.Image.Bounds().Dx())
	assert.Equal(t, 200, ch.Image.Bounds().Dy())
}

func TestWritePNG(t *testing.T) {
	ch, err := Render(signal.Sequence{1, 2, 3})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, ch.WritePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, ch.Image.Bounds(), img.Bounds())
}

func TestWritePNG_Unwritable(t *testing.T) {
	ch, err := Render(signal.Sequence{1, 2, 3})
	require.NoError(t, err)

	err = ch.WritePNG(filepath.Join(t.TempDir(), "missing", "chart.png"))

	var re *canvas.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, canvas.ArtifactChart, re.Artifact)
}
