package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestNew(t *testing.T) {
	c := New(40, 20, white)

	assert.Equal(t, 40, c.Width())
	assert.Equal(t, 20, c.Height())
	assert.Equal(t, white, c.Image().RGBAAt(0, 0))
	assert.Equal(t, white, c.Image().RGBAAt(39, 19))
}

func TestLine(t *testing.T) {
	c := New(40, 40, white)
	c.Line(5, 20, 35, 20, 4, black)

	assert.Equal(t, black, c.Image().RGBAAt(20, 20), "pixel on the stroke")
	assert.Equal(t, white, c.Image().RGBAAt(20, 5), "pixel away from the stroke")
}

func TestLine_ZeroLengthDrawsDot(t *testing.T) {
	c := New(20, 20, white)
	c.Line(10, 10, 10, 10, 6, black)

	assert.Equal(t, black, c.Image().RGBAAt(10, 10))
}

func TestDisc(t *testing.T) {
	c := New(40, 40, white)
	c.Disc(20, 20, 8, black)

	assert.Equal(t, black, c.Image().RGBAAt(20, 20))
	assert.Equal(t, white, c.Image().RGBAAt(2, 2))

	// Non-positive radius is a no-op
	c.Disc(5, 5, 0, black)
	assert.Equal(t, white, c.Image().RGBAAt(5, 5))
}

func TestPolyline(t *testing.T) {
	c := New(60, 60, white)
	c.Polyline([]Point{{X: 5, Y: 5}, {X: 30, Y: 5}, {X: 30, Y: 50}}, 4, black)

	assert.Equal(t, black, c.Image().RGBAAt(15, 5))
	assert.Equal(t, black, c.Image().RGBAAt(30, 30))
	assert.Equal(t, white, c.Image().RGBAAt(10, 40))
}

func TestFillRect(t *testing.T) {
	c := New(10, 10, white)
	c.FillRect(image.Rect(0, 0, 5, 5), black)

	assert.Equal(t, black, c.Image().RGBAAt(2, 2))
	assert.Equal(t, white, c.Image().RGBAAt(7, 7))
}

func TestText(t *testing.T) {
	c := New(100, 30, white)
	c.Text(5, 20, "EEG", black)

	inked := false
	for y := 0; y < 30 && !inked; y++ {
		for x := 0; x < 100; x++ {
			if c.Image().RGBAAt(x, y) != white {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "text should change at least one pixel")
	assert.Equal(t, 3*7, TextWidth("EEG"))
}

func TestRenderError(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&RenderError{Artifact: ArtifactAnimation, Err: cause})

	assert.Equal(t, "rendering animation: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ArtifactAnimation, re.Artifact)
}
