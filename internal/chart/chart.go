// Package chart renders a signal sequence as a 2D line chart.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

// Default chart styling.
const (
	DefaultWidth  = 640
	DefaultHeight = 360
	DefaultTitle  = "Brain Activity (EEG)"

	xLabel      = "Time"
	yLabel      = "Amplitude"
	legendLabel = "EEG Data"

	marginLeft   = 56
	marginRight  = 20
	marginTop    = 34
	marginBottom = 44
	seriesWidth  = 2.0
	tickLength   = 4
	flatPadding  = 0.05
)

var (
	background = color.RGBA{255, 255, 255, 255}
	axisColor  = color.RGBA{40, 40, 40, 255}
	gridColor  = color.RGBA{225, 225, 225, 255}
	textColor  = color.RGBA{20, 20, 20, 255}

	// DefaultSeriesColor is the blue used for the signal line.
	DefaultSeriesColor = color.RGBA{31, 119, 180, 255}
)

// options holds rendering settings.
type options struct {
	width, height int
	title         string
	series        color.Color
}

// Option configures Render.
type Option func(*options)

// WithSize sets the chart dimensions in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithSeriesColor sets the color of the signal line.
func WithSeriesColor(c color.Color) Option {
	return func(o *options) {
		o.series = c
	}
}

// Chart is a rendered line chart.
type Chart struct {
	Image  *image.RGBA
	Points []canvas.Point // Pixel position of each sample, in sequence order
	Min    float64        // Lowest value on the y-axis
	Max    float64        // Highest value on the y-axis
}

// Render draws seq with the sample index on the x-axis and the value on the
// y-axis, joining points in order.
// Returns signal.ErrEmptyInput for an empty sequence.
func Render(seq signal.Sequence, opts ...Option) (*Chart, error) {
	if len(seq) == 0 {
		return nil, signal.ErrEmptyInput
	}

	o := options{
		width:  DefaultWidth,
		height: DefaultHeight,
		title:  DefaultTitle,
		series: DefaultSeriesColor,
	}
	for _, opt := range opts {
		opt(&o)
	}

	plot := image.Rect(marginLeft, marginTop, o.width-marginRight, o.height-marginBottom)
	if plot.Dx() <= 0 || plot.Dy() <= 0 {
		return nil, &canvas.RenderError{
			Artifact: canvas.ArtifactChart,
			Err:      fmt.Errorf("chart size %dx%d leaves no plot area", o.width, o.height),
		}
	}

	lo, hi := valueRange(seq)
	if span := hi - lo; span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return nil, &canvas.RenderError{
			Artifact: canvas.ArtifactChart,
			Err:      fmt.Errorf("value range [%g, %g] cannot be scaled to the plot", lo, hi),
		}
	}
	points := project(seq, plot, lo, hi)

	c := canvas.New(o.width, o.height, background)
	drawAxes(c, plot, len(seq), lo, hi)
	c.Polyline(points, seriesWidth, o.series)
	drawLegend(c, plot, o.series)
	c.TextCentered(o.width/2, marginTop-12, o.title, textColor)

	return &Chart{
		Image:  c.Image(),
		Points: points,
		Min:    lo,
		Max:    hi,
	}, nil
}

// WritePNG encodes the chart to path, replacing any existing file.
func (ch *Chart) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &canvas.RenderError{Artifact: canvas.ArtifactChart, Err: err}
	}

	if err := png.Encode(f, ch.Image); err != nil {
		f.Close()
		return &canvas.RenderError{Artifact: canvas.ArtifactChart, Err: fmt.Errorf("encoding png: %w", err)}
	}

	if err := f.Close(); err != nil {
		return &canvas.RenderError{Artifact: canvas.ArtifactChart, Err: err}
	}
	return nil
}

// valueRange returns the y-axis bounds. A flat signal is padded on each side
// by one unit or 5% of its magnitude, whichever is larger, so it is drawn
// through the middle of the plot.
func valueRange(seq signal.Sequence) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range seq {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		d := math.Max(1, math.Abs(lo)*flatPadding)
		return lo - d, hi + d
	}
	return lo, hi
}

// project maps each sample into the plot rectangle.
func project(seq signal.Sequence, plot image.Rectangle, lo, hi float64) []canvas.Point {
	points := make([]canvas.Point, len(seq))
	w, h := float64(plot.Dx()), float64(plot.Dy())

	for i, v := range seq {
		x := float64(plot.Min.X) + w/2
		if len(seq) > 1 {
			x = float64(plot.Min.X) + w*float64(i)/float64(len(seq)-1)
		}
		y := float64(plot.Max.Y) - h*(v-lo)/(hi-lo)
		points[i] = canvas.Point{X: x, Y: y}
	}
	return points
}
