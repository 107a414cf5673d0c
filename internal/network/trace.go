package network

import (
	"image"
	"image/color"
	"math"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

const (
	tracePanelShare = 4 // the trace panel takes 1/tracePanelShare of the frame height
	traceMargin     = 10
	traceWidth      = 2.0
)

var traceBorder = color.RGBA{200, 200, 200, 255}

// tracePanel returns the strip along the bottom of a frame that holds the
// signal trace.
func tracePanel(width, height int) image.Rectangle {
	h := height / tracePanelShare
	return image.Rect(traceMargin, height-h, width-traceMargin, height-traceMargin)
}

// tracePoints maps every sample of seq into panel. The x-axis spans the whole
// sequence so a prefix of the points grows from left to right.
// An unscalable value range is drawn as a flat line through the middle.
func tracePoints(seq signal.Sequence, panel image.Rectangle) []canvas.Point {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range seq {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	flat := span == 0 || math.IsNaN(span) || math.IsInf(span, 0)

	w, h := float64(panel.Dx()), float64(panel.Dy())
	points := make([]canvas.Point, len(seq))
	for i, v := range seq {
		x := float64(panel.Min.X) + w/2
		if len(seq) > 1 {
			x = float64(panel.Min.X) + w*float64(i)/float64(len(seq)-1)
		}
		t := 0.5
		if !flat {
			t = (v - lo) / span
		}
		points[i] = canvas.Point{X: x, Y: float64(panel.Max.Y) - h*t}
	}
	return points
}

// traceVisible returns how many samples frame f of frames shows. The count
// grows with the frame number, and the last frame shows them all.
func traceVisible(f, frames, samples int) int {
	n := int(math.Ceil(float64((f+1)*samples) / float64(frames)))
	return min(max(n, 1), samples)
}

// drawTrace draws the panel border and the visible part of the trace.
func drawTrace(c *canvas.Canvas, panel image.Rectangle, pts []canvas.Point, col color.Color) {
	x0, y0 := float64(panel.Min.X), float64(panel.Min.Y)
	x1, y1 := float64(panel.Max.X), float64(panel.Max.Y)
	c.Line(x0, y0, x1, y0, 1, traceBorder)
	c.Line(x1, y0, x1, y1, 1, traceBorder)
	c.Line(x1, y1, x0, y1, 1, traceBorder)
	c.Line(x0, y1, x0, y0, 1, traceBorder)
	c.Polyline(pts, traceWidth, col)
}
