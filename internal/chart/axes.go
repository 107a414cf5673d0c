package chart

import (
	"image"
	"image/color"
	"strconv"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
)

// yTicks is the number of labelled y-axis ticks, including both ends.
const yTicks = 5

// drawAxes draws the grid, axis lines, ticks and axis labels.
func drawAxes(c *canvas.Canvas, plot image.Rectangle, n int, lo, hi float64) {
	left, right := float64(plot.Min.X), float64(plot.Max.X)
	top, bottom := float64(plot.Min.Y), float64(plot.Max.Y)

	for i := 0; i < yTicks; i++ {
		frac := float64(i) / float64(yTicks-1)
		y := bottom - frac*(bottom-top)
		c.Line(left, y, right, y, 1, gridColor)
		c.Line(left-tickLength, y, left, y, 1, axisColor)

		label := formatTick(lo + frac*(hi-lo))
		c.Text(plot.Min.X-tickLength-2-canvas.TextWidth(label), int(y)+4, label, textColor)
	}

	c.Line(left, top, left, bottom, 1, axisColor)
	c.Line(left, bottom, right, bottom, 1, axisColor)

	// Label the first and last sample index
	c.Line(left, bottom, left, bottom+tickLength, 1, axisColor)
	c.TextCentered(plot.Min.X, plot.Max.Y+tickLength+12, "0", textColor)
	if n > 1 {
		c.Line(right, bottom, right, bottom+tickLength, 1, axisColor)
		c.TextCentered(plot.Max.X, plot.Max.Y+tickLength+12, strconv.Itoa(n-1), textColor)
	}

	c.TextCentered((plot.Min.X+plot.Max.X)/2, plot.Max.Y+tickLength+28, xLabel, textColor)
	c.Text(4, plot.Min.Y-12, yLabel, textColor)
}

// drawLegend draws a single-entry legend in the top-right corner of the plot.
func drawLegend(c *canvas.Canvas, plot image.Rectangle, series color.Color) {
	const (
		pad    = 6
		swatch = 18
	)
	w := pad + swatch + pad + canvas.TextWidth(legendLabel) + pad
	h := 20
	box := image.Rect(plot.Max.X-w-pad, plot.Min.Y+pad, plot.Max.X-pad, plot.Min.Y+pad+h)

	c.FillRect(box, color.NRGBA{255, 255, 255, 230})
	midY := float64(box.Min.Y + h/2)
	c.Line(float64(box.Min.X+pad), midY, float64(box.Min.X+pad+swatch), midY, seriesWidth, series)
	c.Text(box.Min.X+pad+swatch+pad, box.Min.Y+h/2+4, legendLabel, textColor)
}

// formatTick formats an axis value with at most two decimals.
func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
