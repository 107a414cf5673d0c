// Package canvas provides the small set of anti-aliased drawing primitives
// shared by the chart and network renderers.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// discSegments is the number of polygon edges used to approximate a disc.
const discSegments = 32

// Face is the font used for every label.
var Face font.Face = basicfont.Face7x13

// Canvas is an RGBA image with a reusable vector rasterizer.
type Canvas struct {
	img  *image.RGBA
	rast *vector.Rasterizer
}

// New creates a w×h canvas filled with bg.
func New(w, h int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{
		img:  img,
		rast: vector.NewRasterizer(w, h),
	}
}

// Image returns the underlying image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

// Line strokes a segment of the given width.
// Zero-length segments are drawn as a dot.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		c.Disc(x0, y0, width/2, col)
		return
	}

	// Offset perpendicular to the segment by half the stroke width
	nx, ny := -dy/length*width/2, dx/length*width/2

	c.rast.Reset(c.Width(), c.Height())
	c.rast.MoveTo(float32(x0+nx), float32(y0+ny))
	c.rast.LineTo(float32(x1+nx), float32(y1+ny))
	c.rast.LineTo(float32(x1-nx), float32(y1-ny))
	c.rast.LineTo(float32(x0-nx), float32(y0-ny))
	c.rast.ClosePath()
	c.fill(col)
}

// Polyline strokes consecutive points with round joints.
func (c *Canvas) Polyline(pts []Point, width float64, col color.Color) {
	if len(pts) == 1 {
		c.Disc(pts[0].X, pts[0].Y, width/2, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, col)
		if i < len(pts)-1 {
			c.Disc(pts[i].X, pts[i].Y, width/2, col)
		}
	}
}

// Disc fills a circle of radius r centered at (cx, cy).
func (c *Canvas) Disc(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}

	c.rast.Reset(c.Width(), c.Height())
	c.rast.MoveTo(float32(cx+r), float32(cy))
	for i := 1; i < discSegments; i++ {
		a := 2 * math.Pi * float64(i) / discSegments
		c.rast.LineTo(float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	c.rast.ClosePath()
	c.fill(col)
}

// FillRect fills r with col, blending over existing pixels.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// Text draws s with its baseline starting at (x, y).
func (c *Canvas) Text(x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextCentered draws s horizontally centered on cx with its baseline at y.
func (c *Canvas) TextCentered(cx, y int, s string, col color.Color) {
	c.Text(cx-TextWidth(s)/2, y, s, col)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// fill paints the accumulated path with col and clears the rasterizer.
func (c *Canvas) fill(col color.Color) {
	c.rast.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float64
}
