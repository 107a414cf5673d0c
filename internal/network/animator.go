package network

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/mood"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

// Animation defaults: 30 frames at 10 fps.
const (
	DefaultFrames = 30
	DefaultDelay  = 100 * time.Millisecond
	DefaultWidth  = 480
	DefaultHeight = 480

	baseEdgeWidth = 1.5
	nodeRadius    = 9.0
)

var (
	background = color.RGBA{255, 255, 255, 255}
	baseEdge   = color.NRGBA{0, 0, 0, 110}
	nodeFill   = color.NRGBA{135, 206, 235, 200} // skyblue
	nodeLabel  = color.RGBA{30, 30, 30, 255}
	titleColor = color.RGBA{20, 20, 20, 255}
)

// Animator renders mood-driven network animations.
// It owns a random source and is not safe for concurrent use.
type Animator struct {
	rng    *rand.Rand
	graph  Graph
	frames int
	width  int
	height int
	delay  time.Duration
}

// Option configures an Animator.
type Option func(*Animator)

// WithRand sets the random source used for per-frame edge selection.
func WithRand(r *rand.Rand) Option {
	return func(a *Animator) {
		a.rng = r
	}
}

// WithSeed uses a deterministic random source with the given seed.
func WithSeed(seed int64) Option {
	return func(a *Animator) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFrames sets the number of frames per animation.
func WithFrames(n int) Option {
	return func(a *Animator) {
		a.frames = n
	}
}

// WithSize sets the frame dimensions in pixels.
func WithSize(width, height int) Option {
	return func(a *Animator) {
		a.width = width
		a.height = height
	}
}

// WithDelay sets the time each frame is shown.
func WithDelay(d time.Duration) Option {
	return func(a *Animator) {
		a.delay = d
	}
}

// WithGraph replaces the fixed topology. Intended for tests.
func WithGraph(g Graph) Option {
	return func(a *Animator) {
		a.graph = g
	}
}

// NewAnimator creates an Animator using the fixed topology and a
// time-seeded random source unless overridden.
func NewAnimator(opts ...Option) *Animator {
	a := &Animator{
		graph:  Topology(),
		frames: DefaultFrames,
		width:  DefaultWidth,
		height: DefaultHeight,
		delay:  DefaultDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

// Render produces one animation for the given mood.
//
// Each frame highlights a fresh random subset of edges whose size and color
// come from the mood's Profile, while the graph turns one full revolution
// over the loop. Returns a *canvas.RenderError wrapping ErrNoFrames or
// ErrEmptyGraph when there is nothing to draw.
func (a *Animator) Render(res mood.Result) (*Animation, error) {
	return a.render(res, nil)
}

// RenderTrace is like Render, but also draws seq along the bottom of each
// frame, revealing a growing prefix of it so the final frame shows every
// sample. Returns a *canvas.RenderError wrapping signal.ErrEmptyInput for an
// empty seq.
func (a *Animator) RenderTrace(res mood.Result, seq signal.Sequence) (*Animation, error) {
	if len(seq) == 0 {
		return nil, &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: signal.ErrEmptyInput}
	}
	return a.render(res, seq)
}

// render draws every frame; a nil seq leaves out the trace panel.
func (a *Animator) render(res mood.Result, seq signal.Sequence) (*Animation, error) {
	if a.frames <= 0 {
		return nil, &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: ErrNoFrames}
	}
	if err := a.graph.Validate(); err != nil {
		return nil, &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: err}
	}

	center, err := a.graph.Center()
	if err != nil {
		return nil, &canvas.RenderError{Artifact: canvas.ArtifactAnimation, Err: fmt.Errorf("graph center: %w", err)}
	}

	profile := ProfileFor(res.Label)
	k := profile.Count(len(a.graph.Edges))
	pal := framePalette(profile)
	title := fmt.Sprintf("Brain Network (%s)", res.Label)

	anim := &Animation{
		Label:      res.Label,
		Delay:      a.delay,
		Frames:     make([]*image.Paletted, 0, a.frames),
		Highlights: make([][]int, 0, a.frames),
	}

	// The network shares the frame with the trace panel when there is one
	graphHeight := a.height
	var panel image.Rectangle
	var trace []canvas.Point
	if len(seq) > 0 {
		panel = tracePanel(a.width, a.height)
		trace = tracePoints(seq, panel)
		graphHeight = panel.Min.Y
	}

	for f := 0; f < a.frames; f++ {
		selected := a.pick(k)

		pr := projector{
			center: center,
			yaw:    2 * math.Pi * float64(f) / float64(a.frames),
			width:  float64(a.width),
			height: float64(graphHeight),
		}

		var visible []canvas.Point
		if trace != nil {
			visible = trace[:traceVisible(f, a.frames, len(trace))]
		}

		img := a.drawFrame(pr, selected, profile, pal, title, panel, visible)
		anim.Frames = append(anim.Frames, img)
		anim.Highlights = append(anim.Highlights, selected)
	}

	return anim, nil
}

// pick returns k distinct edge indexes in ascending order.
func (a *Animator) pick(k int) []int {
	perm := a.rng.Perm(len(a.graph.Edges))
	selected := perm[:k]
	sort.Ints(selected)
	return selected
}

// drawFrame renders the whole graph for one frame and converts it to a
// paletted image.
func (a *Animator) drawFrame(pr projector, selected []int, profile Profile, pal color.Palette, title string, panel image.Rectangle, trace []canvas.Point) *image.Paletted {
	c := canvas.New(a.width, a.height, background)

	if len(trace) > 0 {
		drawTrace(c, panel, trace, profile.Color)
	}

	pos := make([]projected, len(a.graph.Nodes))
	for i, n := range a.graph.Nodes {
		pos[i] = pr.project(n.Pos)
	}

	// Paint edges far to near so nearer strokes overlap farther ones
	order := make([]int, len(a.graph.Edges))
	dist := make([]float64, len(a.graph.Edges))
	for i, e := range a.graph.Edges {
		order[i] = i
		dist[i] = depth(midpoint(pos[e.From].View, pos[e.To].View))
	}
	sort.SliceStable(order, func(i, j int) bool { return dist[order[i]] > dist[order[j]] })

	for _, i := range order {
		e := a.graph.Edges[i]
		p, q := pos[e.From], pos[e.To]
		if _, hot := slices.BinarySearch(selected, i); hot {
			c.Line(p.X, p.Y, q.X, q.Y, profile.Width, profile.Color)
			continue
		}
		c.Line(p.X, p.Y, q.X, q.Y, baseEdgeWidth, baseEdge)
	}

	nodes := make([]int, len(pos))
	for i := range nodes {
		nodes[i] = i
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return depth(pos[nodes[i]].View) > depth(pos[nodes[j]].View)
	})

	for _, i := range nodes {
		p := pos[i]
		c.Disc(p.X, p.Y, nodeRadius*p.Scale, nodeFill)
		c.TextCentered(int(p.X), int(p.Y-nodeRadius*p.Scale-3), a.graph.Nodes[i].ID, nodeLabel)
	}

	c.TextCentered(a.width/2, 20, title, titleColor)

	src := c.Image()
	dst := image.NewPaletted(src.Bounds(), pal)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst
}
