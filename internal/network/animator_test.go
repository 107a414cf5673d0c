package network

import (
	"bytes"
	"image/gif"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/mood"
)

// testAnimator returns a small, deterministic animator.
func testAnimator(opts ...Option) *Animator {
	base := []Option{WithSeed(42), WithSize(96, 96), WithFrames(6)}
	return NewAnimator(append(base, opts...)...)
}

func TestProfile_Count(t *testing.T) {
	tests := []struct {
		name  string
		label mood.Label
		edges int
		want  int
	}{
		{name: "happy", label: mood.Happy, edges: 20, want: 12},
		{name: "neutral", label: mood.Neutral, edges: 20, want: 7},
		{name: "sad", label: mood.Sad, edges: 20, want: 3},
		{name: "sad keeps at least one", label: mood.Sad, edges: 2, want: 1},
		{name: "no edges", label: mood.Happy, edges: 0, want: 0},
		{name: "unknown uses neutral", label: mood.Label("Bored"), edges: 20, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileFor(tt.label).Count(tt.edges))
		})
	}
}

func TestProfile_Ordering(t *testing.T) {
	happy, neutral, sad := ProfileFor(mood.Happy), ProfileFor(mood.Neutral), ProfileFor(mood.Sad)

	assert.Greater(t, happy.Fraction, neutral.Fraction)
	assert.Greater(t, neutral.Fraction, sad.Fraction)
	assert.Greater(t, happy.Width, sad.Width)

	// Warm versus cool
	assert.Greater(t, happy.Color.R, happy.Color.B)
	assert.Greater(t, sad.Color.B, sad.Color.R)
}

func TestRender_FrameCount(t *testing.T) {
	for _, label := range mood.Labels {
		t.Run(string(label), func(t *testing.T) {
			anim, err := testAnimator().Render(mood.Result{Label: label})
			require.NoError(t, err)

			assert.Len(t, anim.Frames, 6)
			assert.Len(t, anim.Highlights, 6)
			assert.Equal(t, label, anim.Label)
		})
	}
}

func TestRender_DefaultFrames(t *testing.T) {
	a := NewAnimator(WithRand(rand.New(rand.NewSource(1))), WithSize(48, 48))

	anim, err := a.Render(mood.Result{Label: mood.Neutral})
	require.NoError(t, err)
	assert.Len(t, anim.Frames, DefaultFrames)
}

func TestRender_Highlights(t *testing.T) {
	edges := len(Topology().Edges)

	for _, label := range mood.Labels {
		t.Run(string(label), func(t *testing.T) {
			anim, err := testAnimator().Render(mood.Result{Label: label})
			require.NoError(t, err)

			want := ProfileFor(label).Count(edges)
			for f, sel := range anim.Highlights {
				require.Len(t, sel, want, "frame %d", f)
				for i, idx := range sel {
					assert.GreaterOrEqual(t, idx, 0)
					assert.Less(t, idx, edges)
					if i > 0 {
						assert.Greater(t, idx, sel[i-1], "indexes must be distinct and ascending")
					}
				}
			}
		})
	}
}

func TestRender_DeterministicWithSeed(t *testing.T) {
	res := mood.Result{Label: mood.Happy}

	a, err := testAnimator().Render(res)
	require.NoError(t, err)
	b, err := testAnimator().Render(res)
	require.NoError(t, err)

	assert.Equal(t, a.Highlights, b.Highlights)
	for i := range a.Frames {
		assert.Equal(t, a.Frames[i].Pix, b.Frames[i].Pix, "frame %d", i)
	}
}

func TestRender_HighlightVariesAcrossFrames(t *testing.T) {
	anim, err := testAnimator(WithFrames(10)).Render(mood.Result{Label: mood.Neutral})
	require.NoError(t, err)

	distinct := false
	for _, sel := range anim.Highlights[1:] {
		if !assert.ObjectsAreEqual(anim.Highlights[0], sel) {
			distinct = true
			break
		}
	}
	assert.True(t, distinct, "edge selection should change between frames")
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "zero frames", opts: []Option{WithFrames(0)}, wantErr: ErrNoFrames},
		{name: "empty graph", opts: []Option{WithGraph(Graph{})}, wantErr: ErrEmptyGraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anim, err := testAnimator(tt.opts...).Render(mood.Result{Label: mood.Sad})
			assert.Nil(t, anim)
			require.ErrorIs(t, err, tt.wantErr)

			var re *canvas.RenderError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, canvas.ArtifactAnimation, re.Artifact)
		})
	}
}

func TestAnimation_Encode(t *testing.T) {
	anim, err := testAnimator().Render(mood.Result{Label: mood.Happy})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, anim.Encode(&buf))

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, 6)
	assert.Equal(t, 0, g.LoopCount, "animation loops forever")
	for _, d := range g.Delay {
		assert.Equal(t, 10, d)
	}
}

func TestAnimation_WriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.gif")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is not a gif"), 0o644))

	anim, err := testAnimator().Render(mood.Result{Label: mood.Sad})
	require.NoError(t, err)
	require.NoError(t, anim.WriteFile(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "exactly one output file")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, g.Image, 6)
}

func TestAnimation_WriteFileUnwritable(t *testing.T) {
	anim, err := testAnimator().Render(mood.Result{Label: mood.Sad})
	require.NoError(t, err)

	err = anim.WriteFile(filepath.Join(t.TempDir(), "missing", "network.gif"))

	var re *canvas.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, canvas.ArtifactAnimation, re.Artifact)
}

func TestAnimation_EncodeEmpty(t *testing.T) {
	err := (&Animation{}).Encode(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoFrames)
}
