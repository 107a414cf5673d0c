package network

import (
	"image/color"
	"math"

	"github.com/justestif/eeg-mood-visualizer/internal/mood"
)

// Profile describes how strongly a mood lights up the network.
type Profile struct {
	Fraction float64    // Share of edges highlighted per frame
	Color    color.RGBA // Highlight color
	Width    float64    // Highlight stroke width in pixels
}

// profiles maps each mood to its activity profile: happy is busy and warm,
// sad is sparse and cool.
var profiles = map[mood.Label]Profile{
	mood.Happy:   {Fraction: 0.6, Color: color.RGBA{240, 110, 30, 255}, Width: 4},
	mood.Neutral: {Fraction: 0.35, Color: color.RGBA{60, 170, 90, 255}, Width: 3},
	mood.Sad:     {Fraction: 0.15, Color: color.RGBA{50, 90, 200, 255}, Width: 2.5},
}

// ProfileFor returns the activity profile for a mood.
// Unknown labels use the neutral profile.
func ProfileFor(label mood.Label) Profile {
	if p, ok := profiles[label]; ok {
		return p
	}
	return profiles[mood.Neutral]
}

// Count returns how many of edges should be highlighted, at least one and at
// most all of them.
func (p Profile) Count(edges int) int {
	if edges <= 0 {
		return 0
	}
	// Tolerate rounding in the product so 0.35*20 yields 7, not 8
	k := int(math.Ceil(p.Fraction*float64(edges) - 1e-9))
	return max(1, min(k, edges))
}
