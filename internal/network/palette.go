package network

import (
	"image/color"
)

// rampSteps is the number of shades between the background and each ink.
const rampSteps = 12

// framePalette builds a small palette of blends between the background and
// every ink a frame uses, so anti-aliased edges quantize smoothly.
func framePalette(profile Profile) color.Palette {
	inks := []color.Color{
		color.RGBA{0, 0, 0, 255},
		nodeFill,
		nodeLabel,
		profile.Color,
	}

	p := color.Palette{background}
	for _, ink := range inks {
		for s := 1; s <= rampSteps; s++ {
			p = append(p, blend(background, ink, float64(s)/rampSteps))
		}
	}

	// Node discs are translucent, so edges show through them
	for s := 1; s <= rampSteps/2; s++ {
		p = append(p, blend(opaque(nodeFill), profile.Color, float64(s)/(rampSteps/2)))
		p = append(p, blend(opaque(nodeFill), color.RGBA{0, 0, 0, 255}, float64(s)/(rampSteps/2)))
	}
	return p
}

// blend linearly interpolates from a to b; t=0 is a, t=1 is b.
// The alpha of b scales t, as if b were drawn over a.
func blend(a, b color.Color, t float64) color.RGBA {
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	t *= float64(cb.A) / 255

	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t + 0.5)
	}
	return color.RGBA{mix(ca.R, cb.R), mix(ca.G, cb.G), mix(ca.B, cb.B), 255}
}

// opaque drops the alpha of c as if drawn over the background.
func opaque(c color.Color) color.RGBA {
	return blend(background, c, 1)
}
