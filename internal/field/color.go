package field

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an HSLA colour. H is in degrees, S, L and A in [0, 1].
type Color struct {
	H, S, L, A float64
}

// Colorful converts the opaque part of c.
func (c Color) Colorful() colorful.Color {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, clamp01(c.S), clamp01(c.L)).Clamped()
}

// RGB255 returns the opaque channels of c.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Colorful().RGB255()
}

// Hex returns the opaque colour as #rrggbb.
func (c Color) Hex() string { return c.Colorful().Hex() }

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
