package field

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Particle is a single point entity. Velocity, radius and visual attributes
// are fixed at seed time.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Alpha  float64
	Hue    float64
}

// Range bounds a uniform draw.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Draw returns a uniform sample in [Min, Max).
func (r Range) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.Min, r.Max) }

// Viewport is the pixel size of the drawable surface.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

func (v Viewport) Area() float64 { return float64(v.Width) * float64(v.Height) }

func (v Viewport) String() string { return fmt.Sprintf("%dx%d", v.Width, v.Height) }

// ParseViewport reads the WIDTHxHEIGHT form produced by String.
func ParseViewport(s string) (Viewport, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Viewport{}, fmt.Errorf("viewport %q: want WIDTHxHEIGHT", s)
	}
	wi, err := strconv.Atoi(w)
	if err != nil {
		return Viewport{}, fmt.Errorf("viewport %q: %w", s, err)
	}
	hi, err := strconv.Atoi(h)
	if err != nil {
		return Viewport{}, fmt.Errorf("viewport %q: %w", s, err)
	}
	vp := Viewport{Width: wi, Height: hi}
	if !vp.Valid() {
		return Viewport{}, fmt.Errorf("viewport %q must be positive", s)
	}
	return vp, nil
}

// Mode selects the rendering style read from the host each frame.
type Mode string

const (
	ModeParticles Mode = "particles"
	ModeGlow      Mode = "glow"
	ModeNone      Mode = "none"
)

// Modes lists the modes in cycling order.
var Modes = []Mode{ModeParticles, ModeGlow, ModeNone}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode: %s", s)
}

// Next returns the mode following m in [Modes].
func (m Mode) Next() Mode {
	for i, mm := range Modes {
		if mm == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeParticles
}

// Boundary is the policy applied when a particle leaves the viewport.
type Boundary string

const (
	BoundaryWrap   Boundary = "wrap"
	BoundaryBounce Boundary = "bounce"
)

func (b Boundary) valid() bool { return b == BoundaryWrap || b == BoundaryBounce }
