package field

import (
	"fmt"
	"math"
)

const (
	DefaultDensity      = 90000.0
	DefaultMinCount     = 30
	DefaultLinkDistance = 120.0
	DefaultLinkAlpha    = 0.08
	DefaultMargin       = 10.0
)

// Config tunes a field. Ranges bound per-particle uniform draws.
type Config struct {
	Density              float64  `yaml:"density"`
	MinCount             int      `yaml:"min_count"`
	MaxCount             int      `yaml:"max_count"`
	Speed                Range    `yaml:"speed"`
	Radius               Range    `yaml:"radius"`
	Alpha                Range    `yaml:"alpha"`
	Hue                  Range    `yaml:"hue"`
	Saturation           float64  `yaml:"saturation"`
	Lightness            float64  `yaml:"lightness"`
	LinkDistance         float64  `yaml:"link_distance"`
	LinkAlpha            float64  `yaml:"link_alpha"`
	LinkHue              float64  `yaml:"link_hue"`
	Margin               float64  `yaml:"margin"`
	Trail                float64  `yaml:"trail"`
	Glow                 bool     `yaml:"glow"`
	Boundary             Boundary `yaml:"boundary"`
	RespectReducedMotion bool     `yaml:"respect_reduced_motion"`
	Seed                 int64    `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Density:              DefaultDensity,
		MinCount:             DefaultMinCount,
		Speed:                Range{Min: -0.3, Max: 0.3},
		Radius:               Range{Min: 0.6, Max: 2.2},
		Alpha:                Range{Min: 0.25, Max: 0.8},
		Hue:                  Range{Min: 190, Max: 260},
		Saturation:           0.8,
		Lightness:            0.65,
		LinkDistance:         DefaultLinkDistance,
		LinkAlpha:            DefaultLinkAlpha,
		LinkHue:              220,
		Margin:               DefaultMargin,
		Boundary:             BoundaryWrap,
		RespectReducedMotion: true,
	}
}

// Validate rejects configurations that cannot be seeded or drawn. All errors
// wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if !(c.Density > 0) || math.IsInf(c.Density, 0) {
		return fmt.Errorf("%w: density must be positive, got %g", ErrInvalidConfig, c.Density)
	}
	if c.MinCount < 0 {
		return fmt.Errorf("%w: min_count must not be negative, got %d", ErrInvalidConfig, c.MinCount)
	}
	if c.MaxCount < 0 || (c.MaxCount > 0 && c.MaxCount < c.MinCount) {
		return fmt.Errorf("%w: max_count %d below min_count %d", ErrInvalidConfig, c.MaxCount, c.MinCount)
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"speed", c.Speed},
		{"radius", c.Radius},
		{"alpha", c.Alpha},
		{"hue", c.Hue},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return fmt.Errorf("%w: %s range inverted %s", ErrInvalidConfig, nr.name, nr.r)
		}
	}
	if c.Radius.Min < 0 {
		return fmt.Errorf("%w: radius must not be negative", ErrInvalidConfig)
	}
	if c.Alpha.Min < 0 || c.Alpha.Max > 1 {
		return fmt.Errorf("%w: alpha range %s outside [0, 1]", ErrInvalidConfig, c.Alpha)
	}
	if c.LinkDistance < 0 {
		return fmt.Errorf("%w: link_distance must not be negative, got %g", ErrInvalidConfig, c.LinkDistance)
	}
	if c.LinkAlpha < 0 || c.LinkAlpha > 1 {
		return fmt.Errorf("%w: link_alpha must be in [0, 1], got %g", ErrInvalidConfig, c.LinkAlpha)
	}
	if c.Margin < 0 {
		return fmt.Errorf("%w: margin must not be negative, got %g", ErrInvalidConfig, c.Margin)
	}
	if c.Trail < 0 || c.Trail > 1 {
		return fmt.Errorf("%w: trail must be in [0, 1], got %g", ErrInvalidConfig, c.Trail)
	}
	if !c.Boundary.valid() {
		return fmt.Errorf("%w: unknown boundary %q", ErrInvalidConfig, c.Boundary)
	}
	return nil
}

// Mode is the rendering mode implied by the config alone.
func (c Config) Mode() Mode {
	if c.Glow {
		return ModeGlow
	}
	return ModeParticles
}
