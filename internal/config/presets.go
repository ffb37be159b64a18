package config

import (
	"sort"

	"github.com/san-kum/fieldsim/internal/field"
)

// Presets reproduce the site variants the field was tuned for.
var Presets = map[string]func() field.Config{
	"hero": field.DefaultConfig,
	"footer": func() field.Config {
		c := field.DefaultConfig()
		c.Density = 140000
		c.MinCount = 12
		c.LinkDistance = 0
		c.Alpha = field.Range{Min: 0.15, Max: 0.45}
		return c
	},
	"glow": func() field.Config {
		c := field.DefaultConfig()
		c.Glow = true
		c.Trail = 0.18
		c.Density = 60000
		c.Radius = field.Range{Min: 1.5, Max: 3.5}
		c.Hue = field.Range{Min: 280, Max: 330}
		c.LinkDistance = 0
		return c
	},
	"dense": func() field.Config {
		c := field.DefaultConfig()
		c.Density = 9000
		c.MinCount = 60
		c.MaxCount = 600
		c.LinkDistance = 90
		c.LinkAlpha = 0.12
		return c
	},
	"bounce": func() field.Config {
		c := field.DefaultConfig()
		c.Boundary = field.BoundaryBounce
		c.Speed = field.Range{Min: -0.6, Max: 0.6}
		return c
	},
	"fans": func() field.Config {
		c := field.DefaultConfig()
		c.Hue = field.Range{Min: 20, Max: 50}
		c.LinkHue = 35
		c.Saturation = 0.9
		c.Lightness = 0.6
		c.LinkDistance = 140
		c.LinkAlpha = 0.1
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *field.Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := fn()
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
