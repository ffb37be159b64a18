package field

import (
	"math"
	"math/rand"
)

// Population returns max(MinCount, round(area/Density)), capped by MaxCount
// when set.
func Population(vp Viewport, cfg Config) int {
	if !vp.Valid() || cfg.Density <= 0 {
		return cfg.MinCount
	}
	n := int(math.Round(vp.Area() / cfg.Density))
	if n < cfg.MinCount {
		n = cfg.MinCount
	}
	if cfg.MaxCount > 0 && n > cfg.MaxCount {
		n = cfg.MaxCount
	}
	return n
}

// Seed draws count particles uniformly over the viewport.
func Seed(rng *rand.Rand, count int, vp Viewport, cfg Config) []Particle {
	ps := make([]Particle, count)
	w, h := float64(vp.Width), float64(vp.Height)
	for i := range ps {
		ps[i] = Particle{
			X:      rng.Float64() * w,
			Y:      rng.Float64() * h,
			VX:     cfg.Speed.Draw(rng),
			VY:     cfg.Speed.Draw(rng),
			Radius: cfg.Radius.Draw(rng),
			Alpha:  cfg.Alpha.Draw(rng),
			Hue:    cfg.Hue.Draw(rng),
		}
	}
	return ps
}
