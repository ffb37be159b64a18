package field

import "time"

// glowScale widens a glow disc relative to the particle radius.
const glowScale = 4.0

// Draw renders particles and their links onto s and returns the links drawn.
// Links are computed into dst, which is reused between frames.
func Draw(s Surface, ps []Particle, cfg Config, mode Mode, grid *Grid, dst []Link) []Link {
	if cfg.Trail > 0 {
		s.Fade(cfg.Trail)
	} else {
		s.Clear()
	}

	for i := range ps {
		p := &ps[i]
		c := Color{H: p.Hue, S: cfg.Saturation, L: cfg.Lightness, A: p.Alpha}
		if mode == ModeGlow {
			s.Glow(p.X, p.Y, p.Radius*glowScale, c)
		} else {
			s.Circle(p.X, p.Y, p.Radius, c)
		}
	}

	dst = dst[:0]
	if cfg.LinkDistance <= 0 {
		return dst
	}
	if grid != nil && len(ps) >= GridThreshold {
		dst = grid.Links(ps, cfg.LinkDistance, cfg.LinkAlpha, dst)
	} else {
		dst = Links(ps, cfg.LinkDistance, cfg.LinkAlpha, dst)
	}
	for _, l := range dst {
		a, b := &ps[l.A], &ps[l.B]
		s.Line(a.X, a.Y, b.X, b.Y, Color{H: cfg.LinkHue, S: cfg.Saturation, L: cfg.Lightness, A: l.Alpha})
	}
	return dst
}

// render draws the current state and notifies observers.
func (f *Field) render(mode Mode) {
	start := time.Now()
	f.links = Draw(f.surface, f.particles, f.cfg, mode, f.grid, f.links)
	f.frames++
	stats := FrameStats{
		Frame:     f.frames,
		Particles: len(f.particles),
		Links:     len(f.links),
		Mode:      mode,
		Elapsed:   time.Since(start),
	}
	for _, o := range f.observers {
		o.OnFrame(stats)
	}
}
