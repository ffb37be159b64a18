package field

import "math"

// Advance moves p by its velocity and applies the boundary policy. With
// BoundaryWrap both coordinates stay in [-margin, dim+margin]; with
// BoundaryBounce they stay in [0, dim].
func Advance(p *Particle, vp Viewport, margin float64, b Boundary) {
	p.X += p.VX
	p.Y += p.VY
	w, h := float64(vp.Width), float64(vp.Height)

	if b == BoundaryBounce {
		p.X, p.VX = bounce(p.X, p.VX, w)
		p.Y, p.VY = bounce(p.Y, p.VY, h)
		return
	}
	p.X = wrap(p.X, w, margin)
	p.Y = wrap(p.Y, h, margin)
}

func wrap(v, dim, margin float64) float64 {
	if v < -margin {
		return dim + margin
	}
	if v > dim+margin {
		return -margin
	}
	return v
}

// bounce clamps v into [0, dim] and points the velocity back inside.
func bounce(v, vel, dim float64) (float64, float64) {
	if v < 0 {
		return 0, math.Abs(vel)
	}
	if v > dim {
		return dim, -math.Abs(vel)
	}
	return v, vel
}
