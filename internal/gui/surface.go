package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/fieldsim/internal/field"
)

// Surface draws into whatever raylib target is active when the field ticks.
// App ticks inside BeginTextureMode so Fade trails persist across frames.
type Surface struct {
	Background rl.Color
	GlowTex    rl.Texture2D
}

func toColor(c field.Color) rl.Color {
	r, g, b := c.RGB255()
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return rl.NewColor(r, g, b, uint8(a*255))
}

func (s *Surface) Clear() { rl.ClearBackground(s.Background) }

func (s *Surface) Fade(alpha float64) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, w, h, rl.Fade(s.Background, float32(alpha)))
}

func (s *Surface) Circle(x, y, r float64, c field.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(c))
}

// Glow stretches the radial gradient texture over a disc of radius r.
func (s *Surface) Glow(x, y, r float64, c field.Color) {
	if s.GlowTex.ID == 0 {
		s.Circle(x, y, r/2, c)
		return
	}
	size := float32(2 * r)
	scale := size / float32(s.GlowTex.Width)
	pos := rl.NewVector2(float32(x-r), float32(y-r))
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawTextureEx(s.GlowTex, pos, 0, scale, toColor(c))
	rl.EndBlendMode()
}

func (s *Surface) Line(x0, y0, x1, y1 float64, c field.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), 1, toColor(c))
}
