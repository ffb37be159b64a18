package field

import (
	"math/rand"
	"testing"
)

func TestPopulation(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		vp       Viewport
		density  float64
		minCount int
		maxCount int
		expected int
	}{
		{"full hd floors to min", Viewport{1920, 1080}, 90000, 30, 0, 30},
		{"4k above min", Viewport{3840, 2160}, 90000, 30, 0, 92},
		{"tiny viewport", Viewport{10, 10}, 90000, 30, 0, 30},
		{"dense", Viewport{1000, 1000}, 10000, 0, 0, 100},
		{"rounds half up", Viewport{150, 100}, 10000, 0, 0, 2},
		{"capped", Viewport{3840, 2160}, 9000, 30, 500, 500},
		{"zero min", Viewport{100, 100}, 90000, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Density = tt.density
			cfg.MinCount = tt.minCount
			cfg.MaxCount = tt.maxCount
			if got := Population(tt.vp, cfg); got != tt.expected {
				t.Errorf("Population(%v) = %d, want %d", tt.vp, got, tt.expected)
			}
		})
	}
}

func TestSeedWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed = Range{Min: -0.5, Max: 0.4}
	cfg.Radius = Range{Min: 1, Max: 3}
	cfg.Alpha = Range{Min: 0.1, Max: 0.2}
	cfg.Hue = Range{Min: 10, Max: 20}
	vp := Viewport{Width: 640, Height: 480}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		ps := Seed(rng, 200, vp, cfg)
		if len(ps) != 200 {
			t.Fatalf("expected 200 particles, got %d", len(ps))
		}
		for i, p := range ps {
			if p.X < 0 || p.X > float64(vp.Width) || p.Y < 0 || p.Y > float64(vp.Height) {
				t.Fatalf("round %d particle %d outside viewport: (%f, %f)", round, i, p.X, p.Y)
			}
			if !cfg.Speed.Contains(p.VX) || !cfg.Speed.Contains(p.VY) {
				t.Fatalf("velocity (%f, %f) outside %s", p.VX, p.VY, cfg.Speed)
			}
			if !cfg.Radius.Contains(p.Radius) {
				t.Fatalf("radius %f outside %s", p.Radius, cfg.Radius)
			}
			if !cfg.Alpha.Contains(p.Alpha) {
				t.Fatalf("alpha %f outside %s", p.Alpha, cfg.Alpha)
			}
			if !cfg.Hue.Contains(p.Hue) {
				t.Fatalf("hue %f outside %s", p.Hue, cfg.Hue)
			}
		}
	}
}

func TestSeedVelocityStraddlesZero(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	ps := Seed(rng, 500, Viewport{800, 600}, cfg)

	var neg, pos int
	for _, p := range ps {
		if p.VX < 0 {
			neg++
		} else {
			pos++
		}
	}
	if neg == 0 || pos == 0 {
		t.Errorf("expected both signs, got %d negative and %d positive", neg, pos)
	}
}

func TestSeedDegenerateRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = Range{Min: 2, Max: 2}
	ps := Seed(rand.New(rand.NewSource(3)), 10, Viewport{100, 100}, cfg)
	for _, p := range ps {
		if p.Radius != 2 {
			t.Errorf("expected radius 2, got %f", p.Radius)
		}
	}
}
