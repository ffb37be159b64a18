package export

import (
	"image"
	"image/color"
	"image/gif"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/fieldsim/internal/field"
)

func TestSVGSurface(t *testing.T) {
	s := NewSVG(field.Viewport{Width: 200, Height: 100}, "")
	red := field.Color{H: 0, S: 1, L: 0.5, A: 0.5}

	s.Circle(10, 20, 2, red)
	s.Clear()
	s.Circle(30, 40, 2, red)
	s.Glow(50, 50, 8, red)
	s.Line(0, 0, 10, 10, red.WithAlpha(0.04))
	out := s.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatal("not a complete svg document")
	}
	if !strings.Contains(out, `width="200" height="100"`) {
		t.Error("missing dimensions")
	}
	if strings.Contains(out, `cx="10.00"`) {
		t.Error("clear did not drop earlier elements")
	}
	if strings.Count(out, "<circle") != 2 {
		t.Errorf("expected 2 circles, got %d", strings.Count(out, "<circle"))
	}
	if !strings.Contains(out, `fill="#ff0000" fill-opacity="0.500"`) {
		t.Error("circle colour missing")
	}
	if !strings.Contains(out, `<radialGradient id="g0">`) || !strings.Contains(out, `fill="url(#g0)"`) {
		t.Error("glow gradient missing")
	}
	if !strings.Contains(out, `stroke-opacity="0.040"`) {
		t.Error("line opacity missing")
	}
}

func TestSVGFade(t *testing.T) {
	s := NewSVG(field.Viewport{Width: 10, Height: 10}, "#000000")
	s.Fade(0.2)
	if !strings.Contains(s.String(), `fill-opacity="0.200"`) {
		t.Error("fade rect missing")
	}
}

func TestSVGWithField(t *testing.T) {
	vp := field.Viewport{Width: 640, Height: 360}
	s := NewSVG(vp, "")
	cfg := field.DefaultConfig()
	ps := field.Seed(rand.New(rand.NewSource(9)), field.Population(vp, cfg), vp, cfg)
	links := field.Draw(s, ps, cfg, field.ModeParticles, nil, nil)

	out := s.String()
	if got := strings.Count(out, "<circle"); got != len(ps) {
		t.Errorf("expected %d circles, got %d", len(ps), got)
	}
	if got := strings.Count(out, "<line"); got != len(links) {
		t.Errorf("expected %d lines, got %d", len(links), got)
	}
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	pal := color.Palette{color.Black, color.White}
	frames := []*image.Paletted{
		image.NewPaletted(image.Rect(0, 0, 4, 4), pal),
		image.NewPaletted(image.Rect(0, 0, 4, 4), pal),
	}

	if err := SaveGIF(path, frames, 2); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}

	if err := SaveGIF(path, nil, 2); err == nil {
		t.Error("expected error for empty frames")
	}
	if err := SaveGIF(filepath.Join(t.TempDir(), "missing", "out.gif"), frames, 2); err == nil {
		t.Error("expected error for an unwritable path")
	}
}
