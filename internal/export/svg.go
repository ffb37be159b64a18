package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/fieldsim/internal/field"
)

// SVG is a field surface that records draw calls as SVG elements.
type SVG struct {
	Width, Height int
	Background    string

	defs  strings.Builder
	body  strings.Builder
	glows int
}

func NewSVG(vp field.Viewport, background string) *SVG {
	if background == "" {
		background = "#0a0a0a"
	}
	return &SVG{Width: vp.Width, Height: vp.Height, Background: background}
}

func (s *SVG) Clear() {
	s.defs.Reset()
	s.body.Reset()
	s.glows = 0
}

// Fade paints the background over everything at the given opacity.
func (s *SVG) Fade(alpha float64) {
	fmt.Fprintf(&s.body, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\" fill-opacity=\"%.3f\"/>\n", s.Background, alpha)
}

func (s *SVG) Circle(x, y, r float64, c field.Color) {
	fmt.Fprintf(&s.body, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" fill-opacity=\"%.3f\"/>\n",
		x, y, r, c.Hex(), c.A)
}

func (s *SVG) Glow(x, y, r float64, c field.Color) {
	id := fmt.Sprintf("g%d", s.glows)
	s.glows++
	fmt.Fprintf(&s.defs, "<radialGradient id=\"%s\"><stop offset=\"0\" stop-color=\"%s\" stop-opacity=\"%.3f\"/><stop offset=\"1\" stop-color=\"%s\" stop-opacity=\"0\"/></radialGradient>\n",
		id, c.Hex(), c.A, c.Hex())
	fmt.Fprintf(&s.body, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"url(#%s)\"/>\n", x, y, r, id)
}

func (s *SVG) Line(x0, y0, x1, y1 float64, c field.Color) {
	fmt.Fprintf(&s.body, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-opacity=\"%.3f\" stroke-width=\"1\"/>\n",
		x0, y0, x1, y1, c.Hex(), c.A)
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.Width, s.Height, s.Width, s.Height))
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(fmt.Sprintf("<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", s.Background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}
