package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/fieldsim/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank = 0x2800
	// cells dimmer than this are erased by Fade
	fadeFloor = 0.03
	// glow dots dimmer than this are skipped
	glowFloor = 0.02
)

// Canvas is a Braille surface. Field coordinates are divided by Scale to get
// dot coordinates, so a W×H cell canvas covers (2W·Scale)×(4H·Scale) pixels.
// Each cell keeps the brightest colour drawn into it.
type Canvas struct {
	Width, Height int
	Scale         float64
	Grid          [][]rune

	level [][]float64
	tint  [][]field.Color
}

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{Scale: scale}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.level = make([][]float64, h)
	c.tint = make([][]field.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.level[i] = make([]float64, w)
		c.tint[i] = make([]field.Color, w)
	}
	c.Clear()
}

// Viewport is the pixel size the canvas represents.
func (c *Canvas) Viewport() field.Viewport {
	return field.Viewport{
		Width:  int(float64(c.Width*2) * c.Scale),
		Height: int(float64(c.Height*4) * c.Scale),
	}
}

func (c *Canvas) plot(x, y int, col field.Color) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	if col.A >= c.level[cy][cx] {
		c.level[cy][cx] = col.A
		c.tint[cy][cx] = col
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.level[i][j] = 0
		}
	}
}

// Fade dims every cell by alpha and erases cells that fall below the floor.
func (c *Canvas) Fade(alpha float64) {
	keep := 1 - alpha
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] == blank {
				continue
			}
			c.level[i][j] *= keep
			if c.level[i][j] < fadeFloor {
				c.Grid[i][j] = blank
				c.level[i][j] = 0
			}
		}
	}
}

func (c *Canvas) dot(v float64) int { return int(math.Floor(v / c.Scale)) }

func (c *Canvas) Circle(x, y, r float64, col field.Color) {
	cx, cy := c.dot(x), c.dot(y)
	rd := r / c.Scale
	if rd < 1 {
		c.plot(cx, cy, col)
		return
	}
	n := int(math.Ceil(rd))
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			if float64(dx*dx+dy*dy) <= rd*rd {
				c.plot(cx+dx, cy+dy, col)
			}
		}
	}
}

// Glow fills a disc whose alpha falls off linearly to zero at r.
func (c *Canvas) Glow(x, y, r float64, col field.Color) {
	cx, cy := c.dot(x), c.dot(y)
	rd := math.Max(r/c.Scale, 1)
	n := int(math.Ceil(rd))
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d > rd {
				continue
			}
			a := col.A * (1 - d/rd)
			if a < glowFloor && !(dx == 0 && dy == 0) {
				continue
			}
			c.plot(cx+dx, cy+dy, col.WithAlpha(a))
		}
	}
}

func (c *Canvas) Line(x0, y0, x1, y1 float64, col field.Color) {
	c.drawLine(c.dot(x0), c.dot(y0), c.dot(x1), c.dot(y1), col)
}

// drawLine plots a Bresenham line between dot coordinates.
func (c *Canvas) drawLine(x0, y0, x1, y1 int, col field.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Level returns the brightness of a cell.
func (c *Canvas) Level(col, row int) float64 {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0
	}
	return c.level[row][col]
}

// Render colours each cell by blending its tint over the theme background by
// the square root of its brightness. Runs of equal colour share one style.
func (c *Canvas) Render(theme Theme) string {
	bg, err := colorful.Hex(string(theme.Background))
	if err != nil {
		bg = colorful.Color{}
	}

	var b strings.Builder
	var run strings.Builder
	runHex := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHex == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
		}
		run.Reset()
	}

	for i, row := range c.Grid {
		for j, r := range row {
			hex := ""
			if r != blank {
				hex = bg.BlendRgb(c.tint[i][j].Colorful(), math.Sqrt(c.level[i][j])).Clamped().Hex()
			} else {
				r = ' '
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		runHex = ""
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
