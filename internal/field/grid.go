package field

import "math"

// maxGridAxis bounds the cells per axis. Cells wider than the link distance
// still yield the same pairs, only with more comparisons.
const maxGridAxis = 256

// Grid buckets particle indices into square cells of the link distance so the
// link pass only compares neighbouring cells.
type Grid struct {
	cellSize float64
	originX  float64
	originY  float64
	cols     int
	rows     int
	cells    [][]int
}

// NewGrid covers the viewport extended by margin on every side.
func NewGrid(vp Viewport, margin, cellSize float64) *Grid {
	g := &Grid{}
	g.Reset(vp, margin, cellSize)
	return g
}

// Reset resizes the grid, reusing cell storage where possible.
func (g *Grid) Reset(vp Viewport, margin, cellSize float64) {
	w := float64(vp.Width) + 2*margin
	h := float64(vp.Height) + 2*margin
	cellSize = math.Max(cellSize, math.Max(w, h)/maxGridAxis)
	if cellSize <= 0 {
		cellSize = 1
	}
	g.cellSize = cellSize
	g.originX = -margin
	g.originY = -margin
	g.cols = int(w/cellSize) + 1
	g.rows = int(h/cellSize) + 1
	n := g.cols * g.rows
	if cap(g.cells) < n {
		g.cells = make([][]int, n)
	}
	g.cells = g.cells[:n]
	g.Clear()
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *Grid) Insert(idx int, x, y float64) {
	c, r := g.cell(x, y)
	i := r*g.cols + c
	g.cells[i] = append(g.cells[i], idx)
}

// cell clamps out-of-range positions into the border cells.
func (g *Grid) cell(x, y float64) (int, int) {
	c := int((x - g.originX) / g.cellSize)
	r := int((y - g.originY) / g.cellSize)
	if c < 0 {
		c = 0
	} else if c >= g.cols {
		c = g.cols - 1
	}
	if r < 0 {
		r = 0
	} else if r >= g.rows {
		r = g.rows - 1
	}
	return c, r
}

// Links produces the same pairs as the pairwise [Links] pass, in a different
// order. The grid must have been built with cellSize >= maxDist; a grid
// that was never Reset falls back to the pairwise pass.
func (g *Grid) Links(ps []Particle, maxDist, base float64, dst []Link) []Link {
	if maxDist <= 0 {
		return dst
	}
	if len(g.cells) == 0 || g.cellSize < maxDist {
		return Links(ps, maxDist, base, dst)
	}
	g.Clear()
	for i := range ps {
		g.Insert(i, ps[i].X, ps[i].Y)
	}
	maxSq := maxDist * maxDist
	for i := range ps {
		c, r := g.cell(ps[i].X, ps[i].Y)
		for dr := -1; dr <= 1; dr++ {
			rr := r + dr
			if rr < 0 || rr >= g.rows {
				continue
			}
			for dc := -1; dc <= 1; dc++ {
				cc := c + dc
				if cc < 0 || cc >= g.cols {
					continue
				}
				for _, j := range g.cells[rr*g.cols+cc] {
					if j <= i {
						continue
					}
					dst = appendLink(dst, ps, i, j, maxSq, maxDist, base)
				}
			}
		}
	}
	return dst
}
