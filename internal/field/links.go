package field

import "math"

// GridThreshold is the population at which the link pass switches from the
// pairwise scan to a [Grid].
const GridThreshold = 256

// Link connects particles A < B that are closer than the link distance.
type Link struct {
	A, B  int
	Dist  float64
	Alpha float64
}

// LinkAlpha is base*(1-d/maxDist) for d < maxDist and 0 otherwise.
func LinkAlpha(d, maxDist, base float64) float64 {
	if maxDist <= 0 || d >= maxDist {
		return 0
	}
	return base * (1 - d/maxDist)
}

// Links appends every unordered pair closer than maxDist to dst. It compares
// all N(N-1)/2 pairs and dominates the frame cost.
func Links(ps []Particle, maxDist, base float64, dst []Link) []Link {
	if maxDist <= 0 {
		return dst
	}
	maxSq := maxDist * maxDist
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dst = appendLink(dst, ps, i, j, maxSq, maxDist, base)
		}
	}
	return dst
}

func appendLink(dst []Link, ps []Particle, i, j int, maxSq, maxDist, base float64) []Link {
	dx := ps[i].X - ps[j].X
	dy := ps[i].Y - ps[j].Y
	dSq := dx*dx + dy*dy
	if dSq >= maxSq {
		return dst
	}
	d := math.Sqrt(dSq)
	a := LinkAlpha(d, maxDist, base)
	if a <= 0 {
		return dst
	}
	return append(dst, Link{A: i, B: j, Dist: d, Alpha: a})
}
