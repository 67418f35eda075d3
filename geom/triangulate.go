package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Triangle is one ear produced by Triangulate.
type Triangle [3]cp.Vector

// Triangulate splits a simple polygon into triangles by ear clipping. The
// winding of the input does not matter. Rings that stop yielding ears (which
// only happens for invalid input) return the triangles found so far.
func Triangulate(p Polygon) []Triangle {
	ring := p.Dedupe(Epsilon)
	n := len(ring)
	if n < 3 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	ccw := ring.SignedArea() > 0

	out := make([]Triangle, 0, n-2)
	guard := 0
	for len(idx) > 3 && guard < 2*n*n {
		guard++
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(ring, idx, prev, cur, next, ccw) {
				continue
			}
			out = append(out, Triangle{ring[prev], ring[cur], ring[next]})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return out
		}
	}
	if len(idx) == 3 {
		out = append(out, Triangle{ring[idx[0]], ring[idx[1]], ring[idx[2]]})
	}
	return out
}

func isEar(ring Polygon, idx []int, prev, cur, next int, ccw bool) bool {
	a, b, c := ring[prev], ring[cur], ring[next]
	cross := b.Sub(a).Cross(c.Sub(b))
	if ccw && cross <= 0 || !ccw && cross >= 0 {
		return false
	}
	for _, k := range idx {
		if k == prev || k == cur || k == next {
			continue
		}
		if pointInTriangle(ring[k], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c cp.Vector) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Simplify reduces a polyline with the Ramer-Douglas-Peucker algorithm. The
// first and last points are always kept.
func Simplify(points []cp.Vector, tolerance float64) []cp.Vector {
	if len(points) < 3 || tolerance <= 0 {
		out := make([]cp.Vector, len(points))
		copy(out, points)
		return out
	}
	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	simplifyRange(points, 0, len(points)-1, tolerance, keep)

	out := make([]cp.Vector, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func simplifyRange(points []cp.Vector, first, last int, tolerance float64, keep []bool) {
	if last-first < 2 {
		return
	}
	maxDist := -math.MaxFloat64
	split := first
	for i := first + 1; i < last; i++ {
		d := PointSegmentDistance(points[i], points[first], points[last])
		if d > maxDist {
			maxDist = d
			split = i
		}
	}
	if maxDist <= tolerance {
		return
	}
	keep[split] = true
	simplifyRange(points, first, split, tolerance, keep)
	simplifyRange(points, split, last, tolerance, keep)
}
