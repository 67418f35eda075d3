package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Polygon is a cyclic vertex ring; the last vertex connects to the first.
type Polygon []cp.Vector

// Clone returns a copy that shares no storage with p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Edge returns the i-th edge, wrapping at the end of the ring.
func (p Polygon) Edge(i int) Segment {
	return Segment{A: p[i], B: p[(i+1)%len(p)]}
}

// SignedArea is positive when the vertices wind counter-clockwise in a
// y-up frame (clockwise on screen).
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i := range p {
		sum += p[i].Cross(p[(i+1)%len(p)])
	}
	return sum / 2
}

// Area returns the unsigned area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the area centroid, or the vertex mean for zero-area rings.
func (p Polygon) Centroid() cp.Vector {
	a := p.SignedArea()
	if math.Abs(a) <= Epsilon {
		return p.mean()
	}
	var cx, cy float64
	for i := range p {
		v0 := p[i]
		v1 := p[(i+1)%len(p)]
		c := v0.Cross(v1)
		cx += (v0.X + v1.X) * c
		cy += (v0.Y + v1.Y) * c
	}
	return cp.Vector{X: cx / (6 * a), Y: cy / (6 * a)}
}

func (p Polygon) mean() cp.Vector {
	if len(p) == 0 {
		return cp.Vector{}
	}
	var sum cp.Vector
	for _, v := range p {
		sum = sum.Add(v)
	}
	return sum.Mult(1 / float64(len(p)))
}

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() cp.BB {
	if len(p) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: p[0].X, R: p[0].X, B: p[0].Y, T: p[0].Y}
	for _, v := range p[1:] {
		bb = extend(bb, v)
	}
	return bb
}

// Translate returns p shifted by d.
func (p Polygon) Translate(d cp.Vector) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// DistinctCount counts vertices that are not within eps of their successor.
func (p Polygon) DistinctCount(eps float64) int {
	return len(p.Dedupe(eps))
}

// Dedupe drops consecutive vertices (including the wrap-around pair) that lie
// within eps of each other.
func (p Polygon) Dedupe(eps float64) Polygon {
	out := make(Polygon, 0, len(p))
	for _, v := range p {
		if len(out) > 0 && out[len(out)-1].Distance(v) <= eps {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) <= eps {
		out = out[:len(out)-1]
	}
	return out
}

// Valid reports whether p satisfies the partitioner precondition: at least
// three distinct vertices, nonzero area, and no self intersection.
func (p Polygon) Valid(eps float64) bool {
	if p.DistinctCount(eps) < 3 {
		return false
	}
	if p.Area() <= eps {
		return false
	}
	return IsSimple(p)
}

// IsSimple reports whether no two non-adjacent edges of p intersect.
func IsSimple(p Polygon) bool {
	n := len(p)
	if n < 4 {
		return true
	}
	for i := 0; i < n; i++ {
		a1, a2 := p[i], p[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := p[j], p[(j+1)%n]
			if segmentsTouch(a1, a2, b1, b2, Epsilon) {
				return false
			}
		}
	}
	return true
}

// IsConvex reports whether every turn of p has the same orientation.
// Collinear vertices are ignored.
func IsConvex(p Polygon) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := p[i], p[(i+1)%n], p[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) <= Epsilon {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return sign != 0
}

// Contains reports whether pt lies strictly inside p. Points within eps of
// an edge are treated as outside.
func (p Polygon) Contains(pt cp.Vector, eps float64) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if PointSegmentDistance(pt, p[i], p[(i+1)%n]) <= eps {
			return false
		}
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p[i], p[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) {
			x := vj.X + (pt.Y-vj.Y)*(vi.X-vj.X)/(vi.Y-vj.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
