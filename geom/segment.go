package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the default merge tolerance for intersection points, in scene
// units.
const Epsilon = 1e-10

// Segment is one straight stroke of a cutting path.
type Segment struct {
	A cp.Vector
	B cp.Vector
}

// Vector returns B - A.
func (s Segment) Vector() cp.Vector {
	return s.B.Sub(s.A)
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Degenerate reports whether both endpoints coincide.
func (s Segment) Degenerate() bool {
	return s.A.Distance(s.B) <= Epsilon
}

// Path is an ordered sequence of cut segments.
type Path []Segment

// PathFromPoints turns consecutive point pairs into segments. Zero-length
// pairs are skipped.
func PathFromPoints(points []cp.Vector) Path {
	if len(points) < 2 {
		return nil
	}
	path := make(Path, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		seg := Segment{A: points[i-1], B: points[i]}
		if seg.Degenerate() {
			continue
		}
		path = append(path, seg)
	}
	return path
}

// Chord returns the segment from the first point of the path to the last.
func (p Path) Chord() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return Segment{A: p[0].A, B: p[len(p)-1].B}, true
}

// Bounds returns the bounding box of every segment endpoint.
func (p Path) Bounds() cp.BB {
	if len(p) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: p[0].A.X, R: p[0].A.X, B: p[0].A.Y, T: p[0].A.Y}
	for _, seg := range p {
		bb = extend(bb, seg.A)
		bb = extend(bb, seg.B)
	}
	return bb
}

// SegmentIntersection returns the point where segment p1p2 crosses segment
// q1q2. Endpoints count as part of the segments within eps. Parallel and
// collinear segments never intersect.
func SegmentIntersection(p1, p2, q1, q2 cp.Vector, eps float64) (cp.Vector, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	rl := r.Length()
	sl := s.Length()
	if rl <= eps || sl <= eps {
		return cp.Vector{}, false
	}

	denom := r.Cross(s)
	if math.Abs(denom) <= eps*rl*sl {
		return cp.Vector{}, false
	}

	qp := q1.Sub(p1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom

	tolT := eps / rl
	tolU := eps / sl
	if t < -tolT || t > 1+tolT || u < -tolU || u > 1+tolU {
		return cp.Vector{}, false
	}
	return p1.Add(r.Mult(t)), true
}

// DistanceAlong is the sort key for intersections found on one segment.
func DistanceAlong(origin, p cp.Vector) float64 {
	return origin.Distance(p)
}

// PointSegmentDistance returns the distance from p to the closest point of
// segment ab.
func PointSegmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Mult(t)))
}

// segmentsTouch is the inclusive test used by the simplicity check: it also
// reports collinear overlap, which SegmentIntersection rejects.
func segmentsTouch(p1, p2, q1, q2 cp.Vector, eps float64) bool {
	if _, ok := SegmentIntersection(p1, p2, q1, q2, eps); ok {
		return true
	}
	r := p2.Sub(p1)
	if math.Abs(r.Cross(q1.Sub(p1))) > eps*r.Length() || math.Abs(r.Cross(q2.Sub(p1))) > eps*r.Length() {
		return false
	}
	return PointSegmentDistance(q1, p1, p2) <= eps ||
		PointSegmentDistance(q2, p1, p2) <= eps ||
		PointSegmentDistance(p1, q1, q2) <= eps ||
		PointSegmentDistance(p2, q1, q2) <= eps
}

func extend(bb cp.BB, v cp.Vector) cp.BB {
	bb.L = math.Min(bb.L, v.X)
	bb.R = math.Max(bb.R, v.X)
	bb.B = math.Min(bb.B, v.Y)
	bb.T = math.Max(bb.T, v.Y)
	return bb
}
