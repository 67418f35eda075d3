package geom

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func v(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

func TestSegmentIntersection(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 cp.Vector
		q1, q2 cp.Vector
		want   cp.Vector
		ok     bool
	}{
		{"cross", v(0, 0), v(10, 10), v(0, 10), v(10, 0), v(5, 5), true},
		{"touch_endpoint", v(0, 0), v(10, 0), v(10, -5), v(10, 5), v(10, 0), true},
		{"miss", v(0, 0), v(4, 4), v(0, 10), v(10, 0), cp.Vector{}, false},
		{"parallel", v(0, 0), v(10, 0), v(0, 1), v(10, 1), cp.Vector{}, false},
		{"collinear_overlap", v(0, 0), v(10, 0), v(5, 0), v(15, 0), cp.Vector{}, false},
		{"zero_length", v(1, 1), v(1, 1), v(0, 0), v(2, 2), cp.Vector{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := SegmentIntersection(c.p1, c.p2, c.q1, c.q2, Epsilon)
			if ok != c.ok {
				t.Fatalf("ok=%v want %v", ok, c.ok)
			}
			if ok && got.Distance(c.want) > 1e-9 {
				t.Fatalf("got %v want %v", got, c.want)
			}
		})
	}
}

func TestDistanceAlongOrdersPoints(t *testing.T) {
	origin := v(0, 0)
	if DistanceAlong(origin, v(3, 4)) != 5 {
		t.Fatalf("expected 5")
	}
	if DistanceAlong(origin, v(1, 0)) >= DistanceAlong(origin, v(2, 0)) {
		t.Fatalf("expected nearer point to sort first")
	}
}

func TestIsSimple(t *testing.T) {
	cases := []struct {
		name string
		poly Polygon
		want bool
	}{
		{"triangle", Polygon{v(0, 0), v(1, 0), v(0, 1)}, true},
		{"square", Polygon{v(0, 0), v(1, 0), v(1, 1), v(0, 1)}, true},
		{"bowtie", Polygon{v(0, 0), v(1, 1), v(1, 0), v(0, 1)}, false},
		{"concave", Polygon{v(0, 0), v(4, 0), v(4, 4), v(2, 1), v(0, 4)}, true},
		{"touching", Polygon{v(0, 0), v(4, 0), v(2, 2), v(4, 4), v(0, 4), v(2, 2)}, false},
		{"collinear_fold", Polygon{v(0, 0), v(4, 0), v(4, 1), v(2, 0), v(1, 0), v(1, -2)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsSimple(c.poly); got != c.want {
				t.Fatalf("IsSimple = %v want %v", got, c.want)
			}
		})
	}
}

func TestAreaAndCentroid(t *testing.T) {
	sq := Polygon{v(360, 210), v(440, 210), v(440, 290), v(360, 290)}
	if math.Abs(sq.Area()-6400) > 1e-9 {
		t.Fatalf("area = %f", sq.Area())
	}
	if c := sq.Centroid(); c.Distance(v(400, 250)) > 1e-9 {
		t.Fatalf("centroid = %v", c)
	}

	reversed := Polygon{v(360, 290), v(440, 290), v(440, 210), v(360, 210)}
	if math.Signbit(reversed.SignedArea()) == math.Signbit(sq.SignedArea()) {
		t.Fatalf("expected opposite winding signs")
	}
	if c := reversed.Centroid(); c.Distance(v(400, 250)) > 1e-9 {
		t.Fatalf("centroid of reversed ring = %v", c)
	}

	l := Polygon{v(0, 0), v(2, 0), v(2, 1), v(1, 1), v(1, 2), v(0, 2)}
	if math.Abs(l.Area()-3) > 1e-12 {
		t.Fatalf("L area = %f", l.Area())
	}
	want := v(5.0/6.0, 5.0/6.0)
	if c := l.Centroid(); c.Distance(want) > 1e-9 {
		t.Fatalf("L centroid = %v want %v", c, want)
	}
}

func TestContainsIsStrict(t *testing.T) {
	sq := Polygon{v(0, 0), v(10, 0), v(10, 10), v(0, 10)}
	cases := []struct {
		name string
		pt   cp.Vector
		want bool
	}{
		{"inside", v(5, 5), true},
		{"outside", v(15, 5), false},
		{"on_edge", v(10, 5), false},
		{"on_vertex", v(0, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := sq.Contains(c.pt, Epsilon); got != c.want {
				t.Fatalf("Contains(%v) = %v", c.pt, got)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	p := Polygon{v(0, 0), v(0, 0), v(1, 0), v(1, 1), v(0, 0)}
	got := p.Dedupe(Epsilon)
	if len(got) != 3 {
		t.Fatalf("expected 3 vertices, got %v", got)
	}
}

func TestIsConvex(t *testing.T) {
	if !IsConvex(Polygon{v(0, 0), v(1, 0), v(1, 1), v(0, 1)}) {
		t.Fatalf("square should be convex")
	}
	if !IsConvex(Polygon{v(0, 0), v(1, 0), v(2, 0), v(2, 2), v(0, 2)}) {
		t.Fatalf("collinear vertex should not break convexity")
	}
	if IsConvex(Polygon{v(0, 0), v(4, 0), v(4, 4), v(2, 1), v(0, 4)}) {
		t.Fatalf("arrow should be concave")
	}
}

func TestTriangulateCoversArea(t *testing.T) {
	cases := []struct {
		name string
		poly Polygon
	}{
		{"square", Polygon{v(0, 0), v(10, 0), v(10, 10), v(0, 10)}},
		{"arrow", Polygon{v(0, 0), v(4, 0), v(4, 4), v(2, 1), v(0, 4)}},
		{"u_shape", Polygon{v(0, 0), v(30, 0), v(30, 30), v(20, 30), v(20, 10), v(10, 10), v(10, 30), v(0, 30)}},
		{"clockwise_l", Polygon{v(0, 2), v(1, 2), v(1, 1), v(2, 1), v(2, 0), v(0, 0)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tris := Triangulate(c.poly)
			if len(tris) != len(c.poly)-2 {
				t.Fatalf("expected %d triangles, got %d", len(c.poly)-2, len(tris))
			}
			var sum float64
			for _, tri := range tris {
				sum += Polygon(tri[:]).Area()
			}
			if math.Abs(sum-c.poly.Area()) > 1e-9 {
				t.Fatalf("triangle area %f != polygon area %f", sum, c.poly.Area())
			}
		})
	}
}

func TestSimplifyKeepsCorners(t *testing.T) {
	pts := []cp.Vector{v(0, 0), v(1, 0.1), v(2, -0.1), v(3, 0), v(3, 5), v(3.1, 6), v(3, 10)}
	got := Simplify(pts, 0.5)
	want := []cp.Vector{v(0, 0), v(3, 0), v(3, 10)}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestPathFromPointsSkipsZeroLength(t *testing.T) {
	path := PathFromPoints([]cp.Vector{v(0, 0), v(0, 0), v(5, 0), v(5, 5)})
	if len(path) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(path))
	}
	chord, ok := path.Chord()
	if !ok || chord.A != v(0, 0) || chord.B != v(5, 5) {
		t.Fatalf("unexpected chord %v", chord)
	}
}
