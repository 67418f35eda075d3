package fragment

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
)

const tol = 1e-9

func near(a, b cp.Vector) bool {
	return a.Distance(b) <= tol
}

// fixedMass hands out precomputed centroids in order, so tests control r.
func fixedMass(mass float64, centroids ...cp.Vector) MassFunc {
	i := 0
	return func(geom.Polygon) (float64, cp.Vector) {
		c := centroids[i]
		i++
		return mass, c
	}
}

func areaMass(density float64) MassFunc {
	return func(p geom.Polygon) (float64, cp.Vector) {
		return p.Area() * density, p.Centroid()
	}
}

func TestStationaryBodyInheritsZeroVelocity(t *testing.T) {
	halves := []geom.Polygon{
		{{X: 360, Y: 210}, {X: 440, Y: 210}, {X: 440, Y: 250}, {X: 360, Y: 250}},
		{{X: 360, Y: 250}, {X: 440, Y: 250}, {X: 440, Y: 290}, {X: 360, Y: 290}},
	}
	src := Source{Centroid: cp.Vector{X: 400, Y: 250}}
	cut := geom.Segment{A: cp.Vector{X: 360, Y: 250}, B: cp.Vector{X: 440, Y: 250}}

	frags := Synthesize(src, halves, cut, DefaultParams(), areaMass(0.001))
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	for i, f := range frags {
		base := f.Inherited.Add(f.Tangential)
		if !near(base, cp.Vector{}) {
			t.Fatalf("fragment %d: base velocity %v, want zero", i, base)
		}
		if f.AngularVelocity != 0 {
			t.Fatalf("fragment %d: angular velocity %f", i, f.AngularVelocity)
		}
	}
}

func TestAngularContribution(t *testing.T) {
	src := Source{Centroid: cp.Vector{X: 100, Y: 100}, AngularVelocity: 2}
	polys := []geom.Polygon{nil, nil}
	massOf := fixedMass(1, cp.Vector{X: 110, Y: 100}, cp.Vector{X: 90, Y: 100})

	frags := Synthesize(src, polys, geom.Segment{}, Params{}, massOf)

	if !near(frags[0].Tangential, cp.Vector{X: 0, Y: 20}) {
		t.Fatalf("r1 tangential = %v, want (0,20)", frags[0].Tangential)
	}
	if !near(frags[1].Tangential, cp.Vector{X: 0, Y: -20}) {
		t.Fatalf("r2 tangential = %v, want (0,-20)", frags[1].Tangential)
	}
	for i, f := range frags {
		if f.AngularVelocity != 2 {
			t.Fatalf("fragment %d: angular velocity %f, want 2", i, f.AngularVelocity)
		}
	}
}

func TestTangential(t *testing.T) {
	cases := []struct {
		name  string
		omega float64
		r     cp.Vector
		want  cp.Vector
	}{
		{"zero_omega", 0, cp.Vector{X: 5, Y: 5}, cp.Vector{}},
		{"x_offset", 2, cp.Vector{X: 10}, cp.Vector{Y: 20}},
		{"y_offset", 2, cp.Vector{Y: 10}, cp.Vector{X: -20}},
		{"negative_omega", -1, cp.Vector{X: 3, Y: 4}, cp.Vector{X: 4, Y: -3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Tangential(c.omega, c.r); !near(got, c.want) {
				t.Fatalf("got %v want %v", got, c.want)
			}
		})
	}
}

func TestSplitImpulsePointsAway(t *testing.T) {
	src := Source{Centroid: cp.Vector{}, Velocity: cp.Vector{X: 3, Y: -1}}
	p := Params{SplitForce: 2}
	frags := Synthesize(src, []geom.Polygon{nil, nil}, geom.Segment{}, p,
		fixedMass(1, cp.Vector{X: 0, Y: -7}, cp.Vector{X: 0, Y: 7}))

	if !near(frags[0].Split, cp.Vector{X: 0, Y: -2}) || !near(frags[1].Split, cp.Vector{X: 0, Y: 2}) {
		t.Fatalf("unexpected split impulses %v %v", frags[0].Split, frags[1].Split)
	}
	if !near(frags[0].Velocity, cp.Vector{X: 3, Y: -3}) {
		t.Fatalf("velocity = %v", frags[0].Velocity)
	}
}

func TestSplitImpulseZeroOffset(t *testing.T) {
	frags := Synthesize(Source{}, []geom.Polygon{nil}, geom.Segment{}, Params{SplitForce: 5},
		fixedMass(1, cp.Vector{}))
	if !near(frags[0].Split, cp.Vector{}) {
		t.Fatalf("expected no split impulse for coincident centroids, got %v", frags[0].Split)
	}
}

func TestSliceForce(t *testing.T) {
	up := cp.Vector{X: 0, Y: -1}
	cases := []struct {
		name string
		cut  geom.Segment
		mass float64
		p    Params
		want cp.Vector
	}{
		{
			name: "scaled_by_mass_and_length",
			cut:  geom.Segment{B: cp.Vector{X: 100}},
			mass: 2,
			p:    Params{SliceForceFactor: 0.5, MaxSliceVectorMagnitude: 500},
			want: cp.Vector{X: 100},
		},
		{
			name: "clamped",
			cut:  geom.Segment{B: cp.Vector{X: 1000}},
			mass: 1,
			p:    Params{SliceForceFactor: 1, MaxSliceVectorMagnitude: 500},
			want: cp.Vector{X: 500},
		},
		{
			name: "bias_keeps_upward",
			cut:  geom.Segment{B: cp.Vector{Y: -10}},
			mass: 1,
			p:    Params{SliceForceFactor: 1, MaxSliceVectorMagnitude: 500, UpwardBias: true, Up: up},
			want: cp.Vector{Y: -10},
		},
		{
			name: "bias_drops_downward",
			cut:  geom.Segment{B: cp.Vector{Y: 10}},
			mass: 1,
			p:    Params{SliceForceFactor: 1, MaxSliceVectorMagnitude: 500, UpwardBias: true, Up: up},
			want: cp.Vector{},
		},
		{
			name: "bias_drops_horizontal",
			cut:  geom.Segment{B: cp.Vector{X: 10}},
			mass: 1,
			p:    Params{SliceForceFactor: 1, MaxSliceVectorMagnitude: 500, UpwardBias: true, Up: up},
			want: cp.Vector{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SliceForce(c.cut, c.mass, c.p); !near(got, c.want) {
				t.Fatalf("got %v want %v", got, c.want)
			}
		})
	}
}

func TestSliceForceDiagonalBias(t *testing.T) {
	p := Params{SliceForceFactor: 1, MaxSliceVectorMagnitude: 500, UpwardBias: true, Up: cp.Vector{Y: -1}}
	cut := geom.Segment{B: cp.Vector{X: 30, Y: -30}}
	got := SliceForce(cut, 1, p)
	length := math.Hypot(30, 30)
	want := cp.Vector{X: 30, Y: -30}.Mult(math.Sqrt2 / 2)
	if !near(got, want) {
		t.Fatalf("got %v want %v (|cut|=%f)", got, want, length)
	}
}

func TestSynthesizeAppliesForcePerFragmentMass(t *testing.T) {
	p := Params{SliceForceFactor: 0.01, MaxSliceVectorMagnitude: 500}
	cut := geom.Segment{B: cp.Vector{X: 200}}
	polys := []geom.Polygon{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		{{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 40}, {X: 0, Y: 40}},
	}
	frags := Synthesize(Source{Centroid: cp.Vector{X: 5, Y: 20}}, polys, cut, p, areaMass(1))
	if frags[1].Mass != 3*frags[0].Mass {
		t.Fatalf("expected mass ratio 3, got %f / %f", frags[1].Mass, frags[0].Mass)
	}
	if math.Abs(frags[1].Force.X-3*frags[0].Force.X) > tol {
		t.Fatalf("expected force to scale with mass: %v vs %v", frags[0].Force, frags[1].Force)
	}
}
