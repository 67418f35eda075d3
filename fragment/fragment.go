// Package fragment derives initial kinematics for the pieces of a cut body.
package fragment

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
)

// Params are the tunable constants of the kinematics model.
type Params struct {
	// SplitForce is the outward kerf velocity added along the offset from
	// the parent centroid.
	SplitForce float64
	// SliceForceFactor scales the applied force by mass and clamped cut
	// length.
	SliceForceFactor float64
	// MaxSliceVectorMagnitude caps the cut length used for the force.
	MaxSliceVectorMagnitude float64
	// UpwardBias attenuates the slice force by its alignment with Up.
	UpwardBias bool
	// Up is the direction favored by UpwardBias. Screen coordinates grow
	// downward, so up is (0, -1).
	Up cp.Vector
}

// DefaultParams mirrors the single-cut demo tuning in frame units.
func DefaultParams() Params {
	return Params{
		SplitForce:              2,
		SliceForceFactor:        0.04,
		MaxSliceVectorMagnitude: 500,
		UpwardBias:              true,
		Up:                      cp.Vector{X: 0, Y: -1},
	}
}

// Source is the read-only state of the body being cut.
type Source struct {
	Centroid        cp.Vector
	Velocity        cp.Vector
	AngularVelocity float64
}

// MassFunc computes mass and centroid for a fragment polygon. The simulation
// owns density, so it supplies this.
type MassFunc func(geom.Polygon) (mass float64, centroid cp.Vector)

// Fragment is one output body state, ready to be inserted by the caller.
type Fragment struct {
	Polygon         geom.Polygon
	Centroid        cp.Vector
	Mass            float64
	Velocity        cp.Vector
	AngularVelocity float64
	// Force is applied once at Centroid after insertion.
	Force cp.Vector

	// Components of Velocity, kept for inspection.
	Inherited  cp.Vector
	Tangential cp.Vector
	Split      cp.Vector
}

// Synthesize computes per-fragment kinematics for polys cut from src by cut.
func Synthesize(src Source, polys []geom.Polygon, cut geom.Segment, p Params, massOf MassFunc) []Fragment {
	out := make([]Fragment, 0, len(polys))
	for _, poly := range polys {
		mass, centroid := massOf(poly)
		r := centroid.Sub(src.Centroid)

		f := Fragment{
			Polygon:         poly,
			Centroid:        centroid,
			Mass:            mass,
			AngularVelocity: src.AngularVelocity,
			Inherited:       src.Velocity,
			Tangential:      Tangential(src.AngularVelocity, r),
			Split:           normalize(r).Mult(p.SplitForce),
			Force:           SliceForce(cut, mass, p),
		}
		f.Velocity = f.Inherited.Add(f.Tangential).Add(f.Split)
		out = append(out, f)
	}
	return out
}

// Tangential is the velocity a point at offset r carries from a rotation
// with angular velocity omega.
func Tangential(omega float64, r cp.Vector) cp.Vector {
	return cp.Vector{X: -omega * r.Y, Y: omega * r.X}
}

// SliceForce is the push transferred through the cut to a fragment of the
// given mass.
func SliceForce(cut geom.Segment, mass float64, p Params) cp.Vector {
	slice := cut.Vector()
	if p.MaxSliceVectorMagnitude > 0 {
		slice = slice.Clamp(p.MaxSliceVectorMagnitude)
	}
	force := normalize(slice).Mult(p.SliceForceFactor * slice.Length() * mass)

	if p.UpwardBias {
		up := normalize(p.Up)
		alignment := normalize(force).Dot(up)
		if alignment < 0 {
			alignment = 0
		}
		force = force.Mult(alignment)
	}
	return force
}

func normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}
