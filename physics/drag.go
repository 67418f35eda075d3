package physics

import (
	"github.com/jakecoffman/cp"
)

const (
	// grabRadius is how far from a shape the pointer may be and still grab it.
	grabRadius = 5.0
	// dragErrorBias is the fraction of joint error left after one frame.
	dragErrorBias = 0.85
)

// Drag is a pivot joint between a kinematic pointer body and whatever body
// was grabbed. It implements controller.Constraint.
type Drag struct {
	world    *World
	mouse    *cp.Body
	joint    *cp.Constraint
	grabbed  *cp.Body
	enabled  bool
	maxForce float64
}

func newDrag(w *World) *Drag {
	maxForce := w.opts.DragMaxForce
	if maxForce <= 0 {
		maxForce = DefaultOptions(0, 0).DragMaxForce
	}
	return &Drag{
		world:    w,
		mouse:    cp.NewKinematicBody(),
		enabled:  true,
		maxForce: maxForce,
	}
}

// SetEnabled turns the joint into a no-op while disabled; the grab itself is
// kept.
func (d *Drag) SetEnabled(enabled bool) {
	if d == nil {
		return
	}
	d.enabled = enabled
	if d.joint != nil {
		d.joint.SetMaxForce(d.force())
	}
}

// SetMaxForce changes the joint strength.
func (d *Drag) SetMaxForce(f float64) {
	if d == nil || f <= 0 {
		return
	}
	d.maxForce = f
	if d.joint != nil {
		d.joint.SetMaxForce(d.force())
	}
}

// Grab attaches the joint to the nearest dynamic shape within grabRadius of
// p.
func (d *Drag) Grab(p cp.Vector) bool {
	if d == nil {
		return false
	}
	d.Release()
	d.mouse.SetPosition(p)
	d.mouse.SetVelocityVector(cp.Vector{})

	info := d.world.space.PointQueryNearest(p, grabRadius, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return false
	}
	body := info.Shape.Body()
	if body == nil || body.GetType() != cp.BODY_DYNAMIC {
		return false
	}

	nearest := p
	if info.Distance > 0 {
		nearest = info.Point
	}
	joint := cp.NewPivotJoint2(d.mouse, body, cp.Vector{}, body.WorldToLocal(nearest))
	joint.SetErrorBias(dragErrorBias)
	d.joint = d.world.space.AddConstraint(joint)
	d.grabbed = body
	d.joint.SetMaxForce(d.force())
	return true
}

// MoveTo drags the pointer body to p within one frame.
func (d *Drag) MoveTo(p cp.Vector) {
	if d == nil {
		return
	}
	d.mouse.SetVelocityVector(p.Sub(d.mouse.Position()))
	d.mouse.SetPosition(p)
}

func (d *Drag) Release() {
	if d == nil || d.joint == nil {
		return
	}
	if d.world.space.ContainsConstraint(d.joint) {
		d.world.space.RemoveConstraint(d.joint)
	}
	d.joint = nil
	d.grabbed = nil
}

// Holding reports whether a body is grabbed.
func (d *Drag) Holding() bool {
	return d != nil && d.joint != nil
}

// Holds reports whether body is the grabbed body.
func (d *Drag) Holds(body *cp.Body) bool {
	return d != nil && d.grabbed != nil && d.grabbed == body
}

// Anchor returns the pointer body position.
func (d *Drag) Anchor() cp.Vector {
	if d == nil {
		return cp.Vector{}
	}
	return d.mouse.Position()
}

func (d *Drag) force() float64 {
	if !d.enabled {
		return 0
	}
	return d.maxForce
}
