// Package physics runs sliceable polygon bodies on a Chipmunk2D space.
// Every body is an ECS entity; controller.BodyRef values are entity ids.
package physics

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/controller"
	"github.com/milk9111/slicer/ecs"
	"github.com/milk9111/slicer/ecs/component"
	"github.com/milk9111/slicer/geom"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeBody
)

var (
	ErrInvalidPolygon = errors.New("physics: invalid polygon")
	ErrUnknownBody    = errors.New("physics: unknown body")
)

// Options configure a World. Units are pixels and frames.
type Options struct {
	Width, Height float64
	Gravity       float64
	Density       float64
	Iterations    int
	// WallThickness is the radius of the boundary segments. Zero disables
	// the boundary.
	WallThickness float64
	DragMaxForce  float64
}

// DefaultOptions returns a bounded world of the given size.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:         width,
		Height:        height,
		Gravity:       0.3,
		Density:       0.001,
		Iterations:    20,
		WallThickness: 4,
		DragMaxForce:  200,
	}
}

// BodySpec describes a body to insert.
type BodySpec struct {
	Polygon  geom.Polygon
	Material component.Material
	Static   bool
}

// World owns the Chipmunk space, the entity registry and the drag joint.
type World struct {
	opts  Options
	space *cp.Space
	ecs   *ecs.World
	drag  *Drag

	walls         []*cp.Shape
	shapeToEntity map[*cp.Shape]ecs.Entity
	impacts       int
}

// NewWorld creates a space with gravity and, if configured, boundary walls.
func NewWorld(opts Options) *World {
	space := cp.NewSpace()
	if opts.Iterations > 0 {
		space.Iterations = uint(opts.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: opts.Gravity})

	w := &World{
		opts:          opts,
		space:         space,
		ecs:           ecs.NewWorld(),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
	w.buildWalls()
	w.setupHandlers()
	w.drag = newDrag(w)
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Entities returns the entity registry.
func (w *World) Entities() *ecs.World {
	if w == nil {
		return nil
	}
	return w.ecs
}

// Drag returns the pointer drag joint.
func (w *World) Drag() *Drag {
	if w == nil {
		return nil
	}
	return w.drag
}

// Impacts counts body-on-wall contacts that began since the world was
// created.
func (w *World) Impacts() int {
	if w == nil {
		return 0
	}
	return w.impacts
}

// SetGravity changes the downward acceleration.
func (w *World) SetGravity(g float64) {
	if w == nil {
		return
	}
	w.opts.Gravity = g
	w.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// SetDensity changes the density used for bodies created afterwards.
func (w *World) SetDensity(d float64) {
	if w == nil || d <= 0 {
		return
	}
	w.opts.Density = d
}

// Step advances the simulation by dt frames.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

// Add inserts a body described by spec.
func (w *World) Add(spec BodySpec) (controller.BodyRef, error) {
	if w == nil {
		return 0, ErrUnknownBody
	}
	e, err := w.insert(spec.Polygon, spec.Material, spec.Static)
	if err != nil {
		return 0, err
	}
	_ = ecs.Add(w.ecs, e, component.LineageComponent, component.Lineage{})
	return controller.BodyRef(e), nil
}

// Clear removes every body. Boundary walls stay.
func (w *World) Clear() {
	if w == nil {
		return
	}
	w.drag.Release()
	ents := ecs.Entities(w.ecs)
	for _, e := range ents {
		w.destroy(e)
	}
	log.Printf("physics: cleared %d bodies", len(ents))
}

// Bodies returns the dynamic bodies in slot order. Static bodies are never
// cut.
func (w *World) Bodies() []controller.BodyRef {
	if w == nil {
		return nil
	}
	var out []controller.BodyRef
	ecs.ForEach(w.ecs, component.BodyComponent, func(e ecs.Entity, b component.Body) {
		if !b.Static {
			out = append(out, controller.BodyRef(e))
		}
	})
	return out
}

// Vertices returns the outline of b in world coordinates.
func (w *World) Vertices(b controller.BodyRef) geom.Polygon {
	body, ok := w.body(b)
	if !ok {
		return nil
	}
	out := make(geom.Polygon, len(body.Outline))
	for i, v := range body.Outline {
		out[i] = body.Body.LocalToWorld(v)
	}
	return out
}

func (w *World) State(b controller.BodyRef) controller.BodyState {
	body, ok := w.body(b)
	if !ok {
		return controller.BodyState{}
	}
	return controller.BodyState{
		Centroid:        body.Body.Position(),
		Velocity:        body.Body.Velocity(),
		AngularVelocity: body.Body.AngularVelocity(),
		Mass:            body.Body.Mass(),
	}
}

// BoundsContains tests p against the merged bounding boxes of b's shapes.
func (w *World) BoundsContains(b controller.BodyRef, p cp.Vector) bool {
	body, ok := w.body(b)
	if !ok || len(body.Shapes) == 0 {
		return false
	}
	bb := body.Shapes[0].BB()
	for _, s := range body.Shapes[1:] {
		bb = bb.Merge(s.BB())
	}
	return bb.ContainsVect(p)
}

// MassOf returns density times area and the area centroid.
func (w *World) MassOf(poly geom.Polygon) (float64, cp.Vector) {
	density := 1.0
	if w != nil && w.opts.Density > 0 {
		density = w.opts.Density
	}
	return poly.Area() * density, poly.Centroid()
}

// CreateBody inserts a dynamic body for poly with like's material.
func (w *World) CreateBody(poly geom.Polygon, like controller.BodyRef) (controller.BodyRef, error) {
	if w == nil {
		return 0, ErrUnknownBody
	}
	parent := ecs.Entity(like)
	mat, _ := ecs.Get(w.ecs, parent, component.MaterialComponent)
	lineage, _ := ecs.Get(w.ecs, parent, component.LineageComponent)

	e, err := w.insert(poly, mat, false)
	if err != nil {
		return 0, err
	}
	_ = ecs.Add(w.ecs, e, component.LineageComponent, component.Lineage{
		Generation: lineage.Generation + 1,
		Parent:     uint64(parent),
	})
	return controller.BodyRef(e), nil
}

func (w *World) RemoveBody(b controller.BodyRef) {
	if w == nil {
		return
	}
	w.destroy(ecs.Entity(b))
}

func (w *World) SetVelocity(b controller.BodyRef, v cp.Vector) {
	if body, ok := w.body(b); ok {
		body.Body.SetVelocityVector(v)
	}
}

func (w *World) SetAngularVelocity(b controller.BodyRef, omega float64) {
	if body, ok := w.body(b); ok {
		body.Body.SetAngularVelocity(omega)
	}
}

// ApplyForce adds a force for the next step only; Chipmunk clears
// accumulated forces after every step.
func (w *World) ApplyForce(b controller.BodyRef, force, at cp.Vector) {
	if body, ok := w.body(b); ok {
		body.Body.ApplyForceAtWorldPoint(force, at)
	}
}

// Body returns the stored body component for b.
func (w *World) Body(b controller.BodyRef) (component.Body, bool) {
	return w.body(b)
}

// Material returns the material of b.
func (w *World) Material(b controller.BodyRef) (component.Material, bool) {
	if w == nil {
		return component.Material{}, false
	}
	return ecs.Get(w.ecs, ecs.Entity(b), component.MaterialComponent)
}

// Generation returns how many cuts produced b.
func (w *World) Generation(b controller.BodyRef) int {
	if w == nil {
		return 0
	}
	l, _ := ecs.Get(w.ecs, ecs.Entity(b), component.LineageComponent)
	return l.Generation
}

// EachBody visits every body, static ones included, in slot order.
func (w *World) EachBody(fn func(ref controller.BodyRef, body component.Body, mat component.Material)) {
	if w == nil || fn == nil {
		return
	}
	ecs.ForEach2(w.ecs, component.BodyComponent, component.MaterialComponent, func(e ecs.Entity, b component.Body, m component.Material) {
		fn(controller.BodyRef(e), b, m)
	})
}

func (w *World) body(b controller.BodyRef) (component.Body, bool) {
	if w == nil {
		return component.Body{}, false
	}
	body, ok := ecs.Get(w.ecs, ecs.Entity(b), component.BodyComponent)
	if !ok || body.Body == nil {
		return component.Body{}, false
	}
	return body, true
}

func (w *World) insert(poly geom.Polygon, mat component.Material, static bool) (ecs.Entity, error) {
	poly = poly.Dedupe(geom.Epsilon)
	if !poly.Valid(geom.Epsilon) {
		return 0, fmt.Errorf("%w: %d vertices, area %g", ErrInvalidPolygon, len(poly), poly.Area())
	}

	mass, centroid := w.MassOf(poly)
	built, err := buildBody(poly, mass, centroid, static)
	if err != nil {
		return 0, err
	}

	w.space.AddBody(built.body)
	built.body.SetPosition(centroid)

	e := ecs.CreateEntity(w.ecs)
	for _, s := range built.shapes {
		s.SetFriction(mat.Friction)
		s.SetElasticity(mat.Elasticity)
		s.SetCollisionType(collisionTypeBody)
		w.space.AddShape(s)
		w.shapeToEntity[s] = e
	}

	if err := ecs.Add(w.ecs, e, component.BodyComponent, component.Body{
		Body:    built.body,
		Shapes:  built.shapes,
		Outline: built.outline,
		Area:    poly.Area(),
		Static:  static,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w.ecs, e, component.MaterialComponent, mat); err != nil {
		return 0, err
	}
	return e, nil
}

func (w *World) destroy(e ecs.Entity) {
	body, ok := ecs.Get(w.ecs, e, component.BodyComponent)
	if !ok {
		return
	}
	if w.drag.Holds(body.Body) {
		w.drag.Release()
	}
	for _, s := range body.Shapes {
		if w.space.ContainsShape(s) {
			w.space.RemoveShape(s)
		}
		delete(w.shapeToEntity, s)
	}
	if body.Body != nil && w.space.ContainsBody(body.Body) {
		w.space.RemoveBody(body.Body)
	}
	ecs.DestroyEntity(w.ecs, e)
}

func (w *World) buildWalls() {
	if w.opts.WallThickness <= 0 || w.opts.Width <= 0 || w.opts.Height <= 0 {
		return
	}
	width, height := w.opts.Width, w.opts.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, w.opts.WallThickness)
		shape.SetFriction(0.8)
		shape.SetElasticity(0.5)
		shape.SetCollisionType(collisionTypeWall)
		w.space.AddShape(shape)
		w.walls = append(w.walls, shape)
	}
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeWall)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		if _, ok := world.shapeToEntity[shapeA]; !ok {
			if _, ok := world.shapeToEntity[shapeB]; !ok {
				return true
			}
		}
		world.impacts++
		return true
	}
}
