// Package controller turns pointer events into cuts. It owns the
// interaction state machine and the stroke history, and applies partition
// results to a Simulation.
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/fragment"
	"github.com/milk9111/slicer/geom"
	"github.com/milk9111/slicer/slice"
)

// BodyRef is an opaque simulation body handle.
type BodyRef uint64

// BodyState is the read-only state a cut needs from a body.
type BodyState struct {
	Centroid        cp.Vector
	Velocity        cp.Vector
	AngularVelocity float64
	Mass            float64
}

// Simulation is the rigid-body world the controller cuts.
type Simulation interface {
	// Bodies lists the sliceable bodies in a fixed order.
	Bodies() []BodyRef
	// Vertices returns a body's outline in world coordinates.
	Vertices(b BodyRef) geom.Polygon
	State(b BodyRef) BodyState
	BoundsContains(b BodyRef, p cp.Vector) bool
	MassOf(poly geom.Polygon) (mass float64, centroid cp.Vector)
	// CreateBody inserts a body for poly carrying the material of like.
	CreateBody(poly geom.Polygon, like BodyRef) (BodyRef, error)
	RemoveBody(b BodyRef)
	SetVelocity(b BodyRef, v cp.Vector)
	SetAngularVelocity(b BodyRef, w float64)
	ApplyForce(b BodyRef, force, at cp.Vector)
}

// Constraint is the pointer drag joint.
type Constraint interface {
	SetEnabled(enabled bool)
	// Grab attaches the joint to whatever lies under p.
	Grab(p cp.Vector) bool
	MoveTo(p cp.Vector)
	Release()
}

// Config holds the tunables that shape a cut.
type Config struct {
	Mode       Mode
	Commit     CommitPolicy
	Kinematics fragment.Params
	Partition  slice.Options
	// SimplifyTolerance thins freehand strokes before cutting. Zero keeps
	// every sample.
	SimplifyTolerance float64
	StrokeAge         time.Duration
}

// DefaultConfig returns single-segment mode with the default kinematics.
func DefaultConfig() Config {
	return Config{
		Mode:              ModeSingle,
		Commit:            CommitOnRelease,
		Kinematics:        fragment.DefaultParams(),
		Partition:         slice.DefaultOptions(),
		SimplifyTolerance: 2,
		StrokeAge:         DefaultStrokeAge,
	}
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ModeSingle.String(), "":
		return ModeSingle, nil
	case ModeFreehand.String(), "carve":
		return ModeFreehand, nil
	}
	return ModeSingle, fmt.Errorf("controller: unknown mode %q", s)
}

// ParseCommitPolicy accepts the names printed by CommitPolicy.String.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case CommitOnRelease.String(), "":
		return CommitOnRelease, nil
	case CommitNever.String():
		return CommitNever, nil
	}
	return CommitOnRelease, fmt.Errorf("controller: unknown commit policy %q", s)
}

// BodyReport describes what a cut did to one body.
type BodyReport struct {
	Body BodyRef

	// Outline is the world polygon the path was tested against.
	Outline    geom.Polygon
	Fragments  []BodyRef
	Err        error
	Unresolved []slice.Unresolved
}

// Report summarizes one commit.
type Report struct {
	Committed bool
	Path      geom.Path
	// Chord drives the slice force.
	Chord   geom.Segment
	Bodies  []BodyReport
	Created int
	Removed int
}

// Controller is one slicing surface. It is not safe for concurrent use.
type Controller struct {
	sim     Simulation
	drag    Constraint
	cfg     Config
	state   State
	stroke  []StrokePoint
	history *StrokeHistory
	last    Report

	// Logf receives diagnostics. Nil discards them.
	Logf func(format string, args ...any)
}

// New creates a controller bound to sim. drag may be nil.
func New(sim Simulation, drag Constraint, cfg Config) *Controller {
	return &Controller{
		sim:     sim,
		drag:    drag,
		cfg:     cfg,
		history: NewStrokeHistory(cfg.StrokeAge),
	}
}

func (c *Controller) State() State {
	if c == nil {
		return Idle
	}
	return c.state
}

func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// SetConfig swaps the tunables. An in-progress stroke keeps going and is
// committed under the new config.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil {
		return
	}
	c.cfg = cfg
	c.history.SetAge(cfg.StrokeAge)
}

func (c *Controller) History() *StrokeHistory {
	if c == nil {
		return nil
	}
	return c.history
}

// Stroke returns the points of the stroke being drawn.
func (c *Controller) Stroke() []StrokePoint {
	if c == nil || c.state != Slicing {
		return nil
	}
	return c.stroke
}

// LastReport returns the report of the most recent commit.
func (c *Controller) LastReport() Report {
	if c == nil {
		return Report{}
	}
	return c.last
}

// PointerDown starts a drag when p is over a body, otherwise a stroke.
func (c *Controller) PointerDown(p cp.Vector, at time.Time) {
	if c == nil || c.state != Idle {
		return
	}
	for _, b := range c.sim.Bodies() {
		if c.sim.BoundsContains(b, p) {
			c.state = Dragging
			if c.drag != nil {
				c.drag.Grab(p)
			}
			return
		}
	}

	c.state = Slicing
	if c.drag != nil {
		c.drag.SetEnabled(false)
	}
	pt := StrokePoint{Pos: p, At: at}
	c.stroke = append(c.stroke[:0], pt)
	c.history.Begin(pt)
}

func (c *Controller) PointerMove(p cp.Vector, at time.Time) {
	if c == nil {
		return
	}
	switch c.state {
	case Slicing:
		pt := StrokePoint{Pos: p, At: at}
		c.stroke = append(c.stroke, pt)
		c.history.Append(pt)
	case Dragging:
		if c.drag != nil {
			c.drag.MoveTo(p)
		}
	}
}

// PointerUp ends the interaction. A stroke is committed according to the
// mode and commit policy; the controller is Idle afterwards in every case.
func (c *Controller) PointerUp(p cp.Vector, at time.Time) Report {
	if c == nil {
		return Report{}
	}
	var rep Report
	switch c.state {
	case Slicing:
		pt := StrokePoint{Pos: p, At: at}
		c.stroke = append(c.stroke, pt)
		c.history.Append(pt)
		c.history.End()

		if path, chord, ok := c.strokePath(); ok {
			rep = c.Cut(path, chord)
		}
		c.stroke = c.stroke[:0]
		if c.drag != nil {
			c.drag.SetEnabled(true)
		}
	case Dragging:
		if c.drag != nil {
			c.drag.Release()
		}
	}
	c.state = Idle
	return rep
}

// Tick evicts expired stroke history.
func (c *Controller) Tick(now time.Time) {
	if c == nil {
		return
	}
	c.history.Evict(now)
}

func (c *Controller) strokePath() (geom.Path, geom.Segment, bool) {
	if len(c.stroke) < 2 {
		return nil, geom.Segment{}, false
	}
	first, last := c.stroke[0].Pos, c.stroke[len(c.stroke)-1].Pos

	switch c.cfg.Mode {
	case ModeFreehand:
		if c.cfg.Commit == CommitNever {
			return nil, geom.Segment{}, false
		}
		pts := make([]cp.Vector, len(c.stroke))
		for i, sp := range c.stroke {
			pts[i] = sp.Pos
		}
		if c.cfg.SimplifyTolerance > 0 {
			pts = geom.Simplify(pts, c.cfg.SimplifyTolerance)
		}
		path := geom.PathFromPoints(pts)
		if len(path) == 0 {
			return nil, geom.Segment{}, false
		}
		return path, geom.Segment{A: first, B: last}, true
	default:
		seg := geom.Segment{A: first, B: last}
		if seg.Degenerate() {
			return nil, geom.Segment{}, false
		}
		return geom.Path{seg}, seg, true
	}
}

// Cut partitions every body against path and replaces each one that
// splits. chord sets the slice force direction and magnitude. All bodies
// are evaluated against the bodies present when Cut starts.
func (c *Controller) Cut(path geom.Path, chord geom.Segment) Report {
	rep := Report{Committed: true, Path: path, Chord: chord}
	if c == nil || c.sim == nil {
		return rep
	}

	for _, b := range c.sim.Bodies() {
		poly := c.sim.Vertices(b)
		res := slice.Partition(poly, path, c.cfg.Partition)

		br := BodyReport{Body: b, Outline: poly, Err: res.Err, Unresolved: res.Unresolved}
		for _, u := range res.Unresolved {
			c.logf("controller: body %d: %v", b, u)
		}
		if !res.Split() {
			if res.Err != nil && !errors.Is(res.Err, slice.ErrNoCrossing) {
				c.logf("controller: body %d not cut: %v", b, res.Err)
				rep.Bodies = append(rep.Bodies, br)
			}
			continue
		}

		created, err := c.replace(b, res.Polygons, chord)
		if err != nil {
			br.Err = err
			c.logf("controller: body %d: %v", b, err)
			rep.Bodies = append(rep.Bodies, br)
			continue
		}
		br.Fragments = created
		rep.Bodies = append(rep.Bodies, br)
		rep.Created += len(created)
		rep.Removed++
	}

	c.last = rep
	return rep
}

// replace inserts fragments for polys and removes b. If any fragment body
// cannot be created, the ones already inserted are removed and b is kept.
func (c *Controller) replace(b BodyRef, polys []geom.Polygon, chord geom.Segment) ([]BodyRef, error) {
	st := c.sim.State(b)
	src := fragment.Source{
		Centroid:        st.Centroid,
		Velocity:        st.Velocity,
		AngularVelocity: st.AngularVelocity,
	}
	frags := fragment.Synthesize(src, polys, chord, c.cfg.Kinematics, c.sim.MassOf)

	created := make([]BodyRef, 0, len(frags))
	for _, f := range frags {
		ref, err := c.sim.CreateBody(f.Polygon, b)
		if err != nil {
			for _, r := range created {
				c.sim.RemoveBody(r)
			}
			return nil, fmt.Errorf("controller: create fragment: %w", err)
		}
		created = append(created, ref)
	}

	for i, f := range frags {
		ref := created[i]
		c.sim.SetVelocity(ref, f.Velocity)
		c.sim.SetAngularVelocity(ref, f.AngularVelocity)
		if f.Force != (cp.Vector{}) {
			c.sim.ApplyForce(ref, f.Force, f.Centroid)
		}
	}
	c.sim.RemoveBody(b)
	return created, nil
}

func (c *Controller) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}
