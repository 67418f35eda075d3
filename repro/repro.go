// Package repro records cuts as YAML cases that can be replayed without a
// simulation.
package repro

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/controller"
	"github.com/milk9111/slicer/geom"
	"github.com/milk9111/slicer/slice"
	"gopkg.in/yaml.v3"
)

// areaTolerance is the relative area drift allowed between a body and its
// fragments.
const areaTolerance = 1e-6

var ErrMismatch = errors.New("repro: case does not match")

type Point [2]float64

type Segment [2]Point

// Body is one polygon of a case. Expect, when set, is the number of
// polygons Partition must return for it.
type Body struct {
	Vertices []Point `yaml:"vertices,flow"`
	Expect   int     `yaml:"expect,omitempty"`
}

type Case struct {
	Name    string    `yaml:"name,omitempty"`
	Epsilon float64   `yaml:"epsilon,omitempty"`
	Path    []Segment `yaml:"path,flow"`
	Bodies  []Body    `yaml:"bodies"`
}

// Outcome is the replay result for one body.
type Outcome struct {
	Index     int
	Input     geom.Polygon
	Result    slice.Result
	AreaIn    float64
	AreaOut   float64
	Expect    int
	Unchanged bool
}

// FromReport captures every body a commit touched.
func FromReport(name string, rep controller.Report, eps float64) Case {
	c := Case{Name: name, Epsilon: eps}
	for _, seg := range rep.Path {
		c.Path = append(c.Path, Segment{point(seg.A), point(seg.B)})
	}
	for _, br := range rep.Bodies {
		if len(br.Outline) == 0 {
			continue
		}
		b := Body{Expect: 1}
		if len(br.Fragments) > 0 {
			b.Expect = len(br.Fragments)
		}
		for _, v := range br.Outline {
			b.Vertices = append(b.Vertices, point(v))
		}
		c.Bodies = append(c.Bodies, b)
	}
	return c
}

func Parse(data []byte) (Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Case{}, fmt.Errorf("repro: unmarshal: %w", err)
	}
	if len(c.Path) == 0 {
		return Case{}, fmt.Errorf("repro: case %q has no path", c.Name)
	}
	return c, nil
}

func (c Case) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("repro: marshal: %w", err)
	}
	return data, nil
}

// GeomPath converts the recorded path.
func (c Case) GeomPath() geom.Path {
	path := make(geom.Path, 0, len(c.Path))
	for _, s := range c.Path {
		path = append(path, geom.Segment{A: vec(s[0]), B: vec(s[1])})
	}
	return path
}

// Run partitions every body against the path.
func Run(c Case) []Outcome {
	opts := slice.DefaultOptions()
	if c.Epsilon > 0 {
		opts.Epsilon = c.Epsilon
	}
	path := c.GeomPath()

	out := make([]Outcome, 0, len(c.Bodies))
	for i, b := range c.Bodies {
		poly := make(geom.Polygon, len(b.Vertices))
		for j, p := range b.Vertices {
			poly[j] = vec(p)
		}
		res := slice.Partition(poly, path, opts)
		o := Outcome{Index: i, Input: poly, Result: res, AreaIn: poly.Area(), Expect: b.Expect}
		for _, frag := range res.Polygons {
			o.AreaOut += frag.Area()
		}
		o.Unchanged = !res.Split()
		out = append(out, o)
	}
	return out
}

// Check compares outcomes against expected counts and area conservation.
func Check(outcomes []Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Expect > 0 && len(o.Result.Polygons) != o.Expect {
			errs = append(errs, fmt.Errorf("%w: body %d: %d polygons, expected %d", ErrMismatch, o.Index, len(o.Result.Polygons), o.Expect))
		}
		if math.Abs(o.AreaOut-o.AreaIn) > areaTolerance*math.Max(1, o.AreaIn) {
			errs = append(errs, fmt.Errorf("%w: body %d: area %g became %g", ErrMismatch, o.Index, o.AreaIn, o.AreaOut))
		}
	}
	return errors.Join(errs...)
}

func point(v cp.Vector) Point {
	return Point{v.X, v.Y}
}

func vec(p Point) cp.Vector {
	return cp.Vector{X: p[0], Y: p[1]}
}
