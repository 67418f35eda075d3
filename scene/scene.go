// Package scene builds the starting bodies from tengo scripts. A script sees
// the globals width and height and must define an array named bodies whose
// entries are maps:
//
//	{kind: "box", x, y, w, h}
//	{kind: "regular", x, y, radius, sides, rotation}
//	{kind: "polygon", points: [[x, y], ...]}
//
// Any entry may also set fill, friction, elasticity and static.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/config"
	"github.com/milk9111/slicer/ecs/component"
	"github.com/milk9111/slicer/geom"
	"github.com/milk9111/slicer/physics"
	"golang.org/x/image/colornames"
)

// DefaultScene is loaded when no scene is named.
const DefaultScene = "slice"

// maxAllocs bounds a runaway script.
const maxAllocs = 1 << 20

var ErrNoBodies = errors.New("scene: script does not define bodies")

// palette colors entries that do not set fill.
var palette = []color.RGBA{
	colornames.Tomato,
	colornames.Steelblue,
	colornames.Goldenrod,
	colornames.Mediumseagreen,
	colornames.Orchid,
}

// Defaults fill in material fields a script leaves out.
type Defaults struct {
	Friction   float64
	Elasticity float64
}

// DefaultsFrom takes the material defaults from t.
func DefaultsFrom(t config.Tuning) Defaults {
	return Defaults{Friction: t.Friction, Elasticity: t.Elasticity}
}

type Scene struct {
	Name   string
	Bodies []physics.BodySpec
}

// Load runs the named script.
func Load(name string, width, height float64, d Defaults) (Scene, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultScene
	}
	src, err := LoadScript(name)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: load %s: %w", name, err)
	}
	return Parse(name, src, width, height, d)
}

// Parse runs src and converts its bodies array.
func Parse(name string, src []byte, width, height float64, d Defaults) (Scene, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	script.SetMaxAllocs(maxAllocs)
	_ = script.Add("width", width)
	_ = script.Add("height", height)

	compiled, err := script.Run()
	if err != nil {
		return Scene{}, fmt.Errorf("scene: run %s: %w", name, err)
	}
	if !compiled.IsDefined("bodies") {
		return Scene{}, fmt.Errorf("%w: %s", ErrNoBodies, name)
	}
	entries, ok := compiled.Get("bodies").Value().([]interface{})
	if !ok {
		return Scene{}, fmt.Errorf("scene: %s: bodies must be an array", name)
	}

	sc := Scene{Name: name, Bodies: make([]physics.BodySpec, 0, len(entries))}
	for i, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			return Scene{}, fmt.Errorf("scene: %s: body %d is not a map", name, i)
		}
		spec, err := bodySpec(entry, i, d)
		if err != nil {
			return Scene{}, fmt.Errorf("scene: %s: body %d: %w", name, i, err)
		}
		sc.Bodies = append(sc.Bodies, spec)
	}
	return sc, nil
}

// Populate adds every body of sc to w. Bodies that fail are logged by the
// caller through the returned error; the rest are still added.
func Populate(w *physics.World, sc Scene) error {
	var errs []error
	for i, spec := range sc.Bodies {
		if _, err := w.Add(spec); err != nil {
			errs = append(errs, fmt.Errorf("scene: %s: body %d: %w", sc.Name, i, err))
		}
	}
	return errors.Join(errs...)
}

func bodySpec(entry map[string]interface{}, index int, d Defaults) (physics.BodySpec, error) {
	kind, _ := entry["kind"].(string)
	var poly geom.Polygon
	var err error
	switch strings.ToLower(kind) {
	case "box", "":
		poly, err = boxPolygon(entry)
	case "regular":
		poly, err = regularPolygon(entry)
	case "polygon":
		poly, err = pointsPolygon(entry["points"])
	default:
		return physics.BodySpec{}, fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return physics.BodySpec{}, err
	}

	fill := palette[index%len(palette)]
	mat := component.Material{
		Fill:       color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: fill.A},
		Friction:   d.Friction,
		Elasticity: d.Elasticity,
	}
	if s, ok := entry["fill"].(string); ok {
		c, err := config.ParseColor(s)
		if err != nil {
			return physics.BodySpec{}, err
		}
		mat.Fill = c
	}
	if v, ok := entry["friction"]; ok {
		if mat.Friction, ok = toFloat(v); !ok {
			return physics.BodySpec{}, fmt.Errorf("friction must be a number")
		}
	}
	if v, ok := entry["elasticity"]; ok {
		if mat.Elasticity, ok = toFloat(v); !ok {
			return physics.BodySpec{}, fmt.Errorf("elasticity must be a number")
		}
	}
	static, _ := entry["static"].(bool)
	return physics.BodySpec{Polygon: poly, Material: mat, Static: static}, nil
}

func boxPolygon(entry map[string]interface{}) (geom.Polygon, error) {
	v, err := numbers(entry, "x", "y", "w", "h")
	if err != nil {
		return nil, err
	}
	x, y, w, h := v[0], v[1], v[2]/2, v[3]/2
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("box size must be positive")
	}
	return geom.Polygon{
		{X: x - w, Y: y - h}, {X: x + w, Y: y - h},
		{X: x + w, Y: y + h}, {X: x - w, Y: y + h},
	}, nil
}

func regularPolygon(entry map[string]interface{}) (geom.Polygon, error) {
	v, err := numbers(entry, "x", "y", "radius", "sides")
	if err != nil {
		return nil, err
	}
	x, y, r, sides := v[0], v[1], v[2], int(v[3])
	if sides < 3 || r <= 0 {
		return nil, fmt.Errorf("regular polygon needs radius > 0 and sides >= 3")
	}
	rot, _ := toFloat(entry["rotation"])
	poly := make(geom.Polygon, sides)
	for i := range poly {
		a := rot + 2*math.Pi*float64(i)/float64(sides)
		poly[i] = cp.Vector{X: x + r*math.Cos(a), Y: y + r*math.Sin(a)}
	}
	return poly, nil
}

func pointsPolygon(raw interface{}) (geom.Polygon, error) {
	points, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("points must be an array")
	}
	poly := make(geom.Polygon, 0, len(points))
	for i, p := range points {
		pair, ok := p.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("point %d must be [x, y]", i)
		}
		x, okX := toFloat(pair[0])
		y, okY := toFloat(pair[1])
		if !okX || !okY {
			return nil, fmt.Errorf("point %d must be numeric", i)
		}
		poly = append(poly, cp.Vector{X: x, Y: y})
	}
	return poly, nil
}

func numbers(entry map[string]interface{}, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := toFloat(entry[k])
		if !ok {
			return nil, fmt.Errorf("%s must be a number", k)
		}
		out[i] = v
	}
	return out, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
