// Package render draws the slicer world with ebiten.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/slicer/config"
	"github.com/milk9111/slicer/controller"
	"github.com/milk9111/slicer/ecs/component"
	"github.com/milk9111/slicer/geom"
	"github.com/milk9111/slicer/physics"
)

const (
	outlineWidth = 1.5
	strokeWidth  = 3
)

// Renderer draws filled bodies, their outlines and the pointer strokes.
type Renderer struct {
	Colors config.Colors
	path   vector.Path
}

func NewRenderer(colors config.Colors) *Renderer {
	return &Renderer{Colors: colors}
}

// Bodies fills every body with its material color and outlines it.
func (r *Renderer) Bodies(screen *ebiten.Image, w *physics.World) {
	if r == nil || screen == nil || w == nil {
		return
	}
	w.EachBody(func(ref controller.BodyRef, _ component.Body, mat component.Material) {
		poly := w.Vertices(ref)
		if len(poly) < 3 {
			return
		}
		r.polygon(screen, poly, mat.Fill)
		r.outline(screen, poly, r.Colors.Outline.NRGBA)
	})
}

// polygon fills poly. Concave outlines are fine under the non-zero rule.
func (r *Renderer) polygon(screen *ebiten.Image, poly geom.Polygon, c color.NRGBA) {
	r.path.Reset()
	r.path.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, v := range poly[1:] {
		r.path.LineTo(float32(v.X), float32(v.Y))
	}
	r.path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, &r.path, nil, op)
}

func (r *Renderer) outline(screen *ebiten.Image, poly geom.Polygon, c color.Color) {
	for i := range poly {
		e := poly.Edge(i)
		vector.StrokeLine(screen, float32(e.A.X), float32(e.A.Y), float32(e.B.X), float32(e.B.Y), outlineWidth, c, true)
	}
}
