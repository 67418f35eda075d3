package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
	"github.com/milk9111/slicer/repro"
	"golang.org/x/image/colornames"
)

const (
	viewWidth  = 800
	viewHeight = 600
	viewMargin = 40
)

var fragmentColors = []color.RGBA{
	colornames.Tomato,
	colornames.Steelblue,
	colornames.Goldenrod,
	colornames.Mediumseagreen,
	colornames.Orchid,
}

type caseView struct {
	c        repro.Case
	outcomes []repro.Outcome

	scale  float64
	offset cp.Vector
}

func runViewer(v *caseView) error {
	v.fit()
	ebiten.SetWindowSize(viewWidth, viewHeight)
	ebiten.SetWindowTitle("slicecheck: " + v.c.Name)
	return ebiten.RunGame(v)
}

// fit scales the case bounds into the window.
func (v *caseView) fit() {
	bb := v.c.GeomPath().Bounds()
	for _, o := range v.outcomes {
		pb := o.Input.Bounds()
		bb = bb.Merge(pb)
	}
	w, h := bb.R-bb.L, bb.T-bb.B
	if w <= 0 || h <= 0 {
		v.scale = 1
		return
	}
	v.scale = math.Min((viewWidth-2*viewMargin)/w, (viewHeight-2*viewMargin)/h)
	v.offset = cp.Vector{X: viewMargin - bb.L*v.scale, Y: viewMargin - bb.B*v.scale}
}

func (v *caseView) project(p cp.Vector) (float32, float32) {
	return float32(p.X*v.scale + v.offset.X), float32(p.Y*v.scale + v.offset.Y)
}

func (v *caseView) Update() error {
	return nil
}

func (v *caseView) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	for _, o := range v.outcomes {
		for i, p := range o.Result.Polygons {
			v.strokePolygon(screen, p, fragmentColors[i%len(fragmentColors)])
		}
	}
	for _, s := range v.c.GeomPath() {
		x0, y0 := v.project(s.A)
		x1, y1 := v.project(s.B)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.White, true)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  bodies: %d", v.c.Name, len(v.outcomes)))
}

func (v *caseView) strokePolygon(screen *ebiten.Image, p geom.Polygon, c color.Color) {
	for i := range p {
		e := p.Edge(i)
		x0, y0 := v.project(e.A)
		x1, y1 := v.project(e.B)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, c, true)
	}
}

func (v *caseView) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewWidth, viewHeight
}
