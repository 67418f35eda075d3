package render

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/controller"
)

// History draws recent strokes, fading each segment by age.
func (r *Renderer) History(screen *ebiten.Image, h *controller.StrokeHistory, now time.Time) {
	if r == nil || screen == nil {
		return
	}
	for _, seg := range h.Segments(now) {
		if seg.Alpha <= 0 {
			continue
		}
		line(screen, seg.A, seg.B, strokeWidth, fade(r.Colors.Stroke.NRGBA, seg.Alpha))
	}
}

// Preview draws the pending single-mode cut from the first stroke point to
// the pointer.
func (r *Renderer) Preview(screen *ebiten.Image, c *controller.Controller, pointer cp.Vector) {
	if r == nil || screen == nil || c == nil {
		return
	}
	if c.State() != controller.Slicing || c.Config().Mode != controller.ModeSingle {
		return
	}
	stroke := c.Stroke()
	if len(stroke) == 0 {
		return
	}
	line(screen, stroke[0].Pos, pointer, 1, r.Colors.Preview.NRGBA)
}

func line(screen *ebiten.Image, a, b cp.Vector, width float32, c color.Color) {
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * alpha)
	return c
}
