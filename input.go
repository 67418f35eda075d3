package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
)

// Pointer is the primary pointer for one frame: the left mouse button or
// the first touch.
type Pointer struct {
	Pos          cp.Vector
	Pressed      bool
	JustPressed  bool
	JustReleased bool

	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

func NewPointer() *Pointer {
	return &Pointer{}
}

// Update polls the mouse and touch screen.
func (p *Pointer) Update() {
	p.JustPressed = false
	p.JustReleased = false

	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			x, y := inpututil.TouchPositionInPreviousTick(p.touch)
			p.Pos = cp.Vector{X: float64(x), Y: float64(y)}
			p.Pressed = false
			p.JustReleased = true
			p.touching = false
			return
		}
		x, y := ebiten.TouchPosition(p.touch)
		p.Pos = cp.Vector{X: float64(x), Y: float64(y)}
		return
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 && !p.Pressed {
		p.touch = p.touchIDs[0]
		p.touching = true
		x, y := ebiten.TouchPosition(p.touch)
		p.Pos = cp.Vector{X: float64(x), Y: float64(y)}
		p.Pressed = true
		p.JustPressed = true
		return
	}

	mx, my := ebiten.CursorPosition()
	p.Pos = cp.Vector{X: float64(mx), Y: float64(my)}
	p.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	p.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
