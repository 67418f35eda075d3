package controller

import (
	"time"

	"github.com/jakecoffman/cp"
)

// DefaultStrokeAge is how long a stroke point stays visible.
const DefaultStrokeAge = 500 * time.Millisecond

// StrokePoint is one sampled pointer position.
type StrokePoint struct {
	Pos cp.Vector
	At  time.Time
}

type stroke struct {
	points []StrokePoint
	listed bool
}

// StrokeHistory keeps recent strokes for fading feedback. It never feeds
// back into the simulation.
type StrokeHistory struct {
	age     time.Duration
	strokes []*stroke
	active  *stroke
}

// NewStrokeHistory creates a history that forgets points older than age.
func NewStrokeHistory(age time.Duration) *StrokeHistory {
	if age <= 0 {
		age = DefaultStrokeAge
	}
	return &StrokeHistory{age: age}
}

// Age returns the eviction threshold.
func (h *StrokeHistory) Age() time.Duration {
	if h == nil {
		return 0
	}
	return h.age
}

// SetAge changes the eviction threshold for subsequent Evict calls.
func (h *StrokeHistory) SetAge(age time.Duration) {
	if h == nil || age <= 0 {
		return
	}
	h.age = age
}

// Begin starts a new entry holding p.
func (h *StrokeHistory) Begin(p StrokePoint) {
	if h == nil {
		return
	}
	h.active = &stroke{}
	h.Append(p)
}

// Append adds p to the current entry. An entry emptied by eviction while
// still being drawn is listed again.
func (h *StrokeHistory) Append(p StrokePoint) {
	if h == nil {
		return
	}
	if h.active == nil {
		h.active = &stroke{}
	}
	h.active.points = append(h.active.points, p)
	if !h.active.listed {
		h.active.listed = true
		h.strokes = append(h.strokes, h.active)
	}
}

// End closes the current entry; the next Append starts a new one.
func (h *StrokeHistory) End() {
	if h == nil {
		return
	}
	h.active = nil
}

// Evict drops every point recorded more than Age before now, then every
// entry left empty.
func (h *StrokeHistory) Evict(now time.Time) {
	if h == nil {
		return
	}
	cutoff := now.Add(-h.age)
	kept := h.strokes[:0]
	for _, s := range h.strokes {
		pts := s.points[:0]
		for _, p := range s.points {
			if !p.At.Before(cutoff) {
				pts = append(pts, p)
			}
		}
		s.points = pts
		if len(s.points) == 0 {
			s.listed = false
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(h.strokes); i++ {
		h.strokes[i] = nil
	}
	h.strokes = kept
}

// Clear forgets everything.
func (h *StrokeHistory) Clear() {
	if h == nil {
		return
	}
	for _, s := range h.strokes {
		s.listed = false
	}
	h.strokes = nil
	h.active = nil
}

// Len returns the number of retained entries.
func (h *StrokeHistory) Len() int {
	if h == nil {
		return 0
	}
	return len(h.strokes)
}

// Strokes returns copies of the retained entries, oldest first.
func (h *StrokeHistory) Strokes() [][]StrokePoint {
	if h == nil {
		return nil
	}
	out := make([][]StrokePoint, 0, len(h.strokes))
	for _, s := range h.strokes {
		out = append(out, append([]StrokePoint(nil), s.points...))
	}
	return out
}

// FadeSegment is one drawable piece of a stroke.
type FadeSegment struct {
	A, B  cp.Vector
	Alpha float64
}

// Segments returns the drawable segments of every entry with two or more
// points. Alpha falls linearly from 1 to 0 as the newer endpoint ages.
func (h *StrokeHistory) Segments(now time.Time) []FadeSegment {
	if h == nil {
		return nil
	}
	cutoff := now.Add(-h.age)
	var out []FadeSegment
	for _, s := range h.strokes {
		for i := 1; i < len(s.points); i++ {
			prev, cur := s.points[i-1], s.points[i]
			newest := cur.At
			if prev.At.After(newest) {
				newest = prev.At
			}
			alpha := float64(newest.Sub(cutoff)) / float64(h.age)
			if alpha < 0 {
				alpha = 0
			}
			if alpha > 1 {
				alpha = 1
			}
			out = append(out, FadeSegment{A: prev.Pos, B: cur.Pos, Alpha: alpha})
		}
	}
	return out
}
