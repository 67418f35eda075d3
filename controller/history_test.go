package controller

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
)

func pt(x float64, at time.Time) StrokePoint {
	return StrokePoint{Pos: cp.Vector{X: x}, At: at}
}

func TestStrokeHistoryEviction(t *testing.T) {
	const age = 500 * time.Millisecond
	h := NewStrokeHistory(age)
	h.Begin(pt(0, ms(0)))
	h.Append(pt(1, ms(100)))
	h.Append(pt(2, ms(200)))
	h.End()
	h.Begin(pt(10, ms(400)))
	h.Append(pt(11, ms(450)))
	h.End()

	cases := []struct {
		name    string
		now     time.Time
		entries int
		points  int
	}{
		{"all_fresh", ms(500), 2, 5},
		{"exactly_at_limit", ms(600), 2, 4},
		{"first_point_gone", ms(601), 2, 3},
		{"first_entry_gone", ms(701), 1, 2},
		{"everything_gone", ms(951), 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h.Evict(c.now)
			strokes := h.Strokes()
			if len(strokes) != c.entries {
				t.Fatalf("expected %d entries, got %d", c.entries, len(strokes))
			}
			n := 0
			for _, s := range strokes {
				for _, p := range s {
					n++
					if c.now.After(p.At.Add(age)) {
						t.Fatalf("point from %v still retained at %v", p.At, c.now)
					}
				}
			}
			if n != c.points {
				t.Fatalf("expected %d points, got %d", c.points, n)
			}
		})
	}
}

func TestStrokeHistoryRelistsActiveEntry(t *testing.T) {
	h := NewStrokeHistory(100 * time.Millisecond)
	h.Begin(pt(0, ms(0)))
	h.Evict(ms(200))
	if h.Len() != 0 {
		t.Fatalf("expected empty history")
	}
	h.Append(pt(1, ms(210)))
	if h.Len() != 1 {
		t.Fatalf("still-drawn stroke should reappear, got %d entries", h.Len())
	}
	h.End()
	h.Append(pt(2, ms(220)))
	if h.Len() != 2 {
		t.Fatalf("append after End should start a new entry, got %d", h.Len())
	}
}

func TestStrokeHistoryFade(t *testing.T) {
	h := NewStrokeHistory(500 * time.Millisecond)
	h.Begin(pt(0, ms(0)))
	h.Append(pt(1, ms(250)))
	h.Append(pt(2, ms(500)))

	segs := h.Segments(ms(500))
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	// Alpha uses the newer endpoint of each segment.
	if math.Abs(segs[0].Alpha-0.5) > 1e-9 {
		t.Fatalf("first segment alpha = %f, want 0.5", segs[0].Alpha)
	}
	if math.Abs(segs[1].Alpha-1) > 1e-9 {
		t.Fatalf("second segment alpha = %f, want 1", segs[1].Alpha)
	}

	segs = h.Segments(ms(800))
	if segs[0].Alpha != 0 {
		t.Fatalf("expired segment alpha = %f, want 0", segs[0].Alpha)
	}
}

func TestControllerTickEvicts(t *testing.T) {
	sim := newFakeSim()
	cfg := DefaultConfig()
	cfg.StrokeAge = 100 * time.Millisecond
	c := New(sim, nil, cfg)

	c.PointerDown(cp.Vector{X: 1, Y: 1}, ms(0))
	c.PointerMove(cp.Vector{X: 5, Y: 1}, ms(20))
	c.PointerUp(cp.Vector{X: 9, Y: 1}, ms(40))

	c.Tick(ms(100))
	if c.History().Len() != 1 {
		t.Fatalf("expected stroke to be retained")
	}
	c.Tick(ms(141))
	if c.History().Len() != 0 {
		t.Fatalf("expected stroke to be evicted")
	}
}
