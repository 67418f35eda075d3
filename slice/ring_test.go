package slice

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
)

func TestSpanWraps(t *testing.T) {
	ring := []int{10, 11, 12, 13, 14}
	cases := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"forward", 1, 3, []int{11, 12, 13}},
		{"wrap", 3, 1, []int{13, 14, 10, 11}},
		{"full_lap_end", 4, 0, []int{14, 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := span(ring, c.from, c.to)
			if len(got) != len(c.want) {
				t.Fatalf("span(%d,%d) = %v, want %v", c.from, c.to, got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("span(%d,%d) = %v, want %v", c.from, c.to, got, c.want)
				}
			}
		})
	}
}

func TestInsertAtEnd(t *testing.T) {
	ring := insertAt([]int{0, 1, 2}, 3, 9)
	if len(ring) != 4 || ring[3] != 9 {
		t.Fatalf("unexpected ring %v", ring)
	}
	ring = insertAt(ring, 1, 7)
	want := []int{0, 7, 1, 2, 9}
	for i := range want {
		if ring[i] != want[i] {
			t.Fatalf("got %v want %v", ring, want)
		}
	}
}

func TestResolvePairSwapsOrigin(t *testing.T) {
	a, ring := newArena(geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	i0 := a.add(cp.Vector{X: 5, Y: 0}, true)
	i2 := a.add(cp.Vector{X: 10, Y: 5}, true)
	i1 := a.add(cp.Vector{X: 0, Y: 5}, true)
	ring = insertAt(ring, 1, i0)
	ring = insertAt(ring, 3, i2)
	ring = append(ring, i1)

	// From i0 the walk meets i2 first, so only i1 can be the origin.
	res := a.resolvePair(ring, i0, i1)
	if !res.resolved {
		t.Fatalf("expected pair to resolve")
	}
	if res.first != i1 || res.second != i0 {
		t.Fatalf("expected walk origin i1, got first=%d second=%d", res.first, res.second)
	}
	if len(res.loop) != 3 || len(res.rest) != 6 {
		t.Fatalf("unexpected split sizes loop=%v rest=%v", res.loop, res.rest)
	}
}

// Interleaved flags model a self-touching cut: every candidate pair has a
// foreign intersection on both arcs. The heuristic cannot classify this
// and must report it instead of guessing. Whether a stronger pairing rule
// could split such rings is still open.
func TestResolvePairInterleavedFlagsIsUnresolved(t *testing.T) {
	a := &arena{}
	var ring []int
	ids := map[string]int{}
	layout := []struct {
		name string
		flag bool
	}{
		{"i0", true}, {"x", false}, {"i2", true}, {"y", false},
		{"i1", true}, {"z", false}, {"i3", true}, {"w", false},
	}
	for k, v := range layout {
		id := a.add(cp.Vector{X: float64(k), Y: float64(k * k)}, v.flag)
		ids[v.name] = id
		ring = append(ring, id)
	}

	pending := []int{ids["i0"], ids["i1"], ids["i2"], ids["i3"]}
	if res := a.resolvePair(ring, pending[0], pending[1]); res.resolved {
		t.Fatalf("expected first pair unresolved, got %+v", res)
	}
	reverse(pending)
	if res := a.resolvePair(ring, pending[0], pending[1]); res.resolved {
		t.Fatalf("expected reversed pair unresolved, got %+v", res)
	}
}

func TestUnresolvedWrapsSentinel(t *testing.T) {
	u := Unresolved{Segment: 2, Pending: []cp.Vector{{X: 1}, {X: 2}}}
	var err error = u
	if !errors.Is(err, ErrUnresolvedTopology) {
		t.Fatalf("expected Unresolved to wrap ErrUnresolvedTopology")
	}
	if err.Error() == "" {
		t.Fatalf("expected message")
	}
}
