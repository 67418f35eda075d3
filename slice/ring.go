package slice

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
)

// arena holds every vertex seen during one Partition call. Rings refer to
// vertices by arena index, and flag marks intersections that still wait to be
// paired.
type arena struct {
	nodes []cp.Vector
	flag  []bool
}

func newArena(p geom.Polygon) (*arena, []int) {
	a := &arena{
		nodes: make([]cp.Vector, 0, len(p)*2),
		flag:  make([]bool, 0, len(p)*2),
	}
	ring := make([]int, len(p))
	for i, v := range p {
		ring[i] = a.add(v, false)
	}
	return a, ring
}

func (a *arena) add(v cp.Vector, flagged bool) int {
	a.nodes = append(a.nodes, v)
	a.flag = append(a.flag, flagged)
	return len(a.nodes) - 1
}

func (a *arena) polygon(ring []int) geom.Polygon {
	out := make(geom.Polygon, len(ring))
	for i, id := range ring {
		out[i] = a.nodes[id]
	}
	return out
}

// nextFlagged walks forward from position pos and returns the position of the
// first flagged node, or -1 when none is found within one lap.
func (a *arena) nextFlagged(ring []int, pos int) int {
	n := len(ring)
	for step := 1; step < n; step++ {
		i := (pos + step) % n
		if a.flag[ring[i]] {
			return i
		}
	}
	return -1
}

func indexOf(ring []int, id int) int {
	for i, v := range ring {
		if v == id {
			return i
		}
	}
	return -1
}

// span returns ring[from..to] inclusive, wrapping past the end.
func span(ring []int, from, to int) []int {
	n := len(ring)
	if to < from {
		to += n
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, ring[i%n])
	}
	return out
}

func insertAt(ring []int, pos, id int) []int {
	ring = append(ring, 0)
	copy(ring[pos+1:], ring[pos:])
	ring[pos] = id
	return ring
}

// resolution is the outcome of trying to close one sub-loop from a pair of
// intersections. When resolved is false the pair could not be classified.
type resolution struct {
	resolved bool
	loop     []int
	rest     []int
	first    int
	second   int
}

// resolvePair tries i0 then i1 as the walk origin. A pair bounds a closed
// sub-loop when the walk meets the other intersection before any other
// flagged node.
func (a *arena) resolvePair(ring []int, i0, i1 int) resolution {
	for _, pair := range [2][2]int{{i0, i1}, {i1, i0}} {
		from := indexOf(ring, pair[0])
		to := indexOf(ring, pair[1])
		if from < 0 || to < 0 {
			continue
		}
		if a.nextFlagged(ring, from) != to {
			continue
		}
		return resolution{
			resolved: true,
			loop:     span(ring, from, to),
			rest:     span(ring, to, from),
			first:    pair[0],
			second:   pair[1],
		}
	}
	return resolution{}
}
