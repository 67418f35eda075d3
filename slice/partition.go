// Package slice partitions simple polygons along cutting paths.
package slice

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
)

var (
	// ErrDegenerateInput means the polygon failed the simplicity or
	// minimum-vertex precondition and was returned untouched.
	ErrDegenerateInput = errors.New("slice: degenerate input polygon")
	// ErrNoCrossing means no segment of the path crossed the boundary twice.
	ErrNoCrossing = errors.New("slice: path does not cross polygon")
	// ErrDegenerateFragment means a produced loop had fewer than three
	// distinct vertices, so the split was discarded.
	ErrDegenerateFragment = errors.New("slice: degenerate fragment")
	// ErrUnresolvedTopology means the pairing step could not classify a pair
	// of intersections and the segment was abandoned.
	ErrUnresolvedTopology = errors.New("slice: unresolved cut topology")
)

// Options tune a Partition call.
type Options struct {
	// Epsilon merges intersection points closer than this distance.
	Epsilon float64
}

// DefaultOptions returns Options with the kernel epsilon.
func DefaultOptions() Options {
	return Options{Epsilon: geom.Epsilon}
}

// Unresolved describes a segment whose intersections could not be paired.
type Unresolved struct {
	Segment int
	Cut     geom.Segment
	Pending []cp.Vector
}

func (u Unresolved) Error() string {
	return fmt.Sprintf("%v: segment %d left %d intersections unpaired", ErrUnresolvedTopology, u.Segment, len(u.Pending))
}

func (u Unresolved) Unwrap() error {
	return ErrUnresolvedTopology
}

// Result is the outcome of Partition. Polygons always holds at least the
// input polygon. Err explains a no-op; Unresolved lists segments abandoned by
// the pairing step, whether or not other segments split the polygon.
type Result struct {
	Polygons   []geom.Polygon
	Err        error
	Unresolved []Unresolved
}

// Split reports whether the polygon was cut into two or more pieces.
func (r Result) Split() bool {
	return len(r.Polygons) > 1
}

// Partition cuts poly along every segment of path in order. Each segment
// only cuts the current working ring; loops extracted by earlier segments
// are final.
func Partition(poly geom.Polygon, path geom.Path, opts Options) Result {
	eps := opts.Epsilon
	if eps <= 0 {
		eps = geom.Epsilon
	}

	passthrough := func(err error) Result {
		return Result{Polygons: []geom.Polygon{poly.Clone()}, Err: err}
	}

	if !poly.Valid(eps) {
		return passthrough(ErrDegenerateInput)
	}

	a, ring := newArena(poly)
	var loops [][]int
	var unresolved []Unresolved

	for si, seg := range path {
		if seg.Degenerate() || len(ring) < 3 {
			continue
		}

		current := a.polygon(ring)
		if current.Contains(seg.A, eps) || current.Contains(seg.B, eps) {
			continue
		}

		var pending []int
		ring, pending = a.insertIntersections(ring, seg, eps)
		if len(pending) < 2 {
			a.clear(pending)
			continue
		}

		sort.SliceStable(pending, func(i, j int) bool {
			return geom.DistanceAlong(seg.A, a.nodes[pending[i]]) < geom.DistanceAlong(seg.A, a.nodes[pending[j]])
		})

		retried := false
		for len(pending) >= 2 {
			res := a.resolvePair(ring, pending[0], pending[1])
			if res.resolved {
				loops = append(loops, res.loop)
				ring = res.rest
				a.flag[res.first] = false
				a.flag[res.second] = false
				pending = pending[2:]
				retried = false
				continue
			}
			if retried {
				u := Unresolved{Segment: si, Cut: seg}
				for _, id := range pending {
					u.Pending = append(u.Pending, a.nodes[id])
				}
				unresolved = append(unresolved, u)
				break
			}
			retried = true
			reverse(pending)
		}
		a.clear(pending)
	}

	if len(loops) == 0 {
		res := passthrough(ErrNoCrossing)
		if len(unresolved) > 0 {
			res.Err = ErrUnresolvedTopology
		}
		res.Unresolved = unresolved
		return res
	}

	loops = append(loops, ring)
	out := make([]geom.Polygon, 0, len(loops))
	for _, loop := range loops {
		p := a.polygon(loop).Dedupe(eps)
		if len(p) < 3 || p.Area() <= eps {
			res := passthrough(ErrDegenerateFragment)
			res.Unresolved = unresolved
			return res
		}
		out = append(out, p)
	}

	return Result{Polygons: out, Unresolved: unresolved}
}

// Slice cuts poly with a single segment.
func Slice(poly geom.Polygon, seg geom.Segment, opts Options) Result {
	return Partition(poly, geom.Path{seg}, opts)
}

// insertIntersections splices every crossing of seg into ring right after the
// start vertex of the edge it lies on. Crossings within eps of the first or
// last accepted crossing are dropped so a cut through a shared vertex is
// counted once.
func (a *arena) insertIntersections(ring []int, seg geom.Segment, eps float64) ([]int, []int) {
	var accepted []int
	for i := 0; i < len(ring); i++ {
		p0 := a.nodes[ring[i]]
		p1 := a.nodes[ring[(i+1)%len(ring)]]
		p, ok := geom.SegmentIntersection(seg.A, seg.B, p0, p1, eps)
		if !ok {
			continue
		}
		if len(accepted) > 0 {
			first := a.nodes[accepted[0]]
			last := a.nodes[accepted[len(accepted)-1]]
			if p.Distance(first) <= eps || p.Distance(last) <= eps {
				continue
			}
		}
		id := a.add(p, true)
		accepted = append(accepted, id)
		ring = insertAt(ring, i+1, id)
		i++
	}
	return ring, accepted
}

func (a *arena) clear(ids []int) {
	for _, id := range ids {
		a.flag[id] = false
	}
}

func reverse(ids []int) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
