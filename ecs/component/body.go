package component

import "github.com/jakecoffman/cp"

// Body stores the Chipmunk2D runtime data of one sliceable polygon.
type Body struct {
	Body   *cp.Body
	Shapes []*cp.Shape
	// Outline is the polygon in body-local coordinates, relative to the
	// center of gravity. Concave bodies carry several convex shapes but a
	// single outline.
	Outline []cp.Vector
	Area    float64
	Static  bool
}

var BodyComponent = NewComponent[Body]()
