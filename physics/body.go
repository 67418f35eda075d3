package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/geom"
)

// minTriangleArea drops slivers the ear clipper emits along nearly
// collinear runs; Chipmunk rejects zero-area polygons.
const minTriangleArea = 1e-6

type builtBody struct {
	body    *cp.Body
	shapes  []*cp.Shape
	outline []cp.Vector
}

// buildBody creates a body whose origin is the centroid of poly. Convex
// polygons get one shape; concave ones get one shape per triangle.
func buildBody(poly geom.Polygon, mass float64, centroid cp.Vector, static bool) (builtBody, error) {
	pieces := convexPieces(poly)
	if len(pieces) == 0 {
		return builtBody{}, fmt.Errorf("%w: no convex decomposition", ErrInvalidPolygon)
	}

	var body *cp.Body
	if static {
		body = cp.NewStaticBody()
	} else {
		area := poly.Area()
		var moment float64
		for _, piece := range pieces {
			m := mass * geom.Polygon(piece).Area() / area
			moment += cp.MomentForPoly(m, len(piece), piece, centroid.Neg(), 0)
		}
		body = cp.NewBody(mass, moment)
	}

	transform := cp.NewTransformTranslate(centroid.Neg())
	shapes := make([]*cp.Shape, 0, len(pieces))
	for _, piece := range pieces {
		shapes = append(shapes, cp.NewPolyShape(body, len(piece), piece, transform, 0))
	}

	outline := make([]cp.Vector, len(poly))
	for i, v := range poly {
		outline[i] = v.Sub(centroid)
	}
	return builtBody{body: body, shapes: shapes, outline: outline}, nil
}

func convexPieces(poly geom.Polygon) [][]cp.Vector {
	if geom.IsConvex(poly) {
		return [][]cp.Vector{poly.Clone()}
	}
	tris := geom.Triangulate(poly)
	pieces := make([][]cp.Vector, 0, len(tris))
	for _, tri := range tris {
		if geom.Polygon(tri[:]).Area() < minTriangleArea {
			continue
		}
		pieces = append(pieces, []cp.Vector{tri[0], tri[1], tri[2]})
	}
	return pieces
}
