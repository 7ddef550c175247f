package convert

import (
	"errors"
	"fmt"
	"math"

	"github.com/eraschle/dxf2obj/pkg/dxf"
	"github.com/eraschle/dxf2obj/pkg/geom"
)

var (
	// ErrNoBulge is returned when a bulge operation runs on a polyline
	// without any bulged vertex. Callers are expected to check
	// HasBulge first.
	ErrNoBulge = errors.New("convert: polyline has no bulge")
	// ErrNotPolyline is returned when a polyline-only resolver is
	// invoked on another entity kind.
	ErrNotPolyline = errors.New("convert: entity is not a polyline")
)

// HasBulge reports whether any vertex of a polyline-like entity
// carries a non-zero bulge factor. It is false for every other
// entity kind.
func HasBulge(e *dxf.Entity) bool {
	verts, _, ok := e.PolylineVertices()
	if !ok {
		return false
	}
	for _, v := range verts {
		if v.Bulge != 0 {
			return true
		}
	}
	return false
}

// FirstBulgeIndex returns the index of the first vertex whose bulge
// factor is non-zero, or ErrNoBulge.
func FirstBulgeIndex(verts []dxf.Vertex) (int, error) {
	for i, v := range verts {
		if v.Bulge != 0 {
			return i, nil
		}
	}
	return 0, ErrNoBulge
}

// BulgeCenterAndDiameter reconstructs the arc implied by the first
// bulged vertex pair of a polyline entity and returns the arc center
// (Z = 0) and the circle diameter. The end vertex wraps to index 0
// when the bulge sits on the last vertex.
func BulgeCenterAndDiameter(e *dxf.Entity) (geom.Point3D, float64, error) {
	verts, _, ok := e.PolylineVertices()
	if !ok {
		return geom.Point3D{}, 0, fmt.Errorf("%w: %s", ErrNotPolyline, e.Kind)
	}
	idx, err := FirstBulgeIndex(verts)
	if err != nil {
		return geom.Point3D{}, 0, err
	}
	start := verts[idx]
	end := verts[(idx+1)%len(verts)]
	center, radius := bulgeArc(start, end, start.Bulge)
	return center, radius * 2, nil
}

// bulgeArc computes the center and radius of the circular arc spanning
// the chord from start to end with the given bulge factor
// (tan(included_angle/4), sign selecting the arc side). Must not be
// called with bulge == 0.
func bulgeArc(start, end dxf.Vertex, bulge float64) (geom.Point3D, float64) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	chord := math.Hypot(dx, dy)
	b := math.Abs(bulge)
	radius := chord * (1 + b*b) / (4 * b)

	// The center sits on the chord's perpendicular bisector, offset by
	// radius minus the sagitta chord*|b|/2. For |bulge| > 1 the offset
	// goes negative, putting the center on the far side of the chord.
	offset := radius - chord*b/2
	if bulge < 0 {
		offset = -offset
	}
	midX := (start.X + end.X) / 2
	midY := (start.Y + end.Y) / 2
	center := geom.Point3D{
		X: midX - offset*dy/chord,
		Y: midY + offset*dx/chord,
	}
	return center, radius
}
