package convert

import (
	"math"

	"github.com/eraschle/dxf2obj/pkg/dxf"
	"github.com/eraschle/dxf2obj/pkg/geom"
)

// ExtractPoints returns the ordered point sequence of an entity: line
// endpoints in stored order, polyline vertices in stored order (Z
// defaults to 0 where the source has none), and arcs sampled at
// DefaultSpacing. Unrecognized kinds yield an empty sequence.
func ExtractPoints(e *dxf.Entity) []geom.Point3D {
	switch d := e.Data.(type) {
	case dxf.LineData:
		return []geom.Point3D{d.Start, d.End}
	case dxf.PolylineData:
		return vertexPoints(d.Vertices)
	case dxf.LWPolylineData:
		return vertexPoints(d.Vertices)
	case dxf.ArcData:
		arc := arcSpec(d)
		return Tessellate(arc, int(arc.Length()/DefaultSpacing), 0)
	default:
		return nil
	}
}

// arcSpec converts the wire-format arc (degrees) into a sampling spec
// (radians).
func arcSpec(d dxf.ArcData) ArcSpec {
	return ArcSpec{
		Center:     d.Center,
		Radius:     d.Radius,
		StartAngle: d.StartAngle * math.Pi / 180,
		EndAngle:   d.EndAngle * math.Pi / 180,
	}
}

func vertexPoints(verts []dxf.Vertex) []geom.Point3D {
	points := make([]geom.Point3D, len(verts))
	for i, v := range verts {
		points[i] = v.Point()
	}
	return points
}
