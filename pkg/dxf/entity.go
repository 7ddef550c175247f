// Package dxf reads DXF drawings into a closed set of entity variants
// and provides layer/color/block based querying over the modelspace.
package dxf

import "github.com/eraschle/dxf2obj/pkg/geom"

// EntityKind enumerates the entity variants the reader understands.
type EntityKind int

const (
	EntityLine       EntityKind = iota // straight segment
	EntityArc                          // circular arc
	EntityCircle                       // full circle
	EntityPolyline                     // heavy polyline (VERTEX/SEQEND form)
	EntityLWPolyline                   // lightweight polyline
	EntityInsert                       // block reference
	EntityHatch                        // fill region, carried but not converted
	EntityUnknown                      // anything else, carried for diagnostics
)

func (k EntityKind) String() string {
	switch k {
	case EntityLine:
		return "LINE"
	case EntityArc:
		return "ARC"
	case EntityCircle:
		return "CIRCLE"
	case EntityPolyline:
		return "POLYLINE"
	case EntityLWPolyline:
		return "LWPOLYLINE"
	case EntityInsert:
		return "INSERT"
	case EntityHatch:
		return "HATCH"
	default:
		return "unknown"
	}
}

// Entity is one drawing primitive: common attributes plus a
// kind-specific payload.
type Entity struct {
	Kind  EntityKind
	Layer string
	Color int        // ACI color code; 256 = BYLAYER, 0 = BYBLOCK
	RGB   *[3]uint8  // true color (group 420), if present
	Data  EntityData
}

// EntityData is the interface for kind-specific entity payloads.
type EntityData interface {
	entityData() // marker method restricting implementations to this package
}

// LineData holds the two endpoints of a straight segment.
type LineData struct {
	Start, End geom.Point3D
}

func (LineData) entityData() {}

// ArcData holds a circular arc. Angles are in degrees, as stored
// in the DXF stream.
type ArcData struct {
	Center     geom.Point3D
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (ArcData) entityData() {}

// CircleData holds a full circle.
type CircleData struct {
	Center geom.Point3D
	Radius float64
}

func (CircleData) entityData() {}

// Vertex is one polyline vertex. Bulge encodes an implicit arc to the
// next vertex: tan(included_angle/4), sign selecting the arc side;
// 0 means a straight segment.
type Vertex struct {
	X, Y, Z float64
	Bulge   float64
}

// Point returns the vertex position as a point.
func (v Vertex) Point() geom.Point3D {
	return geom.Point3D{X: v.X, Y: v.Y, Z: v.Z}
}

// PolylineData holds a heavy polyline's vertex sequence.
type PolylineData struct {
	Vertices []Vertex
	Closed   bool
}

func (PolylineData) entityData() {}

// LWPolylineData holds a lightweight polyline's vertex sequence.
// Vertices are planar; Z is always 0.
type LWPolylineData struct {
	Vertices []Vertex
	Closed   bool
}

func (LWPolylineData) entityData() {}

// InsertData holds a block reference.
type InsertData struct {
	Block    string
	Insert   geom.Point3D
	Scale    geom.Point3D
	Rotation float64 // degrees
}

func (InsertData) entityData() {}

// HatchData is an intentionally empty payload: hatches are recognized
// but converted elsewhere.
type HatchData struct{}

func (HatchData) entityData() {}

// UnknownData carries the DXF type name of an unrecognized entity.
type UnknownData struct {
	Type string
}

func (UnknownData) entityData() {}

// PolylineVertices returns the vertex sequence of a polyline-like
// entity and whether it is closed. ok is false for any other kind.
func (e *Entity) PolylineVertices() (verts []Vertex, closed, ok bool) {
	switch d := e.Data.(type) {
	case PolylineData:
		return d.Vertices, d.Closed, true
	case LWPolylineData:
		return d.Vertices, d.Closed, true
	default:
		return nil, false, false
	}
}
