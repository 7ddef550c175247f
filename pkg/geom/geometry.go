package geom

// Kind enumerates the geometry variants.
type Kind int

const (
	KindPoint      Kind = iota // single position
	KindLineString             // ordered point sequence, >= 2 points
	KindPolygon                // closed ring (regular-polygon circle approximation)
	KindCollection             // block expansion: anchor + sub-geometries
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindCollection:
		return "GeometryCollection"
	default:
		return "unknown"
	}
}

// Geometry is the interface for the closed geometry variant set.
type Geometry interface {
	Kind() Kind
	geometry() // marker method restricting implementations to this package
}

// Point is a single position.
type Point struct {
	Position Point3D
}

func (Point) Kind() Kind { return KindPoint }
func (Point) geometry() {}

// LineString is an ordered sequence of at least two points.
type LineString struct {
	Points []Point3D
}

func (LineString) Kind() Kind { return KindLineString }
func (LineString) geometry() {}

// Polygon is a closed ring; the first and last points coincide.
type Polygon struct {
	Ring []Point3D
}

func (Polygon) Kind() Kind { return KindPolygon }
func (Polygon) geometry() {}

// Collection models a block-reference expansion: the anchor is the
// insertion point, the sub-geometries are the resolved block contents.
type Collection struct {
	Anchor     Point3D
	Geometries []Geometry
}

func (Collection) Kind() Kind { return KindCollection }
func (Collection) geometry() {}

// MapPoints returns a copy of g with every coordinate rewritten by f.
// Collections are rebuilt recursively; the anchor is rewritten too.
func MapPoints(g Geometry, f func(Point3D) Point3D) Geometry {
	switch v := g.(type) {
	case Point:
		return Point{Position: f(v.Position)}
	case LineString:
		return LineString{Points: mapAll(v.Points, f)}
	case Polygon:
		return Polygon{Ring: mapAll(v.Ring, f)}
	case Collection:
		subs := make([]Geometry, len(v.Geometries))
		for i, sub := range v.Geometries {
			subs[i] = MapPoints(sub, f)
		}
		return Collection{Anchor: f(v.Anchor), Geometries: subs}
	default:
		return g
	}
}

func mapAll(pts []Point3D, f func(Point3D) Point3D) []Point3D {
	out := make([]Point3D, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}
