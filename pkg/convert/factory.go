package convert

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/eraschle/dxf2obj/pkg/dxf"
	"github.com/eraschle/dxf2obj/pkg/geom"
)

var log = logrus.WithField("pkg", "convert")

// ErrCyclicBlock is returned when a block reference expansion would
// recurse into a block that is already on the expansion path.
var ErrCyclicBlock = errors.New("convert: cyclic block reference")

// CircleSegments is the number of boundary samples used for the
// regular-polygon circle approximation: 16 per quadrant, independent
// of radius. The boundary error is bounded by r*(1-cos(pi/64)).
const CircleSegments = 64

// Factory converts DXF entities into geometry variants. Block
// contents are resolved through the drawing source and cached by
// block name; a cache entry is written once and immutable afterward.
// The cache is not synchronized: concurrent conversion requires
// external locking or a pre-warmed cache.
type Factory struct {
	source dxf.Source
	blocks map[string][]*dxf.Entity
}

// NewFactory returns a factory resolving block references via source.
func NewFactory(source dxf.Source) *Factory {
	return &Factory{
		source: source,
		blocks: make(map[string][]*dxf.Entity),
	}
}

// Convert turns one entity into a geometry variant. Unsupported kinds
// (including HATCH, which a separate fill-region pipeline owns)
// produce a nil geometry and a nil error so document conversion can
// continue. A cyclic block reference fails with ErrCyclicBlock.
func (f *Factory) Convert(e *dxf.Entity) (geom.Geometry, error) {
	return f.convert(e, make(map[string]bool))
}

func (f *Factory) convert(e *dxf.Entity, expanding map[string]bool) (geom.Geometry, error) {
	switch d := e.Data.(type) {
	case dxf.HatchData:
		return nil, nil
	case dxf.InsertData:
		return f.convertInsert(e, d, expanding)
	case dxf.CircleData:
		return circlePolygon(d), nil
	case dxf.PolylineData:
		return f.convertPolyline(e, d.Vertices, d.Closed)
	case dxf.LWPolylineData:
		return f.convertPolyline(e, d.Vertices, d.Closed)
	case dxf.LineData, dxf.ArcData:
		return lineString(ExtractPoints(e))
	default:
		log.WithField("kind", e.Kind.String()).Warn("unsupported entity kind")
		return nil, nil
	}
}

// convertInsert expands a block reference into a collection holding
// the anchor position and the recursively converted block contents.
func (f *Factory) convertInsert(e *dxf.Entity, d dxf.InsertData, expanding map[string]bool) (geom.Geometry, error) {
	if expanding[d.Block] {
		return nil, fmt.Errorf("%w: %q", ErrCyclicBlock, d.Block)
	}

	entities, err := f.blockEntities(d.Block)
	if err != nil {
		return nil, err
	}

	expanding[d.Block] = true
	defer delete(expanding, d.Block)

	collection := geom.Collection{Anchor: d.Insert}
	for _, sub := range entities {
		g, err := f.convert(sub, expanding)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", d.Block, err)
		}
		if g == nil {
			continue
		}
		collection.Geometries = append(collection.Geometries, g)
	}
	return collection, nil
}

// blockEntities resolves a block's entity list with get-or-insert
// caching over the drawing source.
func (f *Factory) blockEntities(name string) ([]*dxf.Entity, error) {
	if entities, ok := f.blocks[name]; ok {
		return entities, nil
	}
	entities, err := f.source.Block(name)
	if err != nil {
		return nil, err
	}
	f.blocks[name] = entities
	return entities, nil
}

// convertPolyline builds a line string from the vertex sequence. When
// a vertex carries a bulge, the straight segment to the next vertex
// is replaced by tessellated arc samples, concatenated in original
// vertex order.
func (f *Factory) convertPolyline(e *dxf.Entity, verts []dxf.Vertex, closed bool) (geom.Geometry, error) {
	if !HasBulge(e) {
		return lineString(ExtractPoints(e))
	}
	return lineString(bulgePoints(verts, closed))
}

// bulgePoints expands a bulged vertex sequence segment by segment.
func bulgePoints(verts []dxf.Vertex, closed bool) []geom.Point3D {
	n := len(verts)
	if n < 2 {
		return vertexPoints(verts)
	}
	segments := n - 1
	if closed {
		segments = n
	}

	var points []geom.Point3D
	for i := 0; i < segments; i++ {
		start := verts[i]
		end := verts[(i+1)%n]

		var segment []geom.Point3D
		if start.Bulge != 0 {
			segment = bulgeSegmentPoints(start, end)
		} else {
			segment = []geom.Point3D{start.Point(), end.Point()}
		}
		points = appendJoined(points, segment)
	}
	return points
}

// bulgeSegmentPoints tessellates the arc implied by one bulged vertex
// pair, sampled at DefaultSpacing, endpoints included.
func bulgeSegmentPoints(start, end dxf.Vertex) []geom.Point3D {
	center, radius := bulgeArc(start, end, start.Bulge)
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)

	// Tessellation always walks counterclockwise; a negative bulge
	// means a clockwise arc, so sample the reverse arc and flip it.
	clockwise := start.Bulge < 0
	if clockwise {
		a0, a1 = a1, a0
	}

	arc := ArcSpec{Center: center, Radius: radius, StartAngle: a0, EndAngle: a1}
	numPoints := int(arc.Length() / DefaultSpacing)
	if numPoints < 2 {
		numPoints = 2
	}
	points := Tessellate(arc, numPoints, 0)
	if clockwise {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}

// appendJoined concatenates a segment's points, dropping the leading
// point when it coincides with the running sequence's tail.
func appendJoined(points, segment []geom.Point3D) []geom.Point3D {
	if len(segment) == 0 {
		return points
	}
	if len(points) > 0 && points[len(points)-1] == segment[0] {
		segment = segment[1:]
	}
	return append(points, segment...)
}

// circlePolygon approximates a circle as a closed regular polygon
// with a fixed, deterministic segment count.
func circlePolygon(d dxf.CircleData) geom.Polygon {
	ring := make([]geom.Point3D, 0, CircleSegments+1)
	for i := 0; i < CircleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / CircleSegments
		ring = append(ring, geom.Point3D{
			X: d.Center.X + d.Radius*math.Cos(angle),
			Y: d.Center.Y + d.Radius*math.Sin(angle),
			Z: d.Center.Z,
		})
	}
	ring = append(ring, ring[0])
	return geom.Polygon{Ring: ring}
}

// lineString wraps a point sequence as a geometry, collapsing the
// degenerate cases: one point becomes a Point, none becomes no
// geometry at all.
func lineString(points []geom.Point3D) (geom.Geometry, error) {
	switch len(points) {
	case 0:
		log.Warn("entity produced no points, skipping")
		return nil, nil
	case 1:
		return geom.Point{Position: points[0]}, nil
	default:
		return geom.LineString{Points: points}, nil
	}
}
