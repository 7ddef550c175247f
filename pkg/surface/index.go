package surface

import (
	"errors"
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

var (
	// ErrUninitialized is returned when an index is built from an
	// empty point set.
	ErrUninitialized = errors.New("surface: no elevation points loaded")
	// ErrNoElevation is returned when no elevation point lies within
	// the query's search distance. Callers must not substitute a
	// default elevation.
	ErrNoElevation = errors.New("surface: no elevation point within search distance")
)

// epsilon guards the inverse-distance weights against division by
// zero when a query point coincides with a sample.
const epsilon = 1e-10

// elevationSample adapts one elevation point to the R-tree.
type elevationSample struct {
	point geom.Point3D
	rect  rtreego.Rect
}

func (s *elevationSample) Bounds() rtreego.Rect {
	return s.rect
}

// Index is a static spatial index over a surface model's elevation
// points. It is immutable after construction and safe for concurrent
// read-only queries.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds the index. An empty point set is a construction
// error, not a valid empty index.
func NewIndex(points []geom.Point3D) (*Index, error) {
	if len(points) == 0 {
		return nil, ErrUninitialized
	}
	samples := make([]rtreego.Spatial, len(points))
	for i, p := range points {
		samples[i] = &elevationSample{
			point: p,
			rect:  rtreego.Point{p.X, p.Y}.ToRect(0),
		}
	}
	return &Index{tree: rtreego.NewTree(2, 25, 50, samples...)}, nil
}

// Elevation interpolates the elevation at (x, y) from the samples
// within maxDistance. A single sample's Z is returned verbatim;
// multiple samples are combined by inverse-distance weighting. With
// no sample in range the result is ErrNoElevation.
func (ix *Index) Elevation(x, y, maxDistance float64) (float64, error) {
	if ix == nil || ix.tree == nil {
		return 0, ErrUninitialized
	}

	query := geom.Point3D{X: x, Y: y}
	searchBox := rtreego.Point{x, y}.ToRect(maxDistance)

	type hit struct {
		z        float64
		distance float64
	}
	var hits []hit
	for _, spatial := range ix.tree.SearchIntersect(searchBox) {
		sample := spatial.(*elevationSample)
		d := query.DistanceXY(sample.point)
		if d > maxDistance {
			// The search box is square; trim its corners.
			continue
		}
		hits = append(hits, hit{z: sample.point.Z, distance: d})
	}

	switch len(hits) {
	case 0:
		return 0, fmt.Errorf("%w: (%g, %g) within %g", ErrNoElevation, x, y, maxDistance)
	case 1:
		return hits[0].z, nil
	}

	var weighted, total float64
	for _, h := range hits {
		w := 1 / (h.distance + epsilon)
		weighted += w * h.z
		total += w
	}
	return weighted / total, nil
}

// Nearest returns the sample point closest to (x, y), for diagnostic
// use. It does not honor a search radius.
func (ix *Index) Nearest(x, y float64) (geom.Point3D, error) {
	if ix == nil || ix.tree == nil {
		return geom.Point3D{}, ErrUninitialized
	}
	spatial := ix.tree.NearestNeighbor(rtreego.Point{x, y})
	if spatial == nil {
		return geom.Point3D{}, ErrUninitialized
	}
	return spatial.(*elevationSample).point, nil
}
