// Package geom defines the discrete geometry types produced by the
// conversion pipeline: a comparable 3D point value type and a closed
// set of geometry variants (point, line string, polygon, collection).
package geom

import "math"

// Point3D is an immutable coordinate triple. It is a plain comparable
// struct so it can serve as a map key for coordinate deduplication.
type Point3D struct {
	X, Y, Z float64
}

// XY returns the planar coordinates.
func (p Point3D) XY() (float64, float64) {
	return p.X, p.Y
}

// DistanceXY returns the planar (Z-ignoring) distance to q.
func (p Point3D) DistanceXY(q Point3D) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// WithZ returns a copy of p with the Z coordinate replaced.
func (p Point3D) WithZ(z float64) Point3D {
	return Point3D{X: p.X, Y: p.Y, Z: z}
}
