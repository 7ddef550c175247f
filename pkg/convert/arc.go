// Package convert turns DXF entities into discrete geometries:
// arc tessellation, bulge-arc reconstruction, per-kind point
// extraction and recursive block-reference expansion.
package convert

import (
	"math"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

// DefaultSpacing is the target distance between consecutive samples
// when an arc is tessellated for line-string output, in drawing units.
const DefaultSpacing = 0.2

// ArcSpec describes a circular arc. Angles are in radians,
// counterclockwise from the positive X axis.
type ArcSpec struct {
	Center     geom.Point3D
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// Sweep returns the effective angular extent. An end angle below the
// start angle wraps around, so the result is never negative.
func (a ArcSpec) Sweep() float64 {
	sweep := a.EndAngle - a.StartAngle
	if a.EndAngle < a.StartAngle {
		sweep += 2 * math.Pi
	}
	return sweep
}

// Length returns the arc length radius * sweep.
func (a ArcSpec) Length() float64 {
	return a.Radius * a.Sweep()
}

// Tessellate samples the arc into an ordered point sequence. With
// numPoints > 0 that many angles are sampled, evenly spaced and
// inclusive of both endpoints. Otherwise, with spacing > 0, the count
// is derived as floor(length/spacing) + 1. With neither, the result
// is empty. A zero-length sweep yields coincident samples; that is
// degenerate output, not an error.
func Tessellate(arc ArcSpec, numPoints int, spacing float64) []geom.Point3D {
	if numPoints <= 0 {
		if spacing <= 0 {
			return nil
		}
		numPoints = int(arc.Length()/spacing) + 1
	}

	start := arc.StartAngle
	end := arc.StartAngle + arc.Sweep()

	points := make([]geom.Point3D, 0, numPoints)
	for _, angle := range linspace(start, end, numPoints) {
		points = append(points, geom.Point3D{
			X: arc.Center.X + arc.Radius*math.Cos(angle),
			Y: arc.Center.Y + arc.Radius*math.Sin(angle),
			Z: arc.Center.Z,
		})
	}
	return points
}

// linspace returns n values evenly spaced across [lo, hi], inclusive
// of both bounds. n == 1 yields just lo.
func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := 0; i < n-1; i++ {
		out[i] = lo + float64(i)*step
	}
	// Land exactly on the bound regardless of rounding.
	out[n-1] = hi
	return out
}
