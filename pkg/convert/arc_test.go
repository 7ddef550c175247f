package convert

import (
	"math"
	"testing"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       float64
	}{
		{"quarter turn", 0, math.Pi / 2, math.Pi / 2},
		{"half turn", 0, math.Pi, math.Pi},
		{"wraparound", 3 * math.Pi / 2, math.Pi / 2, math.Pi},
		{"zero sweep", math.Pi, math.Pi, 0},
		{"almost full wraparound", 0.1, 0.05, 2*math.Pi - 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc := ArcSpec{Radius: 1, StartAngle: tt.start, EndAngle: tt.end}
			got := arc.Sweep()
			if !almostEqual(got, tt.want) {
				t.Errorf("Sweep() = %g, want %g", got, tt.want)
			}
			if got < 0 {
				t.Errorf("Sweep() = %g, must never be negative", got)
			}
		})
	}
}

func TestTessellateCount(t *testing.T) {
	arc := ArcSpec{
		Center:     geom.Point3D{Z: 2},
		Radius:     1,
		StartAngle: 0,
		EndAngle:   math.Pi / 2,
	}
	for _, n := range []int{2, 5, 17} {
		points := Tessellate(arc, n, 0)
		if len(points) != n {
			t.Errorf("Tessellate(n=%d) produced %d points", n, len(points))
		}
	}
}

func TestTessellateEndpoints(t *testing.T) {
	// End below start: the sweep wraps, so the last sample must land
	// on the normalized end angle.
	arc := ArcSpec{
		Radius:     2,
		StartAngle: 3 * math.Pi / 2,
		EndAngle:   math.Pi / 2,
	}
	points := Tessellate(arc, 9, 0)
	if len(points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(points))
	}

	first := points[0]
	if !almostEqual(first.X, 0) || !almostEqual(first.Y, -2) {
		t.Errorf("first sample = (%g, %g), want (0, -2)", first.X, first.Y)
	}
	last := points[len(points)-1]
	if !almostEqual(last.X, 0) || !almostEqual(last.Y, 2) {
		t.Errorf("last sample = (%g, %g), want (0, 2)", last.X, last.Y)
	}
}

func TestTessellateSpacing(t *testing.T) {
	// Half circle of radius 1: length pi, spacing 0.2 derives
	// floor(pi/0.2) + 1 = 16 samples.
	arc := ArcSpec{Radius: 1, StartAngle: 0, EndAngle: math.Pi}
	points := Tessellate(arc, 0, 0.2)
	if len(points) != 16 {
		t.Errorf("expected 16 points, got %d", len(points))
	}
}

func TestTessellateCarriesZ(t *testing.T) {
	arc := ArcSpec{
		Center:     geom.Point3D{X: 1, Y: 2, Z: 7.5},
		Radius:     3,
		StartAngle: 0,
		EndAngle:   math.Pi,
	}
	for _, p := range Tessellate(arc, 4, 0) {
		if p.Z != 7.5 {
			t.Fatalf("sample Z = %g, want center Z 7.5", p.Z)
		}
	}
}

func TestTessellateDegenerate(t *testing.T) {
	t.Run("no count no spacing", func(t *testing.T) {
		if points := Tessellate(ArcSpec{Radius: 1}, 0, 0); len(points) != 0 {
			t.Errorf("expected empty result, got %d points", len(points))
		}
	})
	t.Run("zero sweep", func(t *testing.T) {
		arc := ArcSpec{Radius: 1, StartAngle: math.Pi, EndAngle: math.Pi}
		points := Tessellate(arc, 2, 0)
		if len(points) != 2 {
			t.Fatalf("expected 2 coincident points, got %d", len(points))
		}
		if points[0] != points[1] {
			t.Errorf("zero sweep samples differ: %v vs %v", points[0], points[1])
		}
	})
}
