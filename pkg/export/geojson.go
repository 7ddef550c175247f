// Package export serializes converted geometries as GeoJSON features.
package export

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

// Feature wraps a geometry with its object type tag and property map.
func Feature(g geom.Geometry, objectType string, properties map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(Geometry(g))
	f.SetProperty("object_type", objectType)
	for k, v := range properties {
		f.SetProperty(k, v)
	}
	return f
}

// Geometry converts a geometry variant into its GeoJSON counterpart.
// Collections encode the anchor as their leading point geometry.
func Geometry(g geom.Geometry) *geojson.Geometry {
	switch v := g.(type) {
	case geom.Point:
		return geojson.NewPointGeometry(coord(v.Position))
	case geom.LineString:
		return geojson.NewLineStringGeometry(coords(v.Points))
	case geom.Polygon:
		return geojson.NewPolygonGeometry([][][]float64{coords(v.Ring)})
	case geom.Collection:
		members := make([]*geojson.Geometry, 0, len(v.Geometries)+1)
		members = append(members, geojson.NewPointGeometry(coord(v.Anchor)))
		for _, sub := range v.Geometries {
			members = append(members, Geometry(sub))
		}
		return geojson.NewCollectionGeometry(members...)
	default:
		return nil
	}
}

// WriteFile writes the feature collection as indented JSON. An empty
// path writes to stdout.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("export: marshal: %w", err)
	}
	if path == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func coord(p geom.Point3D) []float64 {
	return []float64{p.X, p.Y, p.Z}
}

func coords(points []geom.Point3D) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = coord(p)
	}
	return out
}
