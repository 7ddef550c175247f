package main

import (
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sirupsen/logrus"

	"github.com/eraschle/dxf2obj/pkg/config"
	"github.com/eraschle/dxf2obj/pkg/convert"
	"github.com/eraschle/dxf2obj/pkg/dxf"
	"github.com/eraschle/dxf2obj/pkg/export"
	"github.com/eraschle/dxf2obj/pkg/geom"
	"github.com/eraschle/dxf2obj/pkg/surface"
)

var log = logrus.WithField("pkg", "main")

// run executes the full pipeline: config, drawing, optional surface
// index, conversion, elevation application, GeoJSON output.
func run(drawingPath string) error {
	var cfg *config.Processor
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	drawing := dxf.NewDrawing(drawingPath)
	if err := drawing.Load(); err != nil {
		return err
	}

	var index *surface.Index
	if surfacePath != "" {
		model, err := surface.ParseFile(surfacePath)
		if err != nil {
			return err
		}
		index, err = surface.NewIndex(model.Points)
		if err != nil {
			return fmt.Errorf("surface %s: %w", surfacePath, err)
		}
		log.WithField("points", len(model.Points)).Info("elevation index built")
	}

	factory := convert.NewFactory(drawing)
	fc := geojson.NewFeatureCollection()

	if cfg == nil {
		entities, err := drawing.Entities()
		if err != nil {
			return err
		}
		convertEntities(factory, index, fc, entities, "", nil)
	} else {
		for _, medium := range cfg.Media {
			if err := convertMedium(drawing, factory, index, fc, medium); err != nil {
				return err
			}
		}
	}

	log.WithField("features", len(fc.Features)).Info("conversion finished")
	return export.WriteFile(outputPath, fc)
}

// convertMedium converts every layer pair of a medium's point and
// line object classes.
func convertMedium(drawing *dxf.Drawing, factory *convert.Factory, index *surface.Index, fc *geojson.FeatureCollection, medium config.Medium) error {
	for _, object := range []config.ObjectConfig{medium.Point, medium.Line} {
		if object.Name == "" {
			continue
		}
		for _, pair := range object.Layers {
			entities, err := drawing.Query(pair.Element.Query())
			if err != nil {
				return err
			}
			props := map[string]interface{}{
				"medium":    medium.Name,
				"family":    object.Family,
				"object_id": object.ObjectID,
			}
			convertEntities(factory, index, fc, entities, object.Name, props)
		}
	}
	return nil
}

// convertEntities converts a batch of entities into features. A
// failed or empty conversion skips that entity and continues; the
// document as a whole never aborts on a single primitive.
func convertEntities(factory *convert.Factory, index *surface.Index, fc *geojson.FeatureCollection, entities []*dxf.Entity, objectType string, props map[string]interface{}) {
	for _, e := range entities {
		g, err := factory.Convert(e)
		if err != nil {
			log.WithError(err).WithField("kind", e.Kind.String()).Warn("entity conversion failed")
			continue
		}
		if g == nil {
			continue
		}
		if index != nil {
			g = applyElevation(g, index)
		}
		name := objectType
		if name == "" {
			name = e.Kind.String()
		}
		feature := export.Feature(g, name, props)
		feature.SetProperty("layer", e.Layer)
		fc.AddFeature(feature)
	}
}

// applyElevation rewrites every Z coordinate from the elevation
// index. Points with no elevation sample in range keep their Z.
func applyElevation(g geom.Geometry, index *surface.Index) geom.Geometry {
	misses := 0
	result := geom.MapPoints(g, func(p geom.Point3D) geom.Point3D {
		z, err := index.Elevation(p.X, p.Y, maxDistance)
		if err != nil {
			if errors.Is(err, surface.ErrNoElevation) {
				misses++
				return p
			}
			return p
		}
		return p.WithZ(z)
	})
	if misses > 0 {
		log.WithField("points", misses).Warn("no elevation within search distance, keeping original Z")
	}
	return result
}
