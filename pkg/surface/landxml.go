// Package surface parses LandXML surface models into deduplicated
// elevation point sets and answers elevation queries over them using
// a spatial index with inverse-distance weighting.
package surface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

var log = logrus.WithField("pkg", "surface")

// Model is a parsed surface: the deduplicated set of elevation points.
// Point order carries no meaning; uniqueness does.
type Model struct {
	Points []geom.Point3D
}

// ParseFile reads and parses a LandXML surface document.
func ParseFile(path string) (*Model, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("surface: parse %s: %w", path, err)
	}
	return Parse(doc)
}

// Parse extracts elevation points from a LandXML document. The
// explicit surface point list (Pnts/P) is preferred; only when it
// yields nothing does parsing fall back to the triangulated face
// list (Faces/F). Malformed entries are skipped, not fatal.
func Parse(doc *etree.Document) (*Model, error) {
	points := surfacePoints(doc)
	if len(points) == 0 {
		points = tinFacePoints(doc, surfacePointLookup(doc))
	}
	return &Model{Points: points}, nil
}

// surfacePoints extracts and deduplicates the explicit point list.
func surfacePoints(doc *etree.Document) []geom.Point3D {
	var points []geom.Point3D
	seen := make(map[geom.Point3D]struct{})
	for _, elem := range doc.FindElements("//Pnts/P") {
		p, err := parsePoint(elem.Text())
		if err != nil {
			log.WithField("text", elem.Text()).Warn("skipping malformed surface point")
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}
	return points
}

// surfacePointLookup maps 1-based declaration-order indices to points
// for TIN face resolution.
func surfacePointLookup(doc *etree.Document) map[int]geom.Point3D {
	lookup := make(map[int]geom.Point3D)
	for i, elem := range doc.FindElements("//Pnts/P") {
		p, err := parsePoint(elem.Text())
		if err != nil {
			continue
		}
		lookup[i+1] = p
	}
	return lookup
}

// tinFacePoints returns the deduplicated union of all points
// referenced by any triangulated face. Faces referencing unknown
// indices are skipped.
func tinFacePoints(doc *etree.Document, lookup map[int]geom.Point3D) []geom.Point3D {
	var points []geom.Point3D
	seen := make(map[geom.Point3D]struct{})
	for _, elem := range doc.FindElements("//Faces/F") {
		indices, err := parseFace(elem.Text())
		if err != nil {
			log.WithField("text", elem.Text()).Warn("skipping malformed TIN face")
			continue
		}
		for _, idx := range indices {
			p, ok := lookup[idx]
			if !ok {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			points = append(points, p)
		}
	}
	return points
}

// parsePoint reads a coordinate triple from element text, tokenized
// by comma first, else by whitespace. At least three numeric tokens
// are required.
func parsePoint(text string) (geom.Point3D, error) {
	text = strings.TrimSpace(text)
	var tokens []string
	if strings.Contains(text, ",") {
		tokens = strings.Split(text, ",")
	} else {
		tokens = strings.Fields(text)
	}
	if len(tokens) < 3 {
		return geom.Point3D{}, fmt.Errorf("surface: want 3 coordinates, got %d", len(tokens))
	}

	var coords [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(tokens[i]), 64)
		if err != nil {
			return geom.Point3D{}, fmt.Errorf("surface: coordinate %d: %w", i, err)
		}
		coords[i] = v
	}
	return geom.Point3D{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// parseFace reads the 1-based point indices of one face entry.
func parseFace(text string) ([]int, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return nil, fmt.Errorf("surface: empty face entry")
	}
	indices := make([]int, 0, len(fields))
	for _, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("surface: face index %q: %w", f, err)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
