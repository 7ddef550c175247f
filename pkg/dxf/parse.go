package dxf

import (
	"fmt"
	"io"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

// Document is the parsed content of a DXF stream: the modelspace
// entities plus the block definitions they may reference.
type Document struct {
	Entities []*Entity
	Blocks   map[string][]*Entity
}

// ParseDocument reads a complete DXF tag stream. Sections other than
// BLOCKS and ENTITIES are skipped.
func ParseDocument(r io.Reader) (*Document, error) {
	doc := &Document{Blocks: make(map[string][]*Entity)}
	s := NewScanner(r)

	for s.Next() {
		t := s.Tag()
		if t.Code != 0 || t.Text() != "SECTION" {
			continue
		}
		if !s.Next() {
			break
		}
		name := s.Tag()
		if name.Code != 2 {
			continue
		}
		switch name.Text() {
		case "ENTITIES":
			if err := parseEntitiesSection(s, doc); err != nil {
				return nil, err
			}
		case "BLOCKS":
			if err := parseBlocksSection(s, doc); err != nil {
				return nil, err
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("dxf: parse: %w", err)
	}
	return doc, nil
}

// parseEntitiesSection consumes tags up to ENDSEC, collecting entities.
func parseEntitiesSection(s *Scanner, doc *Document) error {
	if !s.Next() {
		return s.Err()
	}
	for {
		t := s.Tag()
		if t.Code != 0 {
			if !s.Next() {
				return s.Err()
			}
			continue
		}
		if t.Text() == "ENDSEC" {
			return nil
		}
		e, more := parseEntity(s, t.Text())
		doc.Entities = append(doc.Entities, e)
		if !more {
			return s.Err()
		}
	}
}

// parseBlocksSection consumes tags up to ENDSEC, collecting each
// BLOCK's entity list keyed by block name.
func parseBlocksSection(s *Scanner, doc *Document) error {
	if !s.Next() {
		return s.Err()
	}
	for {
		t := s.Tag()
		if t.Code != 0 {
			if !s.Next() {
				return s.Err()
			}
			continue
		}
		switch t.Text() {
		case "ENDSEC":
			return nil
		case "BLOCK":
			name, more := parseBlockHeader(s)
			if !more {
				return s.Err()
			}
			entities, more := parseBlockEntities(s)
			if name != "" {
				doc.Blocks[name] = entities
			}
			if !more {
				return s.Err()
			}
		default:
			if !s.Next() {
				return s.Err()
			}
		}
	}
}

// parseBlockHeader reads the BLOCK header tags and returns the block
// name. The scanner is left on the first tag after the header.
func parseBlockHeader(s *Scanner) (name string, more bool) {
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			return name, true
		}
		if t.Code == 2 {
			name = t.Text()
		}
	}
	return name, false
}

// parseBlockEntities collects entities until the matching ENDBLK.
func parseBlockEntities(s *Scanner) (entities []*Entity, more bool) {
	for {
		t := s.Tag()
		if t.Code != 0 {
			if !s.Next() {
				return entities, false
			}
			continue
		}
		if t.Text() == "ENDBLK" {
			// Consume the ENDBLK attribute tags.
			for s.Next() {
				if s.Tag().Code == 0 {
					return entities, true
				}
			}
			return entities, false
		}
		e, ok := parseEntity(s, t.Text())
		entities = append(entities, e)
		if !ok {
			return entities, false
		}
	}
}

// parseEntity parses one entity starting from its (0, type) tag. On
// return the scanner is positioned on the next group-0 tag; more is
// false when the stream ended instead.
func parseEntity(s *Scanner, typeName string) (e *Entity, more bool) {
	switch typeName {
	case "LINE":
		return parseLine(s)
	case "ARC":
		return parseArc(s)
	case "CIRCLE":
		return parseCircle(s)
	case "POLYLINE":
		return parsePolyline(s)
	case "LWPOLYLINE":
		return parseLWPolyline(s)
	case "INSERT":
		return parseInsert(s)
	case "HATCH":
		e = &Entity{Kind: EntityHatch, Data: HatchData{}}
		return e, consumeCommon(s, e)
	default:
		e = &Entity{Kind: EntityUnknown, Data: UnknownData{Type: typeName}}
		return e, consumeCommon(s, e)
	}
}

// consumeCommon reads tags up to the next group 0, keeping only the
// attributes shared by all entities.
func consumeCommon(s *Scanner, e *Entity) bool {
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			return true
		}
		applyCommon(e, t)
	}
	return false
}

// applyCommon handles the attribute codes shared by all entities and
// reports whether the tag was consumed.
func applyCommon(e *Entity, t Tag) bool {
	switch t.Code {
	case 8:
		e.Layer = t.Text()
	case 62:
		e.Color = t.Int()
	case 420:
		v := t.Int()
		e.RGB = &[3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}
	default:
		return false
	}
	return true
}

func parseLine(s *Scanner) (*Entity, bool) {
	var d LineData
	e := &Entity{Kind: EntityLine}
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			e.Data = d
			return e, true
		}
		if applyCommon(e, t) {
			continue
		}
		switch t.Code {
		case 10:
			d.Start.X = t.Float()
		case 20:
			d.Start.Y = t.Float()
		case 30:
			d.Start.Z = t.Float()
		case 11:
			d.End.X = t.Float()
		case 21:
			d.End.Y = t.Float()
		case 31:
			d.End.Z = t.Float()
		}
	}
	e.Data = d
	return e, false
}

func parseArc(s *Scanner) (*Entity, bool) {
	var d ArcData
	e := &Entity{Kind: EntityArc}
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			e.Data = d
			return e, true
		}
		if applyCommon(e, t) {
			continue
		}
		switch t.Code {
		case 10:
			d.Center.X = t.Float()
		case 20:
			d.Center.Y = t.Float()
		case 30:
			d.Center.Z = t.Float()
		case 40:
			d.Radius = t.Float()
		case 50:
			d.StartAngle = t.Float()
		case 51:
			d.EndAngle = t.Float()
		}
	}
	e.Data = d
	return e, false
}

func parseCircle(s *Scanner) (*Entity, bool) {
	var d CircleData
	e := &Entity{Kind: EntityCircle}
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			e.Data = d
			return e, true
		}
		if applyCommon(e, t) {
			continue
		}
		switch t.Code {
		case 10:
			d.Center.X = t.Float()
		case 20:
			d.Center.Y = t.Float()
		case 30:
			d.Center.Z = t.Float()
		case 40:
			d.Radius = t.Float()
		}
	}
	e.Data = d
	return e, false
}

func parseLWPolyline(s *Scanner) (*Entity, bool) {
	var d LWPolylineData
	e := &Entity{Kind: EntityLWPolyline}
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			e.Data = d
			return e, true
		}
		if applyCommon(e, t) {
			continue
		}
		switch t.Code {
		case 70:
			d.Closed = t.Int()&1 != 0
		case 10:
			// Group 10 opens a new vertex; 20 and 42 fill it in.
			d.Vertices = append(d.Vertices, Vertex{X: t.Float()})
		case 20:
			if n := len(d.Vertices); n > 0 {
				d.Vertices[n-1].Y = t.Float()
			}
		case 42:
			if n := len(d.Vertices); n > 0 {
				d.Vertices[n-1].Bulge = t.Float()
			}
		}
	}
	e.Data = d
	return e, false
}

// parsePolyline reads the POLYLINE header, its VERTEX children and the
// terminating SEQEND.
func parsePolyline(s *Scanner) (*Entity, bool) {
	var d PolylineData
	e := &Entity{Kind: EntityPolyline}
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			break
		}
		if applyCommon(e, t) {
			continue
		}
		if t.Code == 70 {
			d.Closed = t.Int()&1 != 0
		}
	}

	for {
		t := s.Tag()
		if t.Code != 0 {
			if !s.Next() {
				e.Data = d
				return e, false
			}
			continue
		}
		switch t.Text() {
		case "VERTEX":
			v, more := parseVertex(s)
			d.Vertices = append(d.Vertices, v)
			if !more {
				e.Data = d
				return e, false
			}
		case "SEQEND":
			e.Data = d
			for s.Next() {
				if s.Tag().Code == 0 {
					return e, true
				}
			}
			return e, false
		default:
			// Malformed vertex sequence; hand the tag back to the caller.
			e.Data = d
			return e, true
		}
	}
}

func parseVertex(s *Scanner) (Vertex, bool) {
	var v Vertex
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			return v, true
		}
		switch t.Code {
		case 10:
			v.X = t.Float()
		case 20:
			v.Y = t.Float()
		case 30:
			v.Z = t.Float()
		case 42:
			v.Bulge = t.Float()
		}
	}
	return v, false
}

func parseInsert(s *Scanner) (*Entity, bool) {
	d := InsertData{Scale: geom.Point3D{X: 1, Y: 1, Z: 1}}
	e := &Entity{Kind: EntityInsert}
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 {
			e.Data = d
			return e, true
		}
		if applyCommon(e, t) {
			continue
		}
		switch t.Code {
		case 2:
			d.Block = t.Text()
		case 10:
			d.Insert.X = t.Float()
		case 20:
			d.Insert.Y = t.Float()
		case 30:
			d.Insert.Z = t.Float()
		case 41:
			d.Scale.X = t.Float()
		case 42:
			d.Scale.Y = t.Float()
		case 43:
			d.Scale.Z = t.Float()
		case 50:
			d.Rotation = t.Float()
		}
	}
	e.Data = d
	return e, false
}
