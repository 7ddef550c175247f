package dxf

import (
	"strings"
	"testing"

	"github.com/eraschle/dxf2obj/pkg/geom"
)

// tagStream joins alternating code/value entries into scanner input.
func tagStream(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

func TestParseDocumentEntities(t *testing.T) {
	input := tagStream(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE",
		"8", "WALLS",
		"62", "1",
		"10", "0.0", "20", "0.0", "30", "0.0",
		"11", "10.0", "21", "5.0", "31", "2.0",
		"0", "ARC",
		"8", "WALLS",
		"10", "1.0", "20", "2.0", "30", "0.0",
		"40", "3.0",
		"50", "0.0", "51", "90.0",
		"0", "CIRCLE",
		"10", "4.0", "20", "4.0",
		"40", "0.5",
		"0", "ENDSEC",
		"0", "EOF",
	)

	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Entities) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(doc.Entities))
	}

	line := doc.Entities[0]
	if line.Kind != EntityLine || line.Layer != "WALLS" || line.Color != 1 {
		t.Errorf("line attributes wrong: %+v", line)
	}
	ld, ok := line.Data.(LineData)
	if !ok {
		t.Fatalf("expected LineData, got %T", line.Data)
	}
	if ld.End != (geom.Point3D{X: 10, Y: 5, Z: 2}) {
		t.Errorf("line end = %v", ld.End)
	}

	arc, ok := doc.Entities[1].Data.(ArcData)
	if !ok {
		t.Fatalf("expected ArcData, got %T", doc.Entities[1].Data)
	}
	if arc.Radius != 3 || arc.StartAngle != 0 || arc.EndAngle != 90 {
		t.Errorf("arc data wrong: %+v", arc)
	}

	circle, ok := doc.Entities[2].Data.(CircleData)
	if !ok {
		t.Fatalf("expected CircleData, got %T", doc.Entities[2].Data)
	}
	if circle.Center != (geom.Point3D{X: 4, Y: 4}) || circle.Radius != 0.5 {
		t.Errorf("circle data wrong: %+v", circle)
	}
}

func TestParseLWPolylineVertices(t *testing.T) {
	input := tagStream(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LWPOLYLINE",
		"8", "PIPES",
		"90", "3",
		"70", "1",
		"10", "0.0", "20", "0.0", "42", "1.0",
		"10", "2.0", "20", "0.0",
		"10", "2.0", "20", "2.0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(doc.Entities))
	}

	d, ok := doc.Entities[0].Data.(LWPolylineData)
	if !ok {
		t.Fatalf("expected LWPolylineData, got %T", doc.Entities[0].Data)
	}
	if !d.Closed {
		t.Error("closed flag (70 bit 1) not picked up")
	}
	if len(d.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(d.Vertices))
	}
	if d.Vertices[0].Bulge != 1 {
		t.Errorf("vertex 0 bulge = %g, want 1", d.Vertices[0].Bulge)
	}
	if d.Vertices[1].Bulge != 0 || d.Vertices[2].Bulge != 0 {
		t.Error("bulge leaked onto later vertices")
	}
	if d.Vertices[2] != (Vertex{X: 2, Y: 2}) {
		t.Errorf("vertex 2 = %+v", d.Vertices[2])
	}
}

func TestParseHeavyPolyline(t *testing.T) {
	input := tagStream(
		"0", "SECTION", "2", "ENTITIES",
		"0", "POLYLINE",
		"8", "ROADS",
		"70", "0",
		"0", "VERTEX",
		"10", "0.0", "20", "0.0", "30", "1.5",
		"0", "VERTEX",
		"10", "5.0", "20", "0.0", "30", "2.5",
		"42", "-0.5",
		"0", "SEQEND",
		"0", "LINE",
		"10", "0.0", "20", "0.0",
		"11", "1.0", "21", "1.0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(doc.Entities))
	}

	d, ok := doc.Entities[0].Data.(PolylineData)
	if !ok {
		t.Fatalf("expected PolylineData, got %T", doc.Entities[0].Data)
	}
	if len(d.Vertices) != 2 {
		t.Fatalf("expected 2 vertices, got %d", len(d.Vertices))
	}
	if d.Vertices[0].Z != 1.5 {
		t.Errorf("vertex 0 Z = %g, want 1.5", d.Vertices[0].Z)
	}
	if d.Vertices[1].Bulge != -0.5 {
		t.Errorf("vertex 1 bulge = %g, want -0.5", d.Vertices[1].Bulge)
	}
	if doc.Entities[1].Kind != EntityLine {
		t.Errorf("entity after SEQEND = %v, want LINE", doc.Entities[1].Kind)
	}
}

func TestParseBlocksAndInsert(t *testing.T) {
	input := tagStream(
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK",
		"2", "MANHOLE",
		"10", "0.0", "20", "0.0",
		"0", "CIRCLE",
		"10", "0.0", "20", "0.0",
		"40", "0.6",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "INSERT",
		"2", "MANHOLE",
		"8", "SHAFTS",
		"10", "100.0", "20", "200.0", "30", "0.0",
		"50", "45.0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	block, ok := doc.Blocks["MANHOLE"]
	if !ok {
		t.Fatal("block MANHOLE not parsed")
	}
	if len(block) != 1 || block[0].Kind != EntityCircle {
		t.Errorf("block content wrong: %+v", block)
	}

	if len(doc.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(doc.Entities))
	}
	d, ok := doc.Entities[0].Data.(InsertData)
	if !ok {
		t.Fatalf("expected InsertData, got %T", doc.Entities[0].Data)
	}
	if d.Block != "MANHOLE" {
		t.Errorf("block name = %q", d.Block)
	}
	if d.Insert != (geom.Point3D{X: 100, Y: 200}) {
		t.Errorf("insertion point = %v", d.Insert)
	}
	if d.Scale != (geom.Point3D{X: 1, Y: 1, Z: 1}) {
		t.Errorf("scale default = %v, want (1, 1, 1)", d.Scale)
	}
	if d.Rotation != 45 {
		t.Errorf("rotation = %g, want 45", d.Rotation)
	}
}

func TestParseUnknownEntityCarried(t *testing.T) {
	input := tagStream(
		"0", "SECTION", "2", "ENTITIES",
		"0", "MTEXT",
		"8", "NOTES",
		"1", "some text",
		"0", "ENDSEC",
		"0", "EOF",
	)

	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(doc.Entities))
	}
	e := doc.Entities[0]
	if e.Kind != EntityUnknown || e.Layer != "NOTES" {
		t.Errorf("unknown entity not carried: %+v", e)
	}
	if d, ok := e.Data.(UnknownData); !ok || d.Type != "MTEXT" {
		t.Errorf("unknown payload = %+v", e.Data)
	}
}

func TestParseSkipsOtherSections(t *testing.T) {
	input := tagStream(
		"0", "SECTION", "2", "HEADER",
		"9", "$ACADVER", "1", "AC1027",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE",
		"10", "0", "20", "0",
		"11", "1", "21", "1",
		"0", "ENDSEC",
		"0", "EOF",
	)
	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Entities) != 1 {
		t.Errorf("expected 1 entity, got %d", len(doc.Entities))
	}
}
