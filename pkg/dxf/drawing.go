package dxf

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "dxf")

var (
	// ErrNotLoaded is returned when drawing data is requested before a
	// successful Load.
	ErrNotLoaded = errors.New("dxf: drawing not loaded")
	// ErrBlockNotFound is returned when an INSERT references a block
	// the drawing does not define.
	ErrBlockNotFound = errors.New("dxf: block not found")
)

// Source is the abstract drawing access consumed by the conversion
// pipeline: entity enumeration plus block-by-name resolution.
// Drawing is the file-backed implementation.
type Source interface {
	Entities() ([]*Entity, error)
	Block(name string) ([]*Entity, error)
}

// Drawing reads a DXF file and answers entity and block queries.
// All accessors fail with ErrNotLoaded before Load has succeeded.
type Drawing struct {
	path string
	doc  *Document
}

// NewDrawing returns an unloaded drawing for the given file path.
func NewDrawing(path string) *Drawing {
	return &Drawing{path: path}
}

// Load parses the DXF file into memory.
func (d *Drawing) Load() error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("dxf: open %s: %w", d.path, err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return fmt.Errorf("dxf: load %s: %w", d.path, err)
	}
	d.doc = doc
	log.WithFields(logrus.Fields{
		"file":     d.path,
		"entities": len(doc.Entities),
		"blocks":   len(doc.Blocks),
	}).Debug("drawing loaded")
	return nil
}

// Loaded reports whether Load has succeeded.
func (d *Drawing) Loaded() bool {
	return d.doc != nil
}

// Entities returns all modelspace entities.
func (d *Drawing) Entities() ([]*Entity, error) {
	if d.doc == nil {
		return nil, ErrNotLoaded
	}
	return d.doc.Entities, nil
}

// Block returns the entity list of the named block definition.
func (d *Drawing) Block(name string) ([]*Entity, error) {
	if d.doc == nil {
		return nil, ErrNotLoaded
	}
	entities, ok := d.doc.Blocks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBlockNotFound, name)
	}
	return entities, nil
}

// Layers returns the distinct layer names present in the modelspace,
// sorted for stable output.
func (d *Drawing) Layers() ([]string, error) {
	if d.doc == nil {
		return nil, ErrNotLoaded
	}
	seen := make(map[string]struct{})
	var names []string
	for _, e := range d.doc.Entities {
		if _, ok := seen[e.Layer]; ok {
			continue
		}
		seen[e.Layer] = struct{}{}
		names = append(names, e.Layer)
	}
	sort.Strings(names)
	return names, nil
}

// Query returns the modelspace entities matching q plus any extra
// filters, in stored order.
func (d *Drawing) Query(q Query, filters ...Filter) ([]*Entity, error) {
	if d.doc == nil {
		return nil, ErrNotLoaded
	}
	var out []*Entity
entities:
	for _, e := range d.doc.Entities {
		if !q.Match(e) {
			continue
		}
		for _, f := range filters {
			if !f(e) {
				continue entities
			}
		}
		out = append(out, e)
	}
	return out, nil
}
