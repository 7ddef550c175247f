// Package config loads the processor configuration: which media are
// converted and which drawing layers feed each of them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eraschle/dxf2obj/pkg/dxf"
)

// Layer selects drawing entities by name, color and/or block.
// Unset fields do not restrict the selection.
type Layer struct {
	Name  string `yaml:"name,omitempty"`
	Color *Color `yaml:"color,omitempty"`
	Block string `yaml:"block,omitempty"`
}

// Query translates the layer selection into a drawing query.
func (l Layer) Query() dxf.Query {
	q := dxf.Query{Layer: l.Name, Block: l.Block}
	if l.Color != nil {
		spec := l.Color.Spec()
		q.Color = &spec
	}
	return q
}

// LayerPair couples the layer carrying an object's geometry with the
// layer carrying its text annotation.
type LayerPair struct {
	Element Layer `yaml:"element"`
	Text    Layer `yaml:"text,omitempty"`
}

// ObjectConfig describes one convertible object class of a medium.
type ObjectConfig struct {
	Name       string      `yaml:"name"`
	Layers     []LayerPair `yaml:"layers"`
	Units      string      `yaml:"units,omitempty"`
	Family     string      `yaml:"family,omitempty"`
	FamilyType string      `yaml:"family_type,omitempty"`
	ObjectID   string      `yaml:"object_id,omitempty"`
}

// Medium groups the point-like and line-like object classes of one
// infrastructure medium (wastewater, water, electric, ...).
type Medium struct {
	Name  string       `yaml:"name"`
	Point ObjectConfig `yaml:"point,omitempty"`
	Line  ObjectConfig `yaml:"line,omitempty"`
}

// Processor is the root configuration document.
type Processor struct {
	Media []Medium `yaml:"media"`
}

// Load reads and decodes a YAML processor configuration.
func Load(path string) (*Processor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var p Processor
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &p, nil
}
