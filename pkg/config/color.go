package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/eraschle/dxf2obj/pkg/dxf"
)

// Color is a layer color criterion. In YAML it is written either as
// an ACI code (integer), a color name (string, German names accepted)
// or an RGB triple (three-element sequence).
type Color struct {
	ACI  *int
	Name string
	RGB  *[3]uint8
}

// Spec converts the configured color into a drawing color matcher.
func (c Color) Spec() dxf.ColorSpec {
	return dxf.ColorSpec{ACI: c.ACI, Name: c.Name, RGB: c.RGB}
}

// UnmarshalYAML accepts the three supported color notations.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var code int
		if err := node.Decode(&code); err == nil {
			c.ACI = &code
			return nil
		}
		return node.Decode(&c.Name)
	case yaml.SequenceNode:
		var rgb [3]uint8
		if err := node.Decode(&rgb); err != nil {
			return fmt.Errorf("config: color triple: %w", err)
		}
		c.RGB = &rgb
		return nil
	default:
		return fmt.Errorf("config: unsupported color notation on line %d", node.Line)
	}
}
