package dxf

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Filter is a predicate applied to query results.
type Filter func(*Entity) bool

// Query selects modelspace entities by layer name, block name and
// color. Zero-value fields match everything, mirroring the behavior
// of an unrestricted drawing query.
type Query struct {
	Layer string     // exact layer name; "" matches any layer
	Block string     // restricts to INSERTs of this block; "" = no restriction
	Color *ColorSpec // nil = no color restriction
}

// Match reports whether the entity satisfies all set criteria.
func (q Query) Match(e *Entity) bool {
	if q.Layer != "" && e.Layer != q.Layer {
		return false
	}
	if q.Block != "" {
		ins, ok := e.Data.(InsertData)
		if !ok || ins.Block != q.Block {
			return false
		}
	}
	if q.Color != nil && !q.Color.Match(e) {
		return false
	}
	return true
}

// ColorSpec matches an entity color by ACI code, color name or true
// color, whichever is set. Exactly one of the fields should be set.
type ColorSpec struct {
	ACI  *int
	Name string
	RGB  *[3]uint8
}

// aciByName maps the classic ACI color names to their codes.
var aciByName = map[string]int{
	"RED":       1,
	"YELLOW":    2,
	"GREEN":     3,
	"CYAN":      4,
	"BLUE":      5,
	"MAGENTA":   6,
	"WHITE":     7,
	"BLACK":     7,
	"GRAY":      8,
	"LIGHTGRAY": 9,
}

// colorNameTranslation maps German color names from legacy layer
// configurations onto the ACI names above.
var colorNameTranslation = map[string]string{
	"VON BLOCK": "BY BLOCK",
	"VON LAYER": "BY LAYER",
	"BLAU":      "BLUE",
	"ROT":       "RED",
	"GRÜN":      "GREEN",
	"GELB":      "YELLOW",
	"WEISS":     "WHITE",
	"SCHWARZ":   "BLACK",
	"GRAU":      "GRAY",
	"HELLGRAU":  "LIGHTGRAY",
}

// Match reports whether the entity color satisfies the criterion.
func (c ColorSpec) Match(e *Entity) bool {
	switch {
	case c.ACI != nil:
		return e.Color == *c.ACI
	case c.RGB != nil:
		return e.RGB != nil && *e.RGB == *c.RGB
	case c.Name != "":
		name := strings.ToUpper(strings.TrimSpace(c.Name))
		name = strings.TrimSpace(strings.ReplaceAll(name, "FARBE", ""))
		if translated, ok := colorNameTranslation[name]; ok {
			name = translated
		}
		code, ok := aciByName[name]
		if !ok {
			log.WithFields(logrus.Fields{
				"color": c.Name,
				"layer": e.Layer,
			}).Warn("unknown color name in layer configuration")
			return false
		}
		return e.Color == code
	default:
		return true
	}
}
