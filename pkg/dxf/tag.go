package dxf

import (
	"strconv"
	"strings"
)

// Tag is one DXF group-code/value pair.
type Tag struct {
	Code  int
	Value string
}

// Float returns the value as float64, or 0 if it does not parse.
func (t Tag) Float() float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return f
}

// Int returns the value as int, or 0 if it does not parse.
func (t Tag) Int() int {
	i, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return i
}

// Text returns the value with surrounding whitespace removed.
func (t Tag) Text() string {
	return strings.TrimSpace(t.Value)
}
