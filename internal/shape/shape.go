// Package shape draws one trail dot as filled geometry.
//
// Every variant is built by a pure function of the dot position and size, so
// the silhouettes can be inspected without a surface. Draw dispatches on the
// variant and issues fill-only operations against a render.Surface.
package shape

import (
	"strconv"
	"strings"
)

// Shape selects the geometry drawn for each dot.
type Shape int

const (
	Circle Shape = iota
	Square
	Diamond
	Triangle
	Star
	Hexagon
	Pentagon
	Heart
	Cross
	Crescent
	Oval
	Arrow
	Mouse
	Image
)

var names = [...]string{
	Circle:   "Circle",
	Square:   "Square",
	Diamond:  "Diamond",
	Triangle: "Triangle",
	Star:     "Star",
	Hexagon:  "Hexagon",
	Pentagon: "Pentagon",
	Heart:    "Heart",
	Cross:    "Cross",
	Crescent: "Crescent",
	Oval:     "Oval",
	Arrow:    "Arrow",
	Mouse:    "Mouse",
	Image:    "Image",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(names) {
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
	return names[s]
}

// Valid reports whether s is one of the declared variants.
func (s Shape) Valid() bool { return s >= 0 && int(s) < len(names) }

// All returns every variant in selector order.
func All() []Shape {
	out := make([]Shape, len(names))
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// Names returns the selector names in order.
func Names() []string { return append([]string(nil), names[:]...) }

// Parse maps a selector name to its Shape, ignoring case and surrounding
// space. The second result is false for unknown names, in which case Circle
// is returned.
func Parse(name string) (Shape, bool) {
	name = strings.TrimSpace(name)
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Shape(i), true
		}
	}
	return Circle, false
}
