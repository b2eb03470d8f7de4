package shape

import (
	"math"

	"honnef.co/go/curve"

	"github.com/rook-computer/cursortrail/internal/render"
)

const (
	heartSamples = 100
	// heartScale maps the parametric heart (about 34 units tall) onto a
	// box of side 2*size.
	heartScale = 17.0
)

// ClampSize truncates size to a whole number of pixels, with a minimum of 1.
func ClampSize(size float64) float64 {
	if !(size >= 1) {
		return 1
	}
	return math.Trunc(size)
}

// Polygon returns the vertices of the polygon variants for a dot whose
// bounding box of side 2*size has its top-left corner at pt. size is used as
// given; callers clamp it first. The second result is false for variants that
// are not plain polygons.
func Polygon(s Shape, pt curve.Point, size float64) ([]curve.Point, bool) {
	x, y := pt.X, pt.Y
	cx, cy := x+size, y+size
	switch s {
	case Diamond:
		return []curve.Point{
			{X: x + size, Y: y},
			{X: x + size*2, Y: y + size},
			{X: x + size, Y: y + size*2},
			{X: x, Y: y + size},
		}, true
	case Triangle:
		return []curve.Point{
			{X: x + size, Y: y},
			{X: x + size*2, Y: y + size*2},
			{X: x, Y: y + size*2},
		}, true
	case Star:
		inner := math.Floor(size / 2)
		out := make([]curve.Point, 0, 10)
		for i := range 10 {
			angle := float64(i)*math.Pi/5 - math.Pi/2
			r := size
			if i%2 == 1 {
				r = inner
			}
			out = append(out, curve.Pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
		}
		return out, true
	case Hexagon:
		return around(cx, cy, size, 6, func(i float64) float64 { return i * math.Pi / 3 }), true
	case Pentagon:
		return around(cx, cy, size, 5, func(i float64) float64 { return i*2*math.Pi/5 - math.Pi/2 }), true
	case Heart:
		out := make([]curve.Point, 0, heartSamples)
		for i := range heartSamples {
			t := float64(i) * 2 * math.Pi / heartSamples
			hx := 16 * math.Pow(math.Sin(t), 3)
			hy := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
			out = append(out, curve.Pt(cx+hx*size/heartScale, cy+hy*size/heartScale))
		}
		return out, true
	case Cross:
		w := math.Floor(size / 3)
		return []curve.Point{
			{X: cx - w, Y: cy - size},
			{X: cx + w, Y: cy - size},
			{X: cx + w, Y: cy - w},
			{X: cx + size, Y: cy - w},
			{X: cx + size, Y: cy + w},
			{X: cx + w, Y: cy + w},
			{X: cx + w, Y: cy + size},
			{X: cx - w, Y: cy + size},
			{X: cx - w, Y: cy + w},
			{X: cx - size, Y: cy + w},
			{X: cx - size, Y: cy - w},
			{X: cx - w, Y: cy - w},
		}, true
	case Arrow:
		return []curve.Point{
			{X: x + size, Y: y},
			{X: x + size*2, Y: y + size},
			{X: x + size*1.5, Y: y + size},
			{X: x + size*1.5, Y: y + size*2},
			{X: x + size*0.5, Y: y + size*2},
			{X: x + size*0.5, Y: y + size},
			{X: x, Y: y + size},
		}, true
	case Mouse:
		return []curve.Point{
			{X: x, Y: y},
			{X: x, Y: y + size*1.6},
			{X: x + size*0.3, Y: y + size*1.25},
			{X: x + size*0.5, Y: y + size*1.7},
			{X: x + size*0.75, Y: y + size*1.55},
			{X: x + size*0.5, Y: y + size*1.1},
			{X: x + size*1.0, Y: y + size*1.1},
		}, true
	}
	return nil, false
}

// around returns n vertices on a circle of radius r, vertex i at angle(i).
func around(cx, cy, r float64, n int, angle func(i float64) float64) []curve.Point {
	out := make([]curve.Point, 0, n)
	for i := range n {
		a := angle(float64(i))
		out = append(out, curve.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return out
}

// CrescentPaths returns the disc and the offset ellipse whose difference
// forms the Crescent variant.
func CrescentPaths(pt curve.Point, size float64) (outer, inner curve.BezPath) {
	cx, cy := pt.X+size, pt.Y+size
	// The bite is inscribed in the box (cx-0.3s, cy-s, 1.8s, 2s).
	outer = render.EllipsePath(curve.Pt(cx, cy), size, size)
	inner = render.EllipsePath(curve.Pt(cx-size*0.3+size*0.9, cy), size*0.9, size)
	return outer, inner
}

// OvalRect returns the box the Oval variant is inscribed in: full width,
// half height, anchored at the truncated dot position.
func OvalRect(pt curve.Point, size float64) curve.Rect {
	return curve.NewRectFromOrigin(curve.Pt(math.Trunc(pt.X), math.Trunc(pt.Y)), curve.Sz(size*2, size))
}

// SquareRect returns the Square variant's box.
func SquareRect(pt curve.Point, size float64) curve.Rect {
	return curve.NewRectFromOrigin(curve.Pt(math.Trunc(pt.X), math.Trunc(pt.Y)), curve.Sz(size*2, size*2))
}
