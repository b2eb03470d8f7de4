// Package pointer provides pointer positions for the trail. Sources are
// polled once per frame from the render goroutine and must not block.
package pointer

import (
	"fmt"
	"math"
	"strings"
)

type Source interface {
	Position() (x, y int)
}

// Static always reports the same position.
type Static struct {
	X, Y int
}

func (s Static) Position() (int, int) { return s.X, s.Y }

// Func adapts a function to a Source.
type Func func() (x, y int)

func (f Func) Position() (int, int) { return f() }

// Script replays a path, one sample per call to Position.
type Script struct {
	path  func(frame int) (x, y float64)
	frame int
}

func NewScript(path func(frame int) (x, y float64)) *Script {
	return &Script{path: path}
}

func (s *Script) Position() (int, int) {
	x, y := s.path(s.frame)
	s.frame++
	return int(math.Round(x)), int(math.Round(y))
}

// Frame is the number of samples taken so far.
func (s *Script) Frame() int {
	return s.frame
}

// Circle orbits (cx, cy) once every period frames.
func Circle(cx, cy, radius float64, period int) *Script {
	period = max(period, 1)
	return NewScript(func(frame int) (float64, float64) {
		t := 2 * math.Pi * float64(frame%period) / float64(period)
		return cx + radius*math.Cos(t), cy + radius*math.Sin(t)
	})
}

// Lissajous traces a 3:2 figure filling 80% of a w x h area.
func Lissajous(w, h, period int) *Script {
	period = max(period, 1)
	ax, ay := 0.4*float64(w), 0.4*float64(h)
	cx, cy := float64(w)/2, float64(h)/2
	return NewScript(func(frame int) (float64, float64) {
		t := 2 * math.Pi * float64(frame%period) / float64(period)
		return cx + ax*math.Sin(3*t+math.Pi/2), cy + ay*math.Sin(2*t)
	})
}

// Line sweeps left to right across the middle of a w x h area and back.
func Line(w, h, period int) *Script {
	period = max(period, 2)
	half := period / 2
	margin := 0.1 * float64(w)
	span := float64(w) - 2*margin
	return NewScript(func(frame int) (float64, float64) {
		f := frame % period
		var u float64
		if f < half {
			u = float64(f) / float64(half)
		} else {
			u = float64(period-f) / float64(period-half)
		}
		return margin + u*span, float64(h) / 2
	})
}

// ScriptNames lists the names accepted by ParseScript.
func ScriptNames() []string {
	return []string{"circle", "lissajous", "line"}
}

// ParseScript builds a named script sized for a w x h canvas.
func ParseScript(name string, w, h, period int) (*Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle":
		r := 0.35 * float64(min(w, h))
		return Circle(float64(w)/2, float64(h)/2, r, period), nil
	case "lissajous":
		return Lissajous(w, h, period), nil
	case "line":
		return Line(w, h, period), nil
	default:
		return nil, fmt.Errorf("unknown pointer script %q (want one of %s)", name, strings.Join(ScriptNames(), ", "))
	}
}
