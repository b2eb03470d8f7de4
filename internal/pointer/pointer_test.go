package pointer

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func positions(src Source, n int) []image.Point {
	out := make([]image.Point, n)
	for i := range out {
		x, y := src.Position()
		out[i] = image.Pt(x, y)
	}
	return out
}

func TestStaticAndFunc(t *testing.T) {
	if x, y := (Static{X: 3, Y: 4}).Position(); x != 3 || y != 4 {
		t.Errorf("Static.Position() = %d, %d", x, y)
	}
	calls := 0
	f := Func(func() (int, int) {
		calls++
		return calls, -calls
	})
	want := []image.Point{{1, -1}, {2, -2}}
	if diff := cmp.Diff(want, positions(f, 2)); diff != "" {
		t.Errorf("Func mismatch (-want +got):\n%s", diff)
	}
}

func TestCircle(t *testing.T) {
	s := Circle(100, 100, 50, 4)
	want := []image.Point{{150, 100}, {100, 150}, {50, 100}, {100, 50}, {150, 100}}
	if diff := cmp.Diff(want, positions(s, 5)); diff != "" {
		t.Errorf("Circle mismatch (-want +got):\n%s", diff)
	}
	if s.Frame() != 5 {
		t.Errorf("Frame() = %d, want 5", s.Frame())
	}
}

func TestLine(t *testing.T) {
	s := Line(100, 40, 4)
	want := []image.Point{{10, 20}, {50, 20}, {90, 20}, {50, 20}, {10, 20}}
	if diff := cmp.Diff(want, positions(s, 5)); diff != "" {
		t.Errorf("Line mismatch (-want +got):\n%s", diff)
	}
}

func TestLissajousStaysInside(t *testing.T) {
	const w, h = 320, 200
	s := Lissajous(w, h, 120)
	for i, p := range positions(s, 240) {
		if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
			t.Fatalf("sample %d = %v outside %dx%d", i, p, w, h)
		}
	}
}

func TestParseScript(t *testing.T) {
	for _, name := range ScriptNames() {
		if _, err := ParseScript(name, 640, 480, 60); err != nil {
			t.Errorf("ParseScript(%q): %v", name, err)
		}
	}
	if _, err := ParseScript(" Circle ", 640, 480, 60); err != nil {
		t.Errorf("ParseScript is case sensitive: %v", err)
	}
	if _, err := ParseScript("spiral", 640, 480, 60); err == nil {
		t.Error("ParseScript accepted an unknown name")
	}
}
