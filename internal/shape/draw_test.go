package shape

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/cursortrail/internal/render"
	"honnef.co/go/curve"
)

type call struct {
	op   string
	fill color.Color
}

// recorder is a Surface that logs calls instead of drawing.
type recorder struct {
	fill  color.Color
	calls []call
}

func (r *recorder) SetFill(c color.Color) { r.fill = c }

func (r *recorder) FillEllipse(curve.Point, float64, float64) { r.log("ellipse") }

func (r *recorder) FillRect(curve.Rect) { r.log("rect") }

func (r *recorder) FillPolygon([]curve.Point) { r.log("polygon") }

func (r *recorder) FillDifference(_, _ curve.BezPath) { r.log("difference") }

func (r *recorder) DrawImage(image.Image, image.Point, float64) { r.log("image") }

func (r *recorder) log(op string) { r.calls = append(r.calls, call{op, r.fill}) }

var _ render.Surface = (*recorder)(nil)

func TestDrawDispatch(t *testing.T) {
	c := color.NRGBA{R: 0, G: 255, B: 255, A: 128}
	want := map[Shape]string{
		Circle:   "ellipse",
		Oval:     "ellipse",
		Square:   "rect",
		Crescent: "difference",
		Diamond:  "polygon",
		Triangle: "polygon",
		Star:     "polygon",
		Hexagon:  "polygon",
		Pentagon: "polygon",
		Heart:    "polygon",
		Cross:    "polygon",
		Arrow:    "polygon",
		Mouse:    "polygon",
	}
	for s, op := range want {
		var r recorder
		Draw(&r, s, curve.Pt(5, 5), 8, c, nil)
		if len(r.calls) != 1 {
			t.Errorf("%v: got %d calls, expected 1", s, len(r.calls))
			continue
		}
		if r.calls[0].op != op {
			t.Errorf("%v: got %s, expected %s", s, r.calls[0].op, op)
		}
		if r.calls[0].fill != c {
			t.Errorf("%v: filled with %v, expected %v", s, r.calls[0].fill, c)
		}
	}
}

func TestDrawSizeZeroMatchesOne(t *testing.T) {
	img := checker(6, 4)
	c := color.NRGBA{R: 200, G: 40, B: 90, A: 200}
	for _, s := range All() {
		zero := render.NewCanvas(32, 32)
		one := render.NewCanvas(32, 32)
		Draw(zero, s, curve.Pt(10.4, 12.7), 0, c, img)
		Draw(one, s, curve.Pt(10.4, 12.7), 1, c, img)
		if !bytes.Equal(zero.Image().Pix, one.Image().Pix) {
			t.Errorf("%v: size 0 and size 1 render differently", s)
		}
	}
}

func TestDrawPaints(t *testing.T) {
	c := color.NRGBA{R: 255, A: 255}
	for _, s := range All() {
		if s == Image {
			continue
		}
		canvas := render.NewCanvas(64, 64)
		Draw(canvas, s, curve.Pt(8, 8), 20, c, nil)
		if painted(canvas.Image()) == 0 {
			t.Errorf("%v: nothing painted", s)
		}
	}
}

func TestDrawImageNil(t *testing.T) {
	canvas := render.NewCanvas(32, 32)
	Draw(canvas, Image, curve.Pt(4, 4), 10, color.NRGBA{R: 255, A: 255}, nil)
	if n := painted(canvas.Image()); n != 0 {
		t.Errorf("nil bitmap painted %d pixels", n)
	}
	Draw(canvas, Image, curve.Pt(4, 4), 10, color.NRGBA{R: 255, A: 255}, image.NewRGBA(image.Rectangle{}))
	if n := painted(canvas.Image()); n != 0 {
		t.Errorf("empty bitmap painted %d pixels", n)
	}
}

func TestDrawImageUsesBitmapColors(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+2] = 255 // blue
		src.Pix[i+3] = 255
	}
	canvas := render.NewCanvas(40, 40)
	// red, half transparent: the red must not show up, only the opacity.
	Draw(canvas, Image, curve.Pt(5, 5), 8, color.NRGBA{R: 255, A: 128}, src)

	// 4x2 into a 16x16 box keeps the aspect ratio: 16x8 at (5, 5).
	inside := canvas.Image().RGBAAt(12, 8)
	if inside.R != 0 || inside.B == 0 || inside.A == 0 || inside.A == 255 {
		t.Errorf("got %v inside the image, expected half-opaque blue", inside)
	}
	if below := canvas.Image().RGBAAt(12, 15); below.A != 0 {
		t.Errorf("got %v below the scaled image, expected untouched", below)
	}
}

func TestCrescentLeavesBite(t *testing.T) {
	canvas := render.NewCanvas(64, 64)
	// disc centered at (30, 30) radius 20; bite spans x in [24, 60].
	Draw(canvas, Crescent, curve.Pt(10, 10), 20, color.NRGBA{G: 255, A: 255}, nil)
	img := canvas.Image()
	if a := img.RGBAAt(14, 30).A; a != 255 {
		t.Errorf("crescent body alpha %d, expected 255", a)
	}
	if a := img.RGBAAt(40, 30).A; a != 0 {
		t.Errorf("bite alpha %d, expected 0", a)
	}
	if a := img.RGBAAt(55, 30).A; a != 0 {
		t.Errorf("inner ellipse outside the disc painted alpha %d", a)
	}
}

func TestCrescentBodyLeftOfBite(t *testing.T) {
	canvas := render.NewCanvas(32, 32)
	// disc centered at (10, 10) radius 10; bite spans x in [7, 25].
	Draw(canvas, Crescent, curve.Pt(0, 0), 10, color.NRGBA{G: 255, A: 255}, nil)
	img := canvas.Image()
	if a := img.RGBAAt(6, 10).A; a != 255 {
		t.Errorf("body alpha %d at (6, 10), expected 255", a)
	}
	if a := img.RGBAAt(13, 10).A; a != 0 {
		t.Errorf("bite alpha %d at (13, 10), expected 0", a)
	}
	if a := img.RGBAAt(8, 2).A; a != 255 {
		t.Errorf("upper horn alpha %d at (8, 2), expected 255", a)
	}
}

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}

func painted(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}
