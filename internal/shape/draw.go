package shape

import (
	"image"
	"image/color"
	"math"

	"github.com/rook-computer/cursortrail/internal/render"
	"github.com/rook-computer/cursortrail/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"honnef.co/go/curve"
)

// Draw paints one dot of variant s onto dst. The dot occupies a box of side
// 2*size whose top-left corner is pt; size is clamped with ClampSize.
//
// All variants except Image are filled with c and never stroked. Image
// scales img into the box, keeping its aspect ratio, and composites it with
// c's alpha as opacity; c's color channels are ignored. A nil or empty img
// leaves dst untouched.
func Draw(dst render.Surface, s Shape, pt curve.Point, size float64, c color.NRGBA, img image.Image) {
	size = ClampSize(size)

	if s == Image {
		drawImage(dst, pt, size, c.A, img)
		return
	}

	dst.SetFill(c)
	switch s {
	case Circle:
		dst.FillEllipse(curve.Pt(pt.X+size, pt.Y+size), size, size)
	case Oval:
		r := OvalRect(pt, size)
		dst.FillEllipse(r.Center(), r.Width()/2, r.Height()/2)
	case Square:
		dst.FillRect(SquareRect(pt, size))
	case Crescent:
		dst.FillDifference(CrescentPaths(pt, size))
	default:
		if pts, ok := Polygon(s, pt, size); ok {
			dst.FillPolygon(pts)
		}
	}
}

func drawImage(dst render.Surface, pt curve.Point, size float64, alpha uint8, img image.Image) {
	if img == nil {
		return
	}
	src := img.Bounds()
	if src.Empty() {
		return
	}
	box := int(size * 2)
	w, h := layout.FitKeepAspect(src.Dx(), src.Dy(), box, box)
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, src, xdraw.Src, nil)
	at := image.Pt(int(math.Trunc(pt.X)), int(math.Trunc(pt.Y)))
	dst.DrawImage(scaled, at, float64(alpha)/255)
}
