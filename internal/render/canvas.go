package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"slices"

	"golang.org/x/image/vector"
	"honnef.co/go/curve"
)

// ellipseTolerance is the maximum deviation, in pixels, of the Bezier
// approximation used for ellipses.
const ellipseTolerance = 0.1

// Canvas is an anti-aliased Surface backed by an RGBA image.
type Canvas struct {
	img    *image.RGBA
	fill   *image.Uniform
	raster vector.Rasterizer
}

var _ Surface = (*Canvas)(nil)

// NewCanvas returns a fully transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		fill: image.NewUniform(color.Transparent),
	}
}

// Image returns the backing image. It stays valid for the canvas lifetime.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Clear paints every pixel with bg, replacing what was there.
func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (c *Canvas) SetFill(col color.Color) { c.fill = image.NewUniform(col) }

func (c *Canvas) FillEllipse(center curve.Point, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	c.fillPath(EllipsePath(center, rx, ry))
}

// EllipsePath returns the closed outline of the axis-aligned ellipse with
// horizontal radius rx and vertical radius ry.
func EllipsePath(center curve.Point, rx, ry float64) curve.BezPath {
	arc := curve.Arc{Center: center, Radii: curve.Vec(rx, ry), SweepAngle: 2 * math.Pi}
	var p curve.BezPath = slices.Collect(arc.PathElements(ellipseTolerance))
	p.ClosePath()
	return p
}

func (c *Canvas) FillRect(r curve.Rect) {
	r = r.Abs()
	c.FillPolygon([]curve.Point{
		{X: r.X0, Y: r.Y0},
		{X: r.X1, Y: r.Y0},
		{X: r.X1, Y: r.Y1},
		{X: r.X0, Y: r.Y1},
	})
}

func (c *Canvas) FillPolygon(pts []curve.Point) {
	if len(pts) < 3 {
		return
	}
	p := make(curve.BezPath, 0, len(pts)+1)
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	p.ClosePath()
	c.fillPath(p)
}

func (c *Canvas) FillDifference(outer, inner curve.BezPath) {
	box, ok := c.clip(outer)
	if !ok {
		return
	}
	keep := c.coverage(outer, box)
	cut := c.coverage(inner, box)
	for i, a := range cut.Pix {
		keep.Pix[i] = uint8(uint32(keep.Pix[i]) * uint32(255-a) / 255)
	}
	draw.DrawMask(c.img, box, c.fill, image.Point{}, keep, image.Point{}, draw.Over)
}

func (c *Canvas) DrawImage(img image.Image, at image.Point, opacity float64) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	opacity = min(max(opacity, 0), 1)
	if opacity == 0 {
		return
	}
	src := img.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(src.Size())}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
	draw.DrawMask(c.img, dst, img, src.Min, mask, image.Point{}, draw.Over)
}

// fillPath composites the current fill through the coverage of p.
func (c *Canvas) fillPath(p curve.BezPath) {
	box, ok := c.clip(p)
	if !ok {
		return
	}
	c.trace(p, box)
	c.raster.DrawOp = draw.Over
	c.raster.Draw(c.img, box, c.fill, image.Point{})
}

// coverage rasterises p into an alpha mask the size of box.
func (c *Canvas) coverage(p curve.BezPath, box image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	c.trace(p, box)
	c.raster.DrawOp = draw.Src
	c.raster.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// clip returns the pixel box covering p's control points, limited to the
// canvas.
func (c *Canvas) clip(p curve.BezPath) (image.Rectangle, bool) {
	if len(p) == 0 {
		return image.Rectangle{}, false
	}
	cb := p.ControlBox()
	if cb.IsNaN() || cb.IsInf() {
		return image.Rectangle{}, false
	}
	box := image.Rect(
		int(math.Floor(cb.MinX())), int(math.Floor(cb.MinY())),
		int(math.Ceil(cb.MaxX()))+1, int(math.Ceil(cb.MaxY()))+1,
	).Intersect(c.img.Bounds())
	return box, !box.Empty()
}

// trace resets the rasteriser to box and replays p relative to box.Min.
// Every subpath is closed.
func (c *Canvas) trace(p curve.BezPath, box image.Rectangle) {
	z := &c.raster
	z.Reset(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	at := func(pt curve.Point) (float32, float32) {
		return float32(pt.X - ox), float32(pt.Y - oy)
	}
	open := false
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			if open {
				z.ClosePath()
			}
			z.MoveTo(at(el.P0))
			open = true
		case curve.LineToKind:
			z.LineTo(at(el.P0))
		case curve.QuadToKind:
			bx, by := at(el.P0)
			cx, cy := at(el.P1)
			z.QuadTo(bx, by, cx, cy)
		case curve.CubicToKind:
			bx, by := at(el.P0)
			cx, cy := at(el.P1)
			dx, dy := at(el.P2)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case curve.ClosePathKind:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}
