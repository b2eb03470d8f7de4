package render

import (
	"context"
	"image"
	"image/color"

	"honnef.co/go/curve"
)

// Surface is the set of fill primitives the shape renderer draws with.
// Implementations never stroke outlines.
type Surface interface {
	// SetFill sets the color used by the Fill* methods. The color's alpha is
	// applied when compositing.
	SetFill(c color.Color)

	FillEllipse(center curve.Point, rx, ry float64)
	FillRect(r curve.Rect)
	FillPolygon(pts []curve.Point)

	// FillDifference fills the area covered by outer but not by inner.
	FillDifference(outer, inner curve.BezPath)

	// DrawImage composites img with its top-left corner at at, scaling every
	// pixel's alpha by opacity in [0, 1].
	DrawImage(img image.Image, at image.Point, opacity float64)
}

// Presenter puts finished frames on a display.
type Presenter interface {
	Start(ctx context.Context) error
	Stop() error
	// Size returns the display size in pixels, or zero before Start.
	Size() (width, height int)
	Present(frame *image.RGBA) error
}

// NoopPresenter discards frames. It reports a fixed size so a canvas can be
// allocated without a display.
type NoopPresenter struct {
	Width, Height int
	Frames        int
}

func (n *NoopPresenter) Start(ctx context.Context) error { return nil }
func (n *NoopPresenter) Stop() error                     { return nil }
func (n *NoopPresenter) Size() (int, int)                { return n.Width, n.Height }

func (n *NoopPresenter) Present(frame *image.RGBA) error {
	n.Frames++
	return nil
}
