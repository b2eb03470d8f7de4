package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
)

// DefaultFramebuffer is the device opened when FBPresenter.Path is empty.
const DefaultFramebuffer = "/dev/fb0"

// FBPresenter shows frames on a Linux framebuffer device.
type FBPresenter struct {
	Path   string
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	fbDev   *fb.Device
	running atomic.Bool
}

func NewFBPresenter(path string) *FBPresenter { return &FBPresenter{Path: path} }

func (p *FBPresenter) Start(ctx context.Context) error {
	path := p.Path
	if path == "" {
		path = DefaultFramebuffer
	}
	dev, err := fb.Open(path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	p.fbDev = dev
	if p.Logger != nil {
		bounds := dev.Bounds()
		p.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	p.running.Store(true)
	return nil
}

func (p *FBPresenter) Stop() error {
	if !p.running.Swap(false) {
		return nil
	}
	if p.fbDev != nil {
		p.fbDev.Close()
		p.fbDev = nil
	}
	return nil
}

func (p *FBPresenter) Size() (int, int) {
	if p.fbDev == nil {
		return 0, 0
	}
	b := p.fbDev.Bounds()
	return b.Dx(), b.Dy()
}

func (p *FBPresenter) Present(frame *image.RGBA) error {
	if !p.running.Load() || p.fbDev == nil {
		return nil
	}
	blitToFB(p.fbDev, frame)
	return nil
}

// blitToFB copies frame onto the device, sampling nearest-neighbour when the
// sizes differ. The framebuffer has no alpha channel, so every pixel is
// written opaque.
func blitToFB(dev *fb.Device, frame *image.RGBA) {
	bounds := dev.Bounds()
	fbWidth, fbHeight := bounds.Dx(), bounds.Dy()
	srcWidth, srcHeight := frame.Bounds().Dx(), frame.Bounds().Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return
	}
	for y := 0; y < fbHeight; y++ {
		sy := frame.Bounds().Min.Y + (y*srcHeight)/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := frame.Bounds().Min.X + (x*srcWidth)/fbWidth
			pixel := frame.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
