package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// QRPrefix marks an image reference that is generated as a QR code of the
// remaining text instead of being read from disk.
const QRPrefix = "qr:"

// LoadImage resolves an image reference from the settings. An empty
// reference yields (nil, nil). Files may be PNG, JPEG, GIF, BMP or WebP.
func LoadImage(ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	if payload, ok := strings.CutPrefix(ref, QRPrefix); ok {
		img, err := QRImage(payload)
		if err != nil {
			return nil, fmt.Errorf("qr image %q: %w", payload, err)
		}
		return img, nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

// ImageCache keeps the decoded image for the last reference it was asked
// for, so the file is only read again when the reference changes.
type ImageCache struct {
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	ref    string
	img    image.Image
	loaded bool
}

// Get returns the image for ref, or nil when it cannot be loaded.
func (c *ImageCache) Get(ref string) image.Image {
	if c.loaded && ref == c.ref {
		return c.img
	}
	c.ref, c.loaded = ref, true
	img, err := LoadImage(ref)
	if err != nil {
		c.img = nil
		if c.Logger != nil {
			c.Logger.Errorf("image", "load %q failed, image shape disabled: %v", ref, err)
		}
		return nil
	}
	c.img = img
	if c.Logger != nil && img != nil {
		b := img.Bounds()
		c.Logger.Infof("image", "loaded %q (%dx%d)", ref, b.Dx(), b.Dy())
	}
	return img
}
