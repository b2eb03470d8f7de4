package render

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/skip2/go-qrcode"
)

// qrSizePx is the side of a generated code. Dots are scaled down from it, so
// it only needs to be at least the largest dot.
const qrSizePx = 256

var qrLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// QRImage renders the text after QRPrefix as a QR code to be used as a dot
// image. Light modules are transparent so only the dark ones stamp onto the
// trail. A leading "L:", "M:", "Q:" or "H:" picks the error recovery level;
// the default is M.
func QRImage(payload string) (image.Image, error) {
	level := qrcode.Medium
	if name, rest, ok := strings.Cut(payload, ":"); ok {
		if l, known := qrLevels[name]; known {
			level, payload = l, rest
		}
	}
	if payload == "" {
		return nil, errors.New("empty payload")
	}

	code, err := qrcode.New(payload, level)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	code.BackgroundColor = color.Transparent
	code.ForegroundColor = color.Black
	return code.Image(qrSizePx), nil
}
