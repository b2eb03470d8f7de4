package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/cursortrail/internal/assets"
	"github.com/rook-computer/cursortrail/internal/render/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	hudText  = color.RGBA{R: 0xC4, G: 0xCF, B: 0xD1, A: 0xFF} // #c4cfd1
	hudPanel = color.RGBA{R: 0x14, G: 0x20, B: 0x15, A: 0xC0}
)

const (
	hudMargin  = 12
	hudPadding = 8
)

// HUD draws a small diagnostics panel in the top-left corner of a frame.
type HUD struct {
	face font.Face
}

// NewHUD loads the embedded font at sizePt. If the font cannot be parsed the
// HUD falls back to a fixed 7x13 bitmap face and reports the error.
func NewHUD(sizePt float64) (*HUD, error) {
	tt, err := truetype.Parse(assets.FontTTF)
	if err != nil {
		return &HUD{face: basicfont.Face7x13}, err
	}
	face := truetype.NewFace(tt, &truetype.Options{Size: sizePt, DPI: 72, Hinting: font.HintingFull})
	return &HUD{face: face}, nil
}

// Draw renders lines top to bottom onto dst.
func (h *HUD) Draw(dst *image.RGBA, lines []string) {
	if len(lines) == 0 {
		return
	}
	face := h.face
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(hudText), Face: face}
	width := 0
	for _, line := range lines {
		width = max(width, drawer.MeasureString(line).Ceil())
	}
	area := layout.Inset(dst.Bounds(), hudMargin)
	panel := layout.AnchorTopLeft(area, width+2*hudPadding, lineHeight*len(lines)+2*hudPadding)
	draw.Draw(dst, panel, image.NewUniform(hudPanel), image.Point{}, draw.Over)

	text := layout.Inset(panel, hudPadding)
	for i, line := range lines {
		baseline := text.Min.Y + ascent + i*lineHeight
		drawer.Dot = fixed.P(text.Min.X, baseline)
		drawer.DrawString(line)
	}
}
