package render

import "image/color"

var (
	// Background is painted under the trail on displays without an alpha
	// channel, such as the Linux framebuffer.
	Background = color.RGBA{R: 0x0F, G: 0x16, B: 0x10, A: 0xFF} // #0f1610

	// Fallback canvas size when the presenter cannot report one.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)
