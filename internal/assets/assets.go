// Package assets holds binary resources compiled into the executables.
package assets

import "golang.org/x/image/font/gofont/goregular"

// FontTTF is the TrueType font used for on-screen diagnostics.
var FontTTF = goregular.TTF
