// Package system holds the console and input plumbing of the device binary.
// Everything here is best-effort: failures are logged and the overlay keeps
// running.
package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics switches the active console to graphics mode and hides the
// text cursor so it does not blink through the overlay. The returned
// function restores the console.
func EnterGraphics(l logger) (restore func()) {
	if err := SetGraphicsMode(); err != nil {
		logErr(l, "tty", "KD_GRAPHICS failed: %v", err)
	} else {
		logInfo(l, "tty", "KD_GRAPHICS set")
	}
	if err := HideCursor(); err != nil {
		logErr(l, "tty", "hide cursor failed: %v", err)
	}

	return func() {
		if err := ShowCursor(); err != nil {
			logErr(l, "tty", "show cursor failed: %v", err)
		}
		if err := RestoreTextMode(); err != nil {
			logErr(l, "tty", "KD_TEXT failed: %v", err)
		} else {
			logInfo(l, "tty", "KD_TEXT set")
		}
	}
}

func logInfo(l logger, component, format string, args ...interface{}) {
	if l != nil {
		l.Infof(component, format, args...)
	}
}

func logErr(l logger, component, format string, args ...interface{}) {
	if l != nil {
		l.Errorf(component, format, args...)
	}
}
