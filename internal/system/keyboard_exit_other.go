//go:build !linux

package system

import "context"

// WatchExitKey is a no-op outside linux; there is no evdev to read.
func WatchExitKey(ctx context.Context, l logger, key uint16, onExit func()) {
	logInfo(l, "input", "exit key watcher unavailable on this platform")
}
