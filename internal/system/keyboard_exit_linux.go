//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// WatchExitKey watches Linux evdev devices under /dev/input/event* and
// invokes onExit once when the key with the given code is pressed.
//
// It is best-effort: if no input devices are available, it logs and returns.
func WatchExitKey(ctx context.Context, l logger, key uint16, onExit func()) {
	if onExit == nil {
		return
	}

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4
	if tvSize <= 0 {
		tvSize, eventSize = 16, 24
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		logInfo(l, "input", "no evdev devices found for exit key %d", key)
		return
	}

	var once sync.Once
	trigger := func() {
		once.Do(func() {
			logInfo(l, "input", "exit key %d pressed", key)
			onExit()
		})
	}

	for _, path := range paths {
		go watchDevice(ctx, path, tvSize, eventSize, func(typ, code uint16, value int32) bool {
			if typ == evKey && code == key && value == 1 {
				trigger()
				return true
			}
			return false
		})
	}
}

// watchDevice reads input_event records from path until ctx is done, the
// device fails, or match returns true.
func watchDevice(ctx context.Context, path string, tvSize, eventSize int, match func(typ, code uint16, value int32) bool) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if match(typ, code, value) {
				// Give the app a moment to unwind; then stop reading.
				time.Sleep(50 * time.Millisecond)
				return
			}
		}
	}
}
