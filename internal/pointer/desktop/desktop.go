// Package desktop reads the real pointer position from the host desktop.
package desktop

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// Robot polls the cursor location on every call.
type Robot struct{}

func (Robot) Position() (int, int) {
	return robotgo.Location()
}

// Hook follows mouse move and drag events from a global input hook and
// reports the most recent position. Until the first event arrives it falls
// back to polling.
type Hook struct {
	pos  atomic.Int64
	seen atomic.Bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewHook() *Hook {
	return &Hook{}
}

// Start installs the global hook. The hook is removed when ctx is cancelled
// or Stop is called.
func (h *Hook) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done != nil {
		select {
		case <-h.done:
		default:
			return nil
		}
	}
	events := hook.Start()
	stop, done := make(chan struct{}), make(chan struct{})
	h.stop, h.done = stop, done

	go func() {
		defer close(done)
		// End drains the event channel but never closes it.
		defer hook.End()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case ev := <-events:
				if ev.Kind == hook.MouseMove || ev.Kind == hook.MouseDrag {
					h.store(int(ev.X), int(ev.Y))
				}
			}
		}
	}()
	return nil
}

func (h *Hook) Stop() error {
	h.mu.Lock()
	stop, done := h.stop, h.done
	h.stop, h.done = nil, nil
	h.mu.Unlock()
	if stop == nil {
		return nil
	}

	close(stop)
	<-done
	return nil
}

func (h *Hook) Position() (int, int) {
	if !h.seen.Load() {
		return robotgo.Location()
	}
	return unpack(h.pos.Load())
}

func (h *Hook) store(x, y int) {
	h.pos.Store(pack(x, y))
	h.seen.Store(true)
}

func pack(x, y int) int64 {
	return int64(int32(x))<<32 | int64(uint32(int32(y)))
}

func unpack(v int64) (int, int) {
	return int(int32(v >> 32)), int(int32(v))
}
