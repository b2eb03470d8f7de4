package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"honnef.co/go/curve"

	"github.com/rook-computer/cursortrail/internal/pointer"
	"github.com/rook-computer/cursortrail/internal/render"
	"github.com/rook-computer/cursortrail/internal/settings"
	"github.com/rook-computer/cursortrail/internal/shape"
	"github.com/rook-computer/cursortrail/internal/trail"
)

// FrameInterval is the tick period of the render loop (about 60 fps).
const FrameInterval = 16 * time.Millisecond

type App struct {
	Store     *settings.Store
	Presenter render.Presenter
	Pointer   pointer.Source
	Logger    Logger
	// HUD, when set, draws a diagnostics panel over every frame.
	HUD *render.HUD
	// Interval overrides FrameInterval when positive.
	Interval time.Duration

	mu sync.Mutex
	// running is true while the render goroutine is alive. cancel is set
	// from Start until the session is released, which may be later if the
	// parent context ended the loop first.
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// Owned by the render goroutine between Start and Stop.
	canvas *render.Canvas
	trail  *trail.Trail
	images render.ImageCache
	errs   onceLogger
	fps    fpsCounter
}

// Status is a point-in-time summary for the HTTP API.
type Status struct {
	Running bool   `json:"running"`
	Dots    int    `json:"dots"`
	Shape   string `json:"shape"`
}

func New(store *settings.Store, presenter render.Presenter, src pointer.Source) *App {
	if store == nil {
		store = settings.NewMemoryStore(settings.Defaults())
	}
	return &App{Store: store, Presenter: presenter, Pointer: src, Logger: NoopLogger{}}
}

// Start begins rendering the trail with s. The trail starts collapsed at the
// center of the display. Calling Start while running does nothing. The loop
// also ends when ctx is done; Start may then be called again.
func (app *App) Start(ctx context.Context, s settings.Settings) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.running.Load() {
		return nil
	}
	if app.cancel != nil {
		if err := app.release(); err != nil {
			app.Logger.Errorf("app", "release ended session: %v", err)
		}
	}
	if app.Presenter == nil {
		return errors.New("app: no presenter")
	}
	if app.Pointer == nil {
		return errors.New("app: no pointer source")
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}

	s = s.Normalize()
	app.Store.Set(s)

	if err := app.Presenter.Start(ctx); err != nil {
		app.Logger.Errorf("app", "presenter start error: %v", err)
		return fmt.Errorf("start presenter: %w", err)
	}
	w, h := app.Presenter.Size()
	if w <= 0 || h <= 0 {
		w, h = render.CanvasWidth, render.CanvasHeight
	}
	app.canvas = render.NewCanvas(w, h)
	app.trail = trail.New(s.NumDots, curve.Pt(float64(w)/2, float64(h)/2))
	app.images = render.ImageCache{Logger: app.Logger}
	app.errs = onceLogger{Logger: app.Logger}
	app.fps = fpsCounter{}
	app.Logger.Infof("app", "started: %dx%d canvas, %d dots, shape %s", w, h, s.NumDots, s.Shape)

	loopCtx, cancel := context.WithCancel(ctx)
	app.cancel = cancel
	app.running.Store(true)
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer app.running.Store(false)
		app.runLoop(loopCtx)
	}()
	return nil
}

func (app *App) runLoop(ctx context.Context) {
	interval := app.Interval
	if interval <= 0 {
		interval = FrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.OnTick()
		}
	}
}

// OnTick advances the trail one step and presents a new frame. It runs on
// the render goroutine; tests may call it directly while the loop is idle.
func (app *App) OnTick() {
	if app.canvas == nil || app.trail == nil {
		return
	}
	x, y := app.Pointer.Position()

	if changed, err := app.Store.Refresh(); err != nil {
		app.errs.errorf("settings", "reload %s: %v", app.Store.Path(), err)
	} else {
		app.errs.clear("settings")
		if changed {
			app.Logger.Infof("settings", "reloaded %s", app.Store.Path())
		}
	}
	s := app.Store.Snapshot().Normalize()
	img := app.images.Get(s.ImagePath)

	if app.trail.Sync(s.NumDots) {
		app.Logger.Infof("trail", "reset to %d dots", s.NumDots)
	}
	app.trail.Step(curve.Pt(float64(x), float64(y)), s.FollowSpeed, s.LagSpeed)

	app.canvas.Clear(render.Background)
	kind := s.ShapeKind()
	n := app.trail.Len()
	for i, pt := range app.trail.Points() {
		size, alpha := trail.DotStyle(i, n, s.MaxSize)
		shape.Draw(app.canvas, kind, pt, size, s.Fill(alpha), img)
	}

	fps := app.fps.tick(time.Now())
	if app.HUD != nil {
		app.HUD.Draw(app.canvas.Image(), []string{
			fmt.Sprintf("dots=%d shape=%s fps=%.0f", n, kind, fps),
			fmt.Sprintf("pointer=%d,%d", x, y),
		})
	}

	if err := app.Presenter.Present(app.canvas.Image()); err != nil {
		app.errs.errorf("present", "%v", err)
	} else {
		app.errs.clear("present")
	}
}

// Stop halts the render loop, presents a cleared frame so no partial trail
// is left on screen and releases the presenter. Calling Stop while stopped
// does nothing.
func (app *App) Stop() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.cancel == nil {
		return nil
	}
	return app.release()
}

// release ends the current session. The caller holds mu.
func (app *App) release() error {
	app.cancel()
	app.cancel = nil
	app.wg.Wait()

	var errs []error
	app.canvas.Clear(render.Background)
	if err := app.Presenter.Present(app.canvas.Image()); err != nil {
		errs = append(errs, fmt.Errorf("present cleared frame: %w", err))
	}
	if err := app.Presenter.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop presenter: %w", err))
	}
	app.Logger.Infof("app", "stopped")
	return errors.Join(errs...)
}

func (app *App) Running() bool {
	return app.running.Load()
}

func (app *App) Status() Status {
	s := app.Store.Snapshot().Normalize()
	return Status{Running: app.Running(), Dots: s.NumDots, Shape: s.Shape}
}

// Frame returns the last rendered frame, or nil before the first Start.
// It must not be read while the loop is running.
func (app *App) Frame() *image.RGBA {
	if app.canvas == nil {
		return nil
	}
	return app.canvas.Image()
}

// fpsCounter reports frames per second averaged over roughly one second.
type fpsCounter struct {
	since  time.Time
	frames int
	rate   float64
}

func (c *fpsCounter) tick(now time.Time) float64 {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	if elapsed := now.Sub(c.since); elapsed >= time.Second {
		c.rate = float64(c.frames) / elapsed.Seconds()
		c.since, c.frames = now, 0
	}
	return c.rate
}
