// Command simulator renders the cursor trail without a display. With
// -frames it drives a scripted pointer for a fixed number of frames and
// writes them as PNG files and/or an MP4; with -frames 0 it runs in real
// time and serves the settings API until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rook-computer/cursortrail/internal/app"
	"github.com/rook-computer/cursortrail/internal/pointer"
	"github.com/rook-computer/cursortrail/internal/render"
	"github.com/rook-computer/cursortrail/internal/settings"
	"github.com/rook-computer/cursortrail/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	settingsPath := flag.String("settings", "", "settings file; empty uses built-in defaults")
	script := flag.String("script", "lissajous", "pointer script: "+strings.Join(pointer.ScriptNames(), " | "))
	period := flag.Int("period", 240, "frames per loop of the pointer script")
	frames := flag.Int("frames", 240, "frames to render; 0 runs in real time until interrupted")
	width := flag.Int("width", 640, "canvas width")
	height := flag.Int("height", 360, "canvas height")
	pngDir := flag.String("png-dir", "", "write frames as PNG files to this directory")
	every := flag.Int("every", 1, "write every Nth frame as PNG")
	mp4 := flag.String("mp4", "", "write an MP4 to this path (requires ffmpeg)")
	hud := flag.Bool("hud", false, "draw the diagnostics panel")
	verbose := flag.Bool("v", false, "log to stderr")
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address in real-time mode; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	if *width <= 0 || *height <= 0 {
		fmt.Println("width and height must be positive")
		os.Exit(2)
	}
	src, err := pointer.ParseScript(*script, *width, *height, *period)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	store := settings.NewMemoryStore(settings.Defaults())
	if *settingsPath != "" {
		if store, err = settings.NewStore(*settingsPath); err != nil {
			logger.Errorf("settings", "using defaults: %v", err)
		}
	}

	rec := &recorder{
		width:   *width,
		height:  *height,
		pngDir:  *pngDir,
		every:   *every,
		mp4Path: *mp4,
		fps:     1 / app.FrameInterval.Seconds(),
		limit:   max(*frames, 0),
	}

	a := app.New(store, rec, src)
	a.Logger = logger
	if *hud {
		if a.HUD, err = render.NewHUD(14); err != nil {
			logger.Errorf("hud", "font: %v", err)
		}
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *frames > 0 {
		if err := renderOffline(processCtx, a, store.Snapshot(), *frames); err != nil {
			fmt.Println("render error:", err)
			os.Exit(1)
		}
		if rec.err != nil {
			fmt.Println("output error:", rec.err)
			os.Exit(1)
		}
		fmt.Printf("rendered %d frames (%d png)\n", rec.frames, rec.pngs)
		return
	}

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode}, web.APIV1Deps{
		Overlay:  a,
		Settings: store,
		Logger:   logger,
	})
	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}
	if err := a.Start(processCtx, store.Snapshot()); err != nil {
		fmt.Println("start error:", err)
		os.Exit(1)
	}
	fmt.Println("cursortrail simulator running; API: http://" + displayAddr(server.ListenAddr()) + "/api/v1/")

	<-processCtx.Done()
	if err := a.Stop(); err != nil {
		fmt.Println("stop error:", err)
	}
	_ = server.Stop()
	fmt.Printf("rendered %d frames (%d png)\n", rec.frames, rec.pngs)
}

// renderOffline drives the app one tick per frame as fast as possible. The
// ticker is parked so only these calls advance the trail.
func renderOffline(ctx context.Context, a *app.App, s settings.Settings, frames int) error {
	a.Interval = 1<<63 - 1
	if err := a.Start(ctx, s); err != nil {
		return err
	}
	for i := 0; i < frames && ctx.Err() == nil; i++ {
		a.OnTick()
	}
	return a.Stop()
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	return strings.Replace(addr, "[::]", "127.0.0.1", 1)
}
