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
	"github.com/rook-computer/cursortrail/internal/pointer/desktop"
	"github.com/rook-computer/cursortrail/internal/render"
	"github.com/rook-computer/cursortrail/internal/settings"
	"github.com/rook-computer/cursortrail/internal/system"
	"github.com/rook-computer/cursortrail/internal/web"
)

const (
	envStdioLog = "CURSORTRAIL_STDIO_LOG"
	envSettings = "CURSORTRAIL_SETTINGS"
)

type options struct {
	debug        bool
	settingsPath string
	fbPath       string
	pointerMode  string
	hud          bool
	exitKey      string
	console      bool
	server       web.ServerConfig
}

func main() {
	serverDefaults, err := web.DefaultServerConfigFromEnv(web.DefaultListenAddr)
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	var opts options
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging to ./cursortrail-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.StringVar(&opts.settingsPath, "settings", envOr(envSettings, settings.DefaultPath), "settings file; also configurable via "+envSettings)
	flag.StringVar(&opts.server.ListenAddr, "listen", serverDefaults.ListenAddr, "settings API listen address, empty disables; also configurable via "+web.EnvListenAddr)
	flag.BoolVar(&opts.server.DevMode, "dev", serverDefaults.DevMode, "enable permissive CORS; also configurable via "+web.EnvDevMode)
	flag.StringVar(&opts.fbPath, "fb", render.DefaultFramebuffer, "framebuffer device")
	flag.StringVar(&opts.pointerMode, "pointer", "poll", "pointer source: poll | hook")
	flag.BoolVar(&opts.hud, "hud", false, "draw the diagnostics panel")
	flag.StringVar(&opts.exitKey, "exit-key", "f4", "key that exits the overlay, empty disables ("+strings.Join(system.KeyNames(), ", ")+")")
	flag.BoolVar(&opts.console, "console", true, "switch the console to graphics mode while running")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if opts.debug {
		f, err := os.OpenFile("./cursortrail-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	if err := run(opts, logger); err != nil {
		logger.Errorf("main", "%v", err)
		fmt.Println("cursortrail:", err)
		os.Exit(1)
	}
}

func run(opts options, logger app.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := settings.NewStore(opts.settingsPath)
	if err != nil {
		logger.Errorf("settings", "falling back to defaults: %v", err)
	}

	src, err := newPointer(ctx, opts.pointerMode, logger)
	if err != nil {
		return err
	}
	if h, ok := src.(*desktop.Hook); ok {
		defer h.Stop()
	}

	presenter := render.NewFBPresenter(opts.fbPath)
	presenter.Logger = logger

	a := app.New(store, presenter, src)
	a.Logger = logger
	if opts.hud {
		if a.HUD, err = render.NewHUD(16); err != nil {
			logger.Errorf("hud", "font parse failed, using bitmap font: %v", err)
		}
	}

	if opts.exitKey != "" {
		code, ok := system.ParseKey(opts.exitKey)
		if !ok {
			return fmt.Errorf("unknown exit key %q", opts.exitKey)
		}
		system.WatchExitKey(ctx, logger, code, cancel)
	}

	var server web.Server = web.NoopServer{}
	if opts.server.ListenAddr != "" {
		server = web.NewHTTPServer(opts.server, web.APIV1Deps{Overlay: a, Settings: store, Logger: logger})
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	defer server.Stop()

	if opts.console {
		restore := system.EnterGraphics(logger)
		defer restore()
	}

	if err := a.Start(ctx, store.Snapshot()); err != nil {
		return err
	}
	<-ctx.Done()
	logger.Infof("main", "shutting down")
	return a.Stop()
}

func newPointer(ctx context.Context, mode string, logger app.Logger) (pointer.Source, error) {
	switch strings.ToLower(mode) {
	case "", "poll":
		return desktop.Robot{}, nil
	case "hook":
		h := desktop.NewHook()
		if err := h.Start(ctx); err != nil {
			return nil, fmt.Errorf("pointer hook: %w", err)
		}
		logger.Infof("pointer", "global mouse hook installed")
		return h, nil
	default:
		return nil, fmt.Errorf("unknown pointer source %q (want poll or hook)", mode)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
