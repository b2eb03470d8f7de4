package web

import (
	"context"

	"github.com/rook-computer/cursortrail/internal/settings"
)

// Overlay is the lifecycle the API toggles. *app.App implements it.
type Overlay interface {
	Start(ctx context.Context, s settings.Settings) error
	Stop() error
	Running() bool
}

// SettingsStore is the shared settings holder. *settings.Store implements it.
type SettingsStore interface {
	Snapshot() settings.Settings
	Update(s settings.Settings) error
}

// sysLogger matches the logging shape used across the binary.
type sysLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Overlay  Overlay
	Settings SettingsStore
	Logger   sysLogger
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Settings == nil {
		out.Settings = settings.NewMemoryStore(settings.Defaults())
	}
	if out.Logger == nil {
		out.Logger = noopLogger{}
	}
	return out
}
