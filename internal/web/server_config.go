package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "CURSORTRAIL_LISTEN"
	EnvDevMode    = "CURSORTRAIL_DEV"

	// DefaultListenAddr keeps the API on loopback unless configured
	// otherwise.
	DefaultListenAddr = "127.0.0.1:8080"
)

// ServerConfig contains settings for running the HTTP server. An empty
// ListenAddr after flags and environment disables the server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// DefaultServerConfigFromEnv applies CURSORTRAIL_LISTEN and CURSORTRAIL_DEV
// over defaultListenAddr.
func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr, ok := os.LookupEnv(EnvListenAddr)
	if !ok {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode}, nil
}
