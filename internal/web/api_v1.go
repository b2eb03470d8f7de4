package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rook-computer/cursortrail/internal/settings"
	"github.com/rook-computer/cursortrail/internal/shape"
)

// maxSettingsBody bounds PUT /settings request bodies.
const maxSettingsBody = 64 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Running bool   `json:"running"`
	Dots    int    `json:"dots"`
	Shape   string `json:"shape"`
}

// apiV1Router serves the API relative to /api/v1. Lifecycle requests start
// the overlay with ctx rather than the request context, so it outlives the
// request.
func apiV1Router(ctx context.Context, deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) { handleSettings(w, r, deps) })
	mux.HandleFunc("/shapes", handleShapes)
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) { handleStart(ctx, w, r, deps) })
	mux.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) { handleStop(w, r, deps) })
	return mux
}

func handleSettings(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, deps.Settings.Snapshot())
	case http.MethodPut:
		s, err := decodeSettings(w, r)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_settings", err.Error())
			return
		}
		if err := deps.Settings.Update(s); err != nil {
			deps.Logger.Errorf("web", "save settings: %v", err)
			writeAPIError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		deps.Logger.Infof("web", "settings updated: %d dots, shape %s", s.NumDots, s.Shape)
		writeJSON(w, http.StatusOK, s)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

// decodeSettings reads a settings document and rejects values the overlay
// would otherwise have to clamp. Speeds are not range checked.
func decodeSettings(w http.ResponseWriter, r *http.Request) (settings.Settings, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	if err != nil {
		return settings.Settings{}, err
	}
	s, err := settings.Decode(body)
	if err != nil {
		return settings.Settings{}, err
	}

	var problems []string
	if s.NumDots < 1 {
		problems = append(problems, "num_dots must be at least 1")
	}
	if s.MaxSize < 1 {
		problems = append(problems, "max_size must be at least 1")
	}
	for i, c := range s.Color {
		if c < 0 || c > 255 {
			problems = append(problems, fmt.Sprintf("color[%d] must be within 0..255", i))
		}
	}
	if _, ok := shape.Parse(s.Shape); !ok {
		problems = append(problems, fmt.Sprintf("unknown shape %q", s.Shape))
	}
	if len(problems) > 0 {
		return settings.Settings{}, errors.New(strings.Join(problems, "; "))
	}
	return s.Normalize(), nil
}

func handleShapes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, shape.Names())
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	s := deps.Settings.Snapshot().Normalize()
	resp := statusResponse{Dots: s.NumDots, Shape: s.Shape}
	if deps.Overlay != nil {
		resp.Running = deps.Overlay.Running()
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleStart(ctx context.Context, w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if deps.Overlay == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "overlay not configured")
		return
	}
	if err := deps.Overlay.Start(ctx, deps.Settings.Snapshot()); err != nil {
		deps.Logger.Errorf("web", "start overlay: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "start_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleStop(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if deps.Overlay == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "overlay not configured")
		return
	}
	if err := deps.Overlay.Stop(); err != nil {
		deps.Logger.Errorf("web", "stop overlay: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "stop_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
