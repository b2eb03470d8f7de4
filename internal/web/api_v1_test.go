package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/cursortrail/internal/settings"
)

type fakeOverlay struct {
	running  bool
	started  settings.Settings
	ctx      context.Context
	startErr error
}

func (f *fakeOverlay) Start(ctx context.Context, s settings.Settings) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.running, f.started, f.ctx = true, s, ctx
	return nil
}

func (f *fakeOverlay) Stop() error {
	f.running = false
	return nil
}

func (f *fakeOverlay) Running() bool { return f.running }

func newTestMux(t *testing.T, overlay Overlay) (http.Handler, *settings.Store) {
	t.Helper()
	store, _ := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	return NewDefaultMux(context.Background(), APIV1Deps{Overlay: overlay, Settings: store}), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestGetSettings(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodGet, "/api/v1/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if diff := cmp.Diff(settings.Defaults(), decode[settings.Settings](t, rec)); diff != "" {
		t.Errorf("GET /settings mismatch (-want +got):\n%s", diff)
	}
}

func TestPutSettings(t *testing.T) {
	h, store := newTestMux(t, nil)
	body := `{"num_dots": 4, "follow_speed": 0.5, "lag_speed": 0.3, "max_size": 12.5, "color": [255, 0, 0], "shape": "star", "image_path": ""}`
	rec := do(t, h, http.MethodPut, "/api/v1/settings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	want := settings.Settings{
		NumDots:     4,
		FollowSpeed: 0.5,
		LagSpeed:    0.3,
		MaxSize:     12.5,
		Color:       [3]int{255, 0, 0},
		Shape:       "Star",
	}
	if diff := cmp.Diff(want, decode[settings.Settings](t, rec)); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, store.Snapshot()); diff != "" {
		t.Errorf("store mismatch (-want +got):\n%s", diff)
	}
	onDisk, err := settings.Load(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, onDisk); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestPutSettingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"syntax", `{`, "invalid_settings"},
		{"unknown key", `{"dots": 3}`, "invalid_settings"},
		{"zero dots", `{"num_dots": 0}`, "num_dots"},
		{"size", `{"max_size": -1}`, "max_size"},
		{"color", `{"color": [0, 256, 0]}`, "color[1]"},
		{"shape", `{"shape": "Blob"}`, "Blob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newTestMux(t, nil)
			rec := do(t, h, http.MethodPut, "/api/v1/settings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body %q does not mention %q", rec.Body.String(), tt.want)
			}
			if store.Snapshot() != settings.Defaults() {
				t.Error("rejected request changed the settings")
			}
		})
	}
}

func TestSpeedsAreNotRangeChecked(t *testing.T) {
	h, store := newTestMux(t, nil)
	rec := do(t, h, http.MethodPut, "/api/v1/settings", `{"follow_speed": 1.5, "lag_speed": -0.2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if s := store.Snapshot(); s.FollowSpeed != 1.5 || s.LagSpeed != -0.2 {
		t.Errorf("speeds = %v, %v", s.FollowSpeed, s.LagSpeed)
	}
}

func TestStartStopStatus(t *testing.T) {
	overlay := &fakeOverlay{}
	h, _ := newTestMux(t, overlay)

	st := decode[statusResponse](t, do(t, h, http.MethodGet, "/api/v1/status", ""))
	if diff := cmp.Diff(statusResponse{Running: false, Dots: 10, Shape: "Circle"}, st); diff != "" {
		t.Errorf("status before start (-want +got):\n%s", diff)
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/start", ""); rec.Code != http.StatusOK {
		t.Fatalf("start status = %d", rec.Code)
	}
	if !overlay.running || overlay.started != settings.Defaults() {
		t.Fatalf("overlay = %+v", overlay)
	}
	if overlay.ctx.Err() != nil {
		t.Fatal("overlay was started with the finished request context")
	}
	if st := decode[statusResponse](t, do(t, h, http.MethodGet, "/api/v1/status", "")); !st.Running {
		t.Error("status does not report running")
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/stop", ""); rec.Code != http.StatusOK {
		t.Fatalf("stop status = %d", rec.Code)
	}
	if overlay.running {
		t.Error("overlay still running")
	}
}

func TestStartError(t *testing.T) {
	h, _ := newTestMux(t, &fakeOverlay{startErr: errors.New("no framebuffer")})
	rec := do(t, h, http.MethodPost, "/api/v1/start", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[apiError](t, rec); got.Error != "start_failed" || got.Message != "no framebuffer" {
		t.Errorf("error = %+v", got)
	}
}

func TestLifecycleWithoutOverlay(t *testing.T) {
	h, _ := newTestMux(t, nil)
	if rec := do(t, h, http.MethodPost, "/api/v1/start", ""); rec.Code != http.StatusNotImplemented {
		t.Errorf("start status = %d", rec.Code)
	}
}

func TestShapes(t *testing.T) {
	h, _ := newTestMux(t, nil)
	got := decode[[]string](t, do(t, h, http.MethodGet, "/api/v1/shapes", ""))
	if len(got) != 14 || got[0] != "Circle" || got[13] != "Image" {
		t.Errorf("shapes = %v", got)
	}
}

func TestMethodChecks(t *testing.T) {
	h, _ := newTestMux(t, &fakeOverlay{})
	tests := []struct {
		method, path, allow string
	}{
		{http.MethodPost, "/api/v1/settings", "GET, PUT"},
		{http.MethodDelete, "/api/v1/settings", "GET, PUT"},
		{http.MethodGet, "/api/v1/start", "POST"},
		{http.MethodGet, "/api/v1/stop", "POST"},
		{http.MethodPost, "/api/v1/status", "GET"},
		{http.MethodPut, "/api/v1/shapes", "GET"},
	}
	for _, tt := range tests {
		rec := do(t, h, tt.method, tt.path, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s = %d, want 405", tt.method, tt.path, rec.Code)
			continue
		}
		if got := rec.Header().Get("Allow"); got != tt.allow {
			t.Errorf("%s %s Allow = %q, want %q", tt.method, tt.path, got, tt.allow)
		}
	}
}

func TestNotFound(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodGet, "/index.html", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[apiError](t, rec); got.Error != "not_found" {
		t.Errorf("error = %+v", got)
	}
}

func TestDevCORS(t *testing.T) {
	h := WithDevCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/settings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("passthrough status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin without Origin = %q", got)
	}
}
