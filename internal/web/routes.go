package web

import (
	"context"
	"net/http"
)

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(ctx context.Context, mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(ctx, deps)))
}

// NewDefaultMux builds the mux used by the device binary. Everything
// outside /api/v1/ is a JSON 404.
func NewDefaultMux(ctx context.Context, deps APIV1Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(ctx, mux, deps)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
	})
	return mux
}
