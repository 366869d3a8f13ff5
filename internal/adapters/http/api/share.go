package api

import (
	"context"
	"net/http"
)

// ShareDependencies defines the share text export.
type ShareDependencies interface {
	ShareText(ctx context.Context, id string) (string, error)
}

// ShareHandler handles share text requests.
type ShareHandler struct {
	deps ShareDependencies
}

// NewShareHandler creates a new share handler.
func NewShareHandler(deps ShareDependencies) *ShareHandler {
	return &ShareHandler{deps: deps}
}

// HandleShare handles GET /sessions/{id}/share requests.
func (h *ShareHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	const op = "api.share"
	text, err := h.deps.ShareText(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
