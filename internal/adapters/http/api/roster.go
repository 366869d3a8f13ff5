package api

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// RosterDependencies defines the roster import operation.
type RosterDependencies interface {
	ImportRoster(ctx context.Context, id, key string, r io.Reader) (Session, error)
}

// RosterHandler handles roster CSV uploads.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleImport handles POST /sessions/{id}/roster requests. The body is the
// CSV file itself.
func (h *RosterHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_roster"
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	sess, err := h.deps.ImportRoster(r.Context(), r.PathValue("id"), key, body)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
