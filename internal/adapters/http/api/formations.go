package api

import (
	"net/http"

	"github.com/okian/lineup/internal/domain/formation"
)

// FormationsHandler serves the formation catalog.
type FormationsHandler struct {
	templates []formation.Template
}

// NewFormationsHandler creates a handler over the built-in catalog.
func NewFormationsHandler() *FormationsHandler {
	return &FormationsHandler{templates: formation.All()}
}

// HandleList handles GET /formations requests.
func (h *FormationsHandler) HandleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.templates)
}
