package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/moderation"
)

// Moderation exposes the review queue to editors and admins.
type Moderation struct {
	engine *moderation.Engine
}

// NewModeration creates a new Moderation handler group.
func NewModeration(engine *moderation.Engine) *Moderation {
	return &Moderation{engine: engine}
}

// Queue refreshes and returns the pending moderation queue, oldest first.
func (m *Moderation) Queue(w http.ResponseWriter, r *http.Request) {
	if err := m.engine.Refresh(); err != nil {
		slog.Error("moderation queue refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load the moderation queue")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": m.engine.Pending()})
}

// Approve records an approval decision for the article in the URL.
func (m *Moderation) Approve(w http.ResponseWriter, r *http.Request) {
	m.decide(w, r, m.engine.Approve)
}

// Reject records a rejection. The article leaves the queue for good.
func (m *Moderation) Reject(w http.ResponseWriter, r *http.Request) {
	m.decide(w, r, m.engine.Reject)
}

func (m *Moderation) decide(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := fn(id); err != nil {
		slog.Error("moderation decision failed", "article", id, "error", err)
		writeError(w, http.StatusInternalServerError, "decision could not be recorded")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id.String(),
		"pending": m.engine.Pending(),
	})
}
