// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/confirm"
	"newsdesk/internal/middleware"
	"newsdesk/internal/notify"
	"newsdesk/internal/publication"
	"newsdesk/internal/storage"
)

// Publication exposes the editorial overview: every article with its
// cover flag, plus edit and delete operations.
type Publication struct {
	manager  *publication.Manager
	confirms *confirm.Service
	notices  *notify.Service
	files    *storage.Client
}

// NewPublication creates a new Publication handler group. files may be
// nil when object storage is not configured; cover cleanup on delete is
// then skipped.
func NewPublication(manager *publication.Manager, confirms *confirm.Service, notices *notify.Service, files *storage.Client) *Publication {
	return &Publication{
		manager:  manager,
		confirms: confirms,
		notices:  notices,
		files:    files,
	}
}

// List refreshes and returns every article, newest first.
func (p *Publication) List(w http.ResponseWriter, r *http.Request) {
	if err := p.manager.Refresh(); err != nil {
		slog.Error("article listing refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load articles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": p.manager.Articles()})
}

// TogglePublish flips the front-page cover flag. The client sends the
// value it observed so the flip matches what the user saw, even if the
// listing has moved on since.
func (p *Publication) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var req struct {
		IsCover bool `json:"is_cover"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := p.manager.TogglePublish(id, req.IsCover); err != nil {
		slog.Error("cover toggle failed", "article", id, "error", err)
		writeError(w, http.StatusInternalServerError, "cover flag could not be changed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":       id.String(),
		"is_cover": !req.IsCover,
	})
}

// Edit overwrites the editable fields of an article. The approval state
// and creation timestamp never change here.
func (p *Publication) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var req struct {
		Title         string  `json:"title"`
		Content       string  `json:"content"`
		CoverImageURL *string `json:"cover_image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required."
	}
	if req.Content == "" {
		fieldErrors["content"] = "Content is required."
	}
	if len(fieldErrors) > 0 {
		writeFieldErrors(w, fieldErrors)
		return
	}

	if err := p.manager.Edit(id, req.Title, req.Content, req.CoverImageURL); err != nil {
		slog.Error("article edit failed", "article", id, "error", err)
		writeError(w, http.StatusInternalServerError, "article could not be updated")
		return
	}

	p.pushNotice(r, notify.LevelSuccess, "Article updated.")
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// ConfirmDelete is the first step of the two-step delete: it issues a
// short-lived one-shot token the client must present on the DELETE.
// A single click cannot delete an article.
func (p *Publication) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	token, err := p.confirms.Issue(r.Context(), deleteAction(id))
	if err != nil {
		slog.Error("confirmation issue failed", "article", id, "error", err)
		writeError(w, http.StatusInternalServerError, "confirmation could not be issued")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"confirm_token": token})
}

// Delete performs the second step: the X-Confirm-Token header must carry
// an unexpired token from ConfirmDelete. Without one the request is
// rejected with 409 and nothing is deleted.
func (p *Publication) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	token := r.Header.Get("X-Confirm-Token")
	if token == "" {
		writeError(w, http.StatusConflict, "deletion requires confirmation")
		return
	}
	ok, err := p.confirms.Redeem(r.Context(), token, deleteAction(id))
	if err != nil {
		slog.Error("confirmation redeem failed", "article", id, "error", err)
		writeError(w, http.StatusInternalServerError, "confirmation could not be checked")
		return
	}
	if !ok {
		writeError(w, http.StatusConflict, "confirmation expired or invalid")
		return
	}

	deleted, err := p.manager.Delete(id)
	if err != nil {
		if errors.Is(err, publication.ErrNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		slog.Error("article delete failed", "article", id, "error", err)
		p.pushNotice(r, notify.LevelError, "Article could not be deleted.")
		writeError(w, http.StatusInternalServerError, "article could not be deleted")
		return
	}

	// Best-effort cover cleanup; the article row is already gone.
	if p.files != nil && deleted.CoverImageURL != nil {
		if key, ok := p.files.ExtractKey(*deleted.CoverImageURL); ok {
			if err := p.files.Delete(r.Context(), key); err != nil {
				slog.Error("cover cleanup failed", "article", id, "key", key, "error", err)
			}
		}
	}

	p.pushNotice(r, notify.LevelSuccess, "Article deleted.")
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// deleteAction binds a confirmation token to one specific article.
func deleteAction(id uuid.UUID) string {
	return "delete-article:" + id.String()
}

// Notices returns the current user's unexpired notices.
func (p *Publication) Notices(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if p.notices == nil {
		writeJSON(w, http.StatusOK, map[string]any{"notices": []notify.Notice{}})
		return
	}

	notices, err := p.notices.List(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("notice listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load notices")
		return
	}
	if notices == nil {
		notices = []notify.Notice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

func (p *Publication) pushNotice(r *http.Request, level notify.Level, message string) {
	if p.notices == nil {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return
	}
	if _, err := p.notices.Push(r.Context(), sess.UserID, level, message); err != nil {
		slog.Error("push notice failed", "error", err)
	}
}
