// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"newsdesk/internal/compose"
	"newsdesk/internal/extract"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/notify"
)

const (
	// maxDocumentBytes caps uploaded PDF/DOCX documents.
	maxDocumentBytes = 10 << 20 // 10 MB

	// maxCoverBytes caps uploaded cover images.
	maxCoverBytes = 5 << 20 // 5 MB
)

// Drafts handles draft text extraction and article submission.
type Drafts struct {
	repo      compose.Repository
	uploader  compose.CoverUploader
	extractor compose.Extractor
	notices   *notify.Service
}

// NewDrafts creates a new Drafts handler group. uploader may be nil when
// object storage is not configured; submissions with a cover image are
// then rejected.
func NewDrafts(repo compose.Repository, uploader compose.CoverUploader, extractor compose.Extractor, notices *notify.Service) *Drafts {
	return &Drafts{
		repo:      repo,
		uploader:  uploader,
		extractor: extractor,
		notices:   notices,
	}
}

// Extract converts an uploaded document into plain text so the client
// can prefill the draft content. Nothing is persisted.
func (d *Drafts) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !extract.Supported(mimeType) {
		writeError(w, http.StatusUnsupportedMediaType, "only PDF and DOCX documents are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read document")
		return
	}

	text, err := d.extractor.Text(data, mimeType)
	if err != nil {
		var xerr *extract.Error
		if errors.As(err, &xerr) {
			writeError(w, http.StatusUnprocessableEntity, "document could not be parsed")
			return
		}
		slog.Error("document extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

// Submit validates and persists a new article from a multipart form:
// title, category, content, is_cover, and an optional cover image file.
// The new article always enters the moderation queue as pending.
func (d *Drafts) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes+maxCoverBytes)
	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	composer := compose.New(d.repo, d.uploader, d.extractor)
	fields := compose.Fields{
		Title:    r.FormValue("title"),
		Category: models.ParseCategory(r.FormValue("category")),
		Content:  r.FormValue("content"),
		IsCover:  r.FormValue("is_cover") == "true",
	}
	if err := composer.SetFields(fields); err != nil {
		writeError(w, http.StatusConflict, "submission already in progress")
		return
	}

	if file, header, err := r.FormFile("cover_image"); err == nil {
		defer file.Close()
		if d.uploader == nil {
			writeError(w, http.StatusBadGateway, "image storage is not configured")
			return
		}
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read cover image")
			return
		}
		if err := composer.AttachCover(header.Filename, header.Header.Get("Content-Type"), data); err != nil {
			writeError(w, http.StatusConflict, "submission already in progress")
			return
		}
	}

	id, err := composer.Submit(r.Context())
	if err != nil {
		var verr *compose.ValidationError
		if errors.As(err, &verr) {
			writeFieldErrors(w, verr.Fields)
			return
		}
		slog.Error("article submission failed", "error", err)
		d.pushNotice(r, notify.LevelError, "Your article could not be submitted. Please try again.")
		// The failure reason is shown to the author as-is.
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	d.pushNotice(r, notify.LevelSuccess, "Article submitted for review.")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// pushNotice records a transient notice for the current user. Notices
// are best effort; a broken Valkey never fails the request.
func (d *Drafts) pushNotice(r *http.Request, level notify.Level, message string) {
	if d.notices == nil {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return
	}
	if _, err := d.notices.Push(r.Context(), sess.UserID, level, message); err != nil {
		slog.Error("push notice failed", "error", err)
	}
}
