package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// excerptRunes is the maximum length of a listing excerpt.
const excerptRunes = 200

// Public serves the unauthenticated read surface: approved articles only.
type Public struct {
	articles *store.ArticleStore
}

// NewPublic creates a new Public handler group.
func NewPublic(articles *store.ArticleStore) *Public {
	return &Public{articles: articles}
}

// listItem is the reduced article shape for listings.
type listItem struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Category      models.Category `json:"category"`
	Excerpt       string          `json:"excerpt"`
	CoverImageURL *string         `json:"cover_image_url,omitempty"`
	IsCover       bool            `json:"is_cover"`
	CreatedAt     string          `json:"created_at"`
}

func toListItem(a *models.Article) listItem {
	return listItem{
		ID:            a.ID,
		Title:         a.Title,
		Category:      a.Category,
		Excerpt:       a.Excerpt(excerptRunes),
		CoverImageURL: a.CoverImageURL,
		IsCover:       a.IsCover,
		CreatedAt:     a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// List returns approved articles, newest first, with excerpts instead of
// full content.
func (p *Public) List(w http.ResponseWriter, r *http.Request) {
	articles, err := p.articles.ListApproved()
	if err != nil {
		slog.Error("public listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load articles")
		return
	}

	items := make([]listItem, 0, len(articles))
	for i := range articles {
		if category := r.URL.Query().Get("category"); category != "" &&
			articles[i].Category != models.Category(category) {
			continue
		}
		items = append(items, toListItem(&articles[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": items})
}

// Cover returns the approved articles flagged for the front page,
// newest first.
func (p *Public) Cover(w http.ResponseWriter, r *http.Request) {
	articles, err := p.articles.ListApproved()
	if err != nil {
		slog.Error("cover lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load articles")
		return
	}

	covers := make([]models.Article, 0)
	for i := range articles {
		if articles[i].IsCover {
			covers = append(covers, articles[i])
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": covers})
}

// Show returns one approved article in full. Pending and rejected
// articles are indistinguishable from missing ones.
func (p *Public) Show(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := p.articles.FindByID(id)
	if err != nil {
		slog.Error("article lookup failed", "article", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load article")
		return
	}
	if article == nil || !article.IsApproved() {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}
