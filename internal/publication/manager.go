// Package publication implements the editorial overview of every
// article: toggling the front-page cover flag, editing live copy, and
// deleting articles. Like the moderation queue, it works from a cached
// listing that is advanced only after the store acknowledges a change.
package publication

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// ErrNotFound is returned when an operation targets an article that no
// longer exists.
var ErrNotFound = errors.New("publication: article not found")

// Repository is the slice of the article store the manager needs.
type Repository interface {
	List() ([]models.Article, error)
	SetCover(id uuid.UUID, isCover bool) error
	UpdateEditable(id uuid.UUID, title, content string, coverImageURL *string) error
	Delete(id uuid.UUID) (*models.Article, error)
}

// Manager holds a cached listing of all articles, newest first. Writes
// update the cache in place on success; on failure the listing is
// re-fetched so the local view never drifts from durable state.
type Manager struct {
	mu       sync.Mutex
	repo     Repository
	articles []models.Article
}

// New creates a publication manager with an empty listing. Call Refresh
// to populate it.
func New(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Refresh re-queries the repository for the full article listing.
func (m *Manager) Refresh() error {
	articles, err := m.repo.List()
	if err != nil {
		return fmt.Errorf("refresh article listing: %w", err)
	}
	m.mu.Lock()
	m.articles = articles
	m.mu.Unlock()
	return nil
}

// Articles returns a copy of the cached listing.
func (m *Manager) Articles() []models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Article, len(m.articles))
	copy(out, m.articles)
	return out
}

// TogglePublish flips the cover flag to the opposite of current. The
// caller passes the value it observed so a stale view flips from what
// the user actually saw, not from whatever the cache holds now.
func (m *Manager) TogglePublish(id uuid.UUID, current bool) error {
	next := !current
	if err := m.repo.SetCover(id, next); err != nil {
		_ = m.Refresh()
		return fmt.Errorf("toggle cover: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.articles {
		if m.articles[i].ID == id {
			m.articles[i].IsCover = next
			break
		}
	}
	return nil
}

// Edit overwrites the editable fields of an article. Approval state and
// the creation timestamp are never touched.
func (m *Manager) Edit(id uuid.UUID, title, content string, coverImageURL *string) error {
	if err := m.repo.UpdateEditable(id, title, content, coverImageURL); err != nil {
		_ = m.Refresh()
		return fmt.Errorf("edit article: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.articles {
		if m.articles[i].ID == id {
			m.articles[i].Title = title
			m.articles[i].Content = content
			m.articles[i].CoverImageURL = coverImageURL
			break
		}
	}
	return nil
}

// Delete removes an article and returns the deleted row so the caller
// can clean up attached storage. Deleting an article that is already
// gone returns ErrNotFound.
func (m *Manager) Delete(id uuid.UUID) (*models.Article, error) {
	deleted, err := m.repo.Delete(id)
	if err != nil {
		_ = m.Refresh()
		return nil, fmt.Errorf("delete article: %w", err)
	}
	if deleted == nil {
		_ = m.Refresh()
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.articles[:0]
	for _, a := range m.articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.articles = kept
	return deleted, nil
}
