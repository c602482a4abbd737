// Package moderation implements the review queue: pending articles are
// listed as a snapshot and moderators approve or reject them one by one.
// Rejection is terminal — a rejected article never reappears in the queue.
package moderation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// Repository is the slice of the article store the engine needs.
type Repository interface {
	ListPending() ([]models.Article, error)
	SetApproval(id uuid.UUID, status models.ApprovalStatus) error
}

// Engine holds a cached snapshot of the moderation queue. The cache is
// advanced only after the repository acknowledges a decision; if the
// repository fails, the queue is re-fetched rather than patched, so the
// local view never drifts from durable state.
type Engine struct {
	mu      sync.Mutex
	repo    Repository
	pending []models.Article
}

// New creates a moderation engine with an empty queue. Call Refresh to
// populate it.
func New(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// Refresh re-queries the repository for the current pending queue.
func (e *Engine) Refresh() error {
	pending, err := e.repo.ListPending()
	if err != nil {
		return fmt.Errorf("refresh moderation queue: %w", err)
	}
	e.mu.Lock()
	e.pending = pending
	e.mu.Unlock()
	return nil
}

// Pending returns a copy of the cached queue snapshot. A fresh snapshot
// requires another Refresh.
func (e *Engine) Pending() []models.Article {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Article, len(e.pending))
	copy(out, e.pending)
	return out
}

// Approve marks the article as approved and drops it from the queue.
func (e *Engine) Approve(id uuid.UUID) error {
	return e.decide(id, models.ApprovalApproved)
}

// Reject marks the article as rejected and drops it from the queue.
func (e *Engine) Reject(id uuid.UUID) error {
	return e.decide(id, models.ApprovalRejected)
}

func (e *Engine) decide(id uuid.UUID, status models.ApprovalStatus) error {
	if err := e.repo.SetApproval(id, status); err != nil {
		// Pessimistic recovery: re-fetch instead of guessing what the
		// durable state looks like now. The refresh error, if any, is
		// secondary to the decision failure.
		_ = e.Refresh()
		return fmt.Errorf("set approval %s: %w", status, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.pending[:0]
	for _, a := range e.pending {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	e.pending = kept
	return nil
}
