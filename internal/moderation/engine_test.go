package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// fakeRepo keeps articles in memory and mirrors the store's pending
// filter: only never-reviewed articles are queued.
type fakeRepo struct {
	articles  map[uuid.UUID]*models.Article
	order     []uuid.UUID
	listErr   error
	updateErr error
}

func newFakeRepo(n int) *fakeRepo {
	r := &fakeRepo{articles: map[uuid.UUID]*models.Article{}}
	for i := 0; i < n; i++ {
		id := uuid.New()
		r.articles[id] = &models.Article{
			ID:        id,
			Title:     "Article " + string(rune('A'+i)),
			Content:   "body",
			Approval:  models.ApprovalPending,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		r.order = append(r.order, id)
	}
	return r
}

func (r *fakeRepo) ListPending() ([]models.Article, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Article
	for _, id := range r.order {
		if a := r.articles[id]; a.Approval == models.ApprovalPending {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) SetApproval(id uuid.UUID, status models.ApprovalStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	a, ok := r.articles[id]
	if !ok {
		return errors.New("not found")
	}
	a.Approval = status
	return nil
}

func TestRefreshAndPendingSnapshot(t *testing.T) {
	repo := newFakeRepo(3)
	e := New(repo)

	if got := e.Pending(); len(got) != 0 {
		t.Errorf("expected empty queue before refresh, got %d", len(got))
	}

	if err := e.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := e.Pending(); len(got) != 3 {
		t.Errorf("queue: got %d, want 3", len(got))
	}

	// The returned slice is a copy; mutating it must not corrupt the cache.
	snap := e.Pending()
	snap[0].Title = "mutated"
	if e.Pending()[0].Title == "mutated" {
		t.Error("Pending must return a defensive copy")
	}
}

func TestApproveRemovesFromQueue(t *testing.T) {
	repo := newFakeRepo(3)
	e := New(repo)
	e.Refresh()

	target := e.Pending()[1].ID
	if err := e.Approve(target); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	for _, a := range e.Pending() {
		if a.ID == target {
			t.Error("approved article still in cached queue")
		}
	}

	// A fresh snapshot from the repository agrees.
	if err := e.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	for _, a := range e.Pending() {
		if a.ID == target {
			t.Error("approved article returned by a fresh listing")
		}
	}
	if repo.articles[target].Approval != models.ApprovalApproved {
		t.Error("approval not persisted")
	}
}

func TestRejectIsTerminal(t *testing.T) {
	repo := newFakeRepo(2)
	e := New(repo)
	e.Refresh()

	target := e.Pending()[0].ID
	if err := e.Reject(target); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	// Neither the cache nor a re-query brings it back.
	for _, a := range e.Pending() {
		if a.ID == target {
			t.Error("rejected article still in cached queue")
		}
	}
	e.Refresh()
	for _, a := range e.Pending() {
		if a.ID == target {
			t.Error("rejected article reappeared after refresh")
		}
	}
	if repo.articles[target].Approval != models.ApprovalRejected {
		t.Error("rejection not persisted")
	}
}

func TestDecisionFailureRefetchesQueue(t *testing.T) {
	repo := newFakeRepo(2)
	e := New(repo)
	e.Refresh()

	target := e.Pending()[0].ID
	repo.updateErr = errors.New("write refused")

	err := e.Approve(target)
	if err == nil {
		t.Fatal("expected decision error")
	}
	if !errors.Is(err, repo.updateErr) {
		t.Errorf("cause not preserved: %v", err)
	}

	// The cache was re-fetched, not optimistically advanced: the article
	// is still pending both durably and locally.
	found := false
	for _, a := range e.Pending() {
		if a.ID == target {
			found = true
		}
	}
	if !found {
		t.Error("article vanished from queue despite failed update")
	}
}

func TestApproveUnknownID(t *testing.T) {
	repo := newFakeRepo(1)
	e := New(repo)
	e.Refresh()

	if err := e.Approve(uuid.New()); err == nil {
		t.Error("expected error for unknown article")
	}
	if len(e.Pending()) != 1 {
		t.Error("queue must be intact after failed decision")
	}
}
