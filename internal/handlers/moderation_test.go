package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/moderation"
)

type queueRepo struct {
	articles map[uuid.UUID]*models.Article
	order    []uuid.UUID
}

func newQueueRepo(n int) *queueRepo {
	r := &queueRepo{articles: map[uuid.UUID]*models.Article{}}
	for i := 0; i < n; i++ {
		id := uuid.New()
		r.articles[id] = &models.Article{
			ID:        id,
			Title:     "Pending article",
			Content:   "body",
			Approval:  models.ApprovalPending,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		r.order = append(r.order, id)
	}
	return r
}

func (r *queueRepo) ListPending() ([]models.Article, error) {
	var out []models.Article
	for _, id := range r.order {
		if a := r.articles[id]; a.Approval == models.ApprovalPending {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *queueRepo) SetApproval(id uuid.UUID, status models.ApprovalStatus) error {
	a, ok := r.articles[id]
	if !ok {
		return moderationNotFound
	}
	a.Approval = status
	return nil
}

var moderationNotFound = &notFoundErr{}

type notFoundErr struct{}

func (*notFoundErr) Error() string { return "not found" }

func moderationRouter(m *Moderation) http.Handler {
	r := chi.NewRouter()
	r.Get("/admin/moderation", m.Queue)
	r.Post("/admin/moderation/{id}/approve", m.Approve)
	r.Post("/admin/moderation/{id}/reject", m.Reject)
	return r
}

func TestModerationQueue(t *testing.T) {
	repo := newQueueRepo(2)
	h := moderationRouter(NewModeration(moderation.New(repo)))

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp struct {
		Pending []models.Article `json:"pending"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Pending) != 2 {
		t.Errorf("pending: got %d, want 2", len(resp.Pending))
	}
}

func TestModerationApproveRemovesFromQueue(t *testing.T) {
	repo := newQueueRepo(2)
	engine := moderation.New(repo)
	h := moderationRouter(NewModeration(engine))

	// Load the queue first, as a client would.
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/moderation", nil))

	target := repo.order[0]
	req := httptest.NewRequest(http.MethodPost, "/admin/moderation/"+target.String()+"/approve", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	if repo.articles[target].Approval != models.ApprovalApproved {
		t.Error("approval not persisted")
	}

	var resp struct {
		Pending []models.Article `json:"pending"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	for _, a := range resp.Pending {
		if a.ID == target {
			t.Error("approved article still in returned queue")
		}
	}
}

func TestModerationRejectIsTerminal(t *testing.T) {
	repo := newQueueRepo(1)
	engine := moderation.New(repo)
	h := moderationRouter(NewModeration(engine))

	target := repo.order[0]
	req := httptest.NewRequest(http.MethodPost, "/admin/moderation/"+target.String()+"/reject", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if repo.articles[target].Approval != models.ApprovalRejected {
		t.Error("rejection not persisted")
	}

	// The queue endpoint never shows it again.
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/moderation", nil))
	var resp struct {
		Pending []models.Article `json:"pending"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	for _, a := range resp.Pending {
		if a.ID == target {
			t.Error("rejected article reappeared in queue")
		}
	}
}

func TestModerationBadID(t *testing.T) {
	h := moderationRouter(NewModeration(moderation.New(newQueueRepo(0))))

	req := httptest.NewRequest(http.MethodPost, "/admin/moderation/not-a-uuid/approve", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}
