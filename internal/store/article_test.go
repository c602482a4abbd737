package store

import (
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func TestArticleStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-create-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	created, err := s.Create(&models.Article{
		Title:    title,
		Category: models.CategoryBusiness,
		Content:  "Details...",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Approval != models.ApprovalPending {
		t.Errorf("approval: got %q, want %q", created.Approval, models.ApprovalPending)
	}
	if created.IsCover {
		t.Error("expected is_cover false by default")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}
	if created.CoverImageURL != nil {
		t.Error("expected nil cover URL when none uploaded")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected article, got nil")
	}
	if found.Title != title || found.Category != models.CategoryBusiness {
		t.Errorf("found mismatch: %+v", found)
	}
}

func TestArticleStoreCreateDefaultsCategory(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-defaults-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	created, err := s.Create(&models.Article{Title: title, Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Category != models.CategoryGeneral {
		t.Errorf("category: got %q, want %q", created.Category, models.CategoryGeneral)
	}
}

func TestArticleStoreCreatedAtMonotonic(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	t1 := "test-mono-a-" + uuid.NewString()[:8]
	t2 := "test-mono-b-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, t1, t2) })

	first, err := s.Create(&models.Article{Title: t1, Content: "one"})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := s.Create(&models.Article{Title: t2, Content: "two"})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if second.CreatedAt.Before(first.CreatedAt) {
		t.Errorf("created_at not monotonic: %v before %v", second.CreatedAt, first.CreatedAt)
	}
}

func TestArticleStorePendingQueue(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-pending-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	created, err := s.Create(&models.Article{Title: title, Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inQueue := func() bool {
		pending, err := s.ListPending()
		if err != nil {
			t.Fatalf("ListPending: %v", err)
		}
		for _, a := range pending {
			if a.ID == created.ID {
				return true
			}
		}
		return false
	}

	if !inQueue() {
		t.Fatal("expected new article in pending queue")
	}

	// Approval removes it from the queue.
	if err := s.SetApproval(created.ID, models.ApprovalApproved); err != nil {
		t.Fatalf("SetApproval: %v", err)
	}
	if inQueue() {
		t.Error("approved article still in pending queue")
	}

	// Rejection is terminal: the article never reappears.
	if err := s.SetApproval(created.ID, models.ApprovalRejected); err != nil {
		t.Fatalf("SetApproval reject: %v", err)
	}
	if inQueue() {
		t.Error("rejected article reappeared in pending queue")
	}
}

func TestArticleStoreSetApprovalMissing(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	err := s.SetApproval(uuid.New(), models.ApprovalApproved)
	if err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestArticleStoreSetCover(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-cover-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	created, err := s.Create(&models.Article{Title: title, Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetCover(created.ID, true); err != nil {
		t.Fatalf("SetCover: %v", err)
	}
	found, _ := s.FindByID(created.ID)
	if !found.IsCover {
		t.Error("expected is_cover true after toggle")
	}

	if err := s.SetCover(created.ID, false); err != nil {
		t.Fatalf("SetCover back: %v", err)
	}
	found, _ = s.FindByID(created.ID)
	if found.IsCover {
		t.Error("expected is_cover false after second toggle")
	}
}

func TestArticleStoreUpdateEditable(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-edit-" + uuid.NewString()[:8]
	newTitle := "test-edited-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title, newTitle) })

	created, err := s.Create(&models.Article{Title: title, Content: "original"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	url := "https://cdn.example.com/news-covers/abc.jpg"
	if err := s.UpdateEditable(created.ID, newTitle, "rewritten", &url); err != nil {
		t.Fatalf("UpdateEditable: %v", err)
	}

	found, _ := s.FindByID(created.ID)
	if found.Title != newTitle || found.Content != "rewritten" {
		t.Errorf("edit not applied: %+v", found)
	}
	if found.CoverImageURL == nil || *found.CoverImageURL != url {
		t.Errorf("cover url: got %v, want %q", found.CoverImageURL, url)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Error("created_at mutated by edit")
	}
}

func TestArticleStoreDeleteTwice(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-delete-" + uuid.NewString()[:8]

	created, err := s.Create(&models.Article{Title: title, Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted == nil || deleted.ID != created.ID {
		t.Fatal("expected deleted row back")
	}

	// Second delete reports not-found via a nil row, no error.
	again, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if again != nil {
		t.Error("expected nil on second delete")
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, a := range all {
		if a.ID == created.ID {
			t.Error("deleted article still listed")
		}
	}
}
