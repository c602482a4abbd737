// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// ErrNotFound is returned by update operations that matched no row.
var ErrNotFound = errors.New("store: not found")

// ArticleStore handles all article-related database operations. It is
// the single durable owner of article state; callers keep only
// transient copies of what it returns.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, category, content, cover_image_url, approval, is_cover, created_at`

func scanArticle(row interface{ Scan(...any) error }, a *models.Article) error {
	return row.Scan(
		&a.ID, &a.Title, &a.Category, &a.Content,
		&a.CoverImageURL, &a.Approval, &a.IsCover, &a.CreatedAt,
	)
}

// Create inserts a new article and returns it with the server-assigned
// ID and creation timestamp.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	if a.Category == "" {
		a.Category = models.CategoryGeneral
	}
	if a.Approval == "" {
		a.Approval = models.ApprovalPending
	}

	result := &models.Article{}
	err := scanArticle(s.db.QueryRow(`
		INSERT INTO articles (title, category, content, cover_image_url, approval, is_cover)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+articleColumns+`
	`, a.Title, a.Category, a.Content, a.CoverImageURL, a.Approval, a.IsCover), result)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return result, nil
}

// List returns every article, newest first.
func (s *ArticleStore) List() ([]models.Article, error) {
	return s.list(`SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC`, "list articles")
}

// ListPending returns the moderation queue: articles still awaiting a
// decision, oldest first. Rejected articles do not reappear here.
func (s *ArticleStore) ListPending() ([]models.Article, error) {
	return s.list(`
		SELECT `+articleColumns+` FROM articles
		WHERE approval = 'pending'
		ORDER BY created_at ASC
	`, "list pending articles")
}

// ListApproved returns approved articles, newest first. Used by the
// public read surface.
func (s *ArticleStore) ListApproved() ([]models.Article, error) {
	return s.list(`
		SELECT `+articleColumns+` FROM articles
		WHERE approval = 'approved'
		ORDER BY created_at DESC
	`, "list approved articles")
}

func (s *ArticleStore) list(query, op string) ([]models.Article, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		var a models.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := scanArticle(s.db.QueryRow(`
		SELECT `+articleColumns+` FROM articles WHERE id = $1
	`, id), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// SetApproval records a moderation decision as a single-field update.
func (s *ArticleStore) SetApproval(id uuid.UUID, status models.ApprovalStatus) error {
	res, err := s.db.Exec(`UPDATE articles SET approval = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set approval: %w", err)
	}
	return checkAffected(res)
}

// SetCover flips the cover-article flag to the given value.
func (s *ArticleStore) SetCover(id uuid.UUID, isCover bool) error {
	res, err := s.db.Exec(`UPDATE articles SET is_cover = $1 WHERE id = $2`, isCover, id)
	if err != nil {
		return fmt.Errorf("set cover flag: %w", err)
	}
	return checkAffected(res)
}

// UpdateEditable overwrites the three editable fields in one statement.
// created_at and approval state are never touched by edits.
func (s *ArticleStore) UpdateEditable(id uuid.UUID, title, content string, coverImageURL *string) error {
	res, err := s.db.Exec(`
		UPDATE articles SET title = $1, content = $2, cover_image_url = $3
		WHERE id = $4
	`, title, content, coverImageURL, id)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return checkAffected(res)
}

// Delete removes an article and returns the deleted row, or nil if the
// article was already gone. A second delete on the same ID is safe.
func (s *ArticleStore) Delete(id uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := scanArticle(s.db.QueryRow(`
		DELETE FROM articles WHERE id = $1
		RETURNING `+articleColumns+`
	`, id), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete article: %w", err)
	}
	return a, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
