// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Category is the fixed editorial section an article belongs to.
type Category string

const (
	CategoryGeneral       Category = "General"
	CategoryBusiness      Category = "Business"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryScience       Category = "Science"
	CategorySports        Category = "Sports"
	CategoryTechnology    Category = "Technology"
)

// Categories lists every valid category in display order. The set must
// stay in lockstep with the CHECK constraint on articles.category.
var Categories = []Category{
	CategoryGeneral,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryTechnology,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps user input to a category. Unknown or empty input
// falls back to General; matching is exact after trimming whitespace.
func ParseCategory(s string) Category {
	c := Category(strings.TrimSpace(s))
	if c.Valid() {
		return c
	}
	return CategoryGeneral
}

// ApprovalStatus is the moderation state of an article. Every article
// starts pending; a decision moves it to approved or rejected, and
// rejection is final.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is a known approval status.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Article is a news article as stored in the database.
type Article struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Category      Category       `json:"category"`
	Content       string         `json:"content"`
	CoverImageURL *string        `json:"cover_image_url,omitempty"`
	Approval      ApprovalStatus `json:"approval"`
	IsCover       bool           `json:"is_cover"`
	CreatedAt     time.Time      `json:"created_at"`
}

// IsPending reports whether the article still awaits a moderation decision.
func (a *Article) IsPending() bool {
	return a.Approval == ApprovalPending
}

// IsApproved reports whether the article passed moderation.
func (a *Article) IsApproved() bool {
	return a.Approval == ApprovalApproved
}

// Excerpt returns the article content with markup stripped and
// whitespace collapsed, truncated to at most maxRunes runes. Truncated
// excerpts end with an ellipsis.
func (a *Article) Excerpt(maxRunes int) string {
	text := a.Content
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(a.Content)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "…"
}
