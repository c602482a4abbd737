// Package compose implements the draft submission workflow: a single
// in-progress article draft moving through editing → submitting →
// {submitted | failed}. The composer orchestrates document extraction,
// cover upload, and repository creation, and owns field validation.
package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// Repository is the slice of the article store the composer needs.
type Repository interface {
	Create(a *models.Article) (*models.Article, error)
}

// CoverUploader persists a cover image blob and returns its public URL.
type CoverUploader interface {
	UploadCover(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// Extractor converts an uploaded document into plain text.
type Extractor interface {
	Text(data []byte, mimeType string) (string, error)
}

// State is the composer's position in the submission lifecycle.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission is still running. Duplicate submits are ignored rather than
// queued, so rapid double-submit cannot create two articles.
var ErrSubmitInFlight = errors.New("compose: submit already in flight")

// Fields holds the user-supplied draft values.
type Fields struct {
	Title    string
	Category models.Category
	Content  string
	IsCover  bool
}

// attachment is a cover image blob held until submit.
type attachment struct {
	filename    string
	contentType string
	data        []byte
}

// Composer tracks one in-progress submission. Editing is re-entrant:
// fields can be adjusted any number of times before submit. A successful
// submit clears everything so the next draft starts clean; a failed
// submit preserves the fields so no input is lost.
type Composer struct {
	mu        sync.Mutex
	repo      Repository
	uploader  CoverUploader
	extractor Extractor

	state  State
	fields Fields
	cover  *attachment
}

// New creates a composer in the editing state.
func New(repo Repository, uploader CoverUploader, extractor Extractor) *Composer {
	return &Composer{
		repo:      repo,
		uploader:  uploader,
		extractor: extractor,
		state:     StateEditing,
	}
}

// State returns the composer's current lifecycle state.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Fields returns a copy of the current draft values.
func (c *Composer) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// CoverAttached reports whether a cover image blob is waiting for upload.
func (c *Composer) CoverAttached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cover != nil
}

// SetFields replaces the draft values. Allowed any time except while a
// submission is in flight; from failed or submitted it returns the
// composer to editing.
func (c *Composer) SetFields(f Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	c.fields = f
	c.state = StateEditing
	return nil
}

// AttachCover stores a cover image blob to be uploaded at submit time.
func (c *Composer) AttachCover(filename, contentType string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	blob := make([]byte, len(data))
	copy(blob, data)
	c.cover = &attachment{filename: filename, contentType: contentType, data: blob}
	c.state = StateEditing
	return nil
}

// AttachDocument extracts text from an uploaded document and overwrites
// the draft content with it. Extraction happens eagerly, independent of
// submit; the user can edit the extracted text afterwards. On extraction
// failure the existing content is left untouched and the error is
// returned for the caller to surface.
func (c *Composer) AttachDocument(data []byte, mimeType string) error {
	text, err := c.extractor.Text(data, mimeType)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	c.fields.Content = text
	c.state = StateEditing
	return nil
}

// Submit validates the draft and persists it. On validation failure no
// external call is made and the composer stays in editing. If a cover is
// attached it is uploaded first; upload failure aborts the submission
// before any article is created. On success the new article's ID is
// returned and the composer resets to a fresh editing state.
func (c *Composer) Submit(ctx context.Context) (uuid.UUID, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return uuid.Nil, ErrSubmitInFlight
	}
	if verr := validateFields(c.fields); verr != nil {
		c.mu.Unlock()
		return uuid.Nil, verr
	}
	c.state = StateSubmitting
	fields := c.fields
	cover := c.cover
	c.mu.Unlock()

	article := &models.Article{
		Title:    strings.TrimSpace(fields.Title),
		Category: fields.Category,
		Content:  fields.Content,
		IsCover:  fields.IsCover,
		Approval: models.ApprovalPending,
	}
	if article.Category == "" {
		article.Category = models.CategoryGeneral
	}

	if cover != nil {
		url, err := c.uploader.UploadCover(ctx, cover.filename, cover.contentType, cover.data)
		if err != nil {
			c.fail()
			return uuid.Nil, fmt.Errorf("upload cover image: %w", err)
		}
		article.CoverImageURL = &url
	}

	created, err := c.repo.Create(article)
	if err != nil {
		c.fail()
		// Repository failures are surfaced verbatim; retry is user-initiated.
		return uuid.Nil, err
	}

	c.mu.Lock()
	c.state = StateSubmitted
	c.fields = Fields{}
	c.cover = nil
	c.mu.Unlock()

	return created.ID, nil
}

// fail records a failed submission. Field values and the attached cover
// stay intact so the user can retry without re-entering anything.
func (c *Composer) fail() {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()
}
