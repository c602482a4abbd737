package compose

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Validation limits for draft fields.
const (
	maxTitleLen   = 300
	maxContentLen = 100_000
)

// ValidationError reports invalid draft fields, keyed by field name so
// the caller can show errors inline next to each field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid draft: " + strings.Join(parts, "; ")
}

// validateFields checks the draft before the state machine may enter
// submitting. Violations are reported per field, not aggregated.
func validateFields(f Fields) *ValidationError {
	problems := map[string]string{}

	if strings.TrimSpace(f.Title) == "" {
		problems["title"] = "Title is required."
	} else if utf8.RuneCountInString(f.Title) > maxTitleLen {
		problems["title"] = "Title is too long (max 300 characters)."
	}

	if strings.TrimSpace(f.Content) == "" {
		problems["content"] = "Content is required."
	} else if utf8.RuneCountInString(f.Content) > maxContentLen {
		problems["content"] = "Content is too long (max 100,000 characters)."
	}

	if f.Category != "" && !f.Category.Valid() {
		problems["category"] = "Unknown category."
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Fields: problems}
}
