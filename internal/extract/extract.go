// Package extract converts uploaded binary documents (PDF, DOCX) into
// plain text usable as article content. It is a pure leaf: input bytes
// in, text or error out, no side effects.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// MIME types the extractor understands. Callers dispatch on these before
// invoking Text; anything else is rejected at the HTTP layer.
const (
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Error reports an unparseable uploaded document (corrupt file or
// unsupported sub-format). It carries the original parser failure.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract document: %v", e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Supported reports whether Text can handle the given MIME type.
func Supported(mimeType string) bool {
	return mimeType == MimePDF || mimeType == MimeDocx
}

// Service extracts text from uploaded documents. It exists as a type so
// callers can depend on a narrow interface and tests can substitute it.
type Service struct{}

// Text parses the document and returns its plain text content. PDF pages
// are concatenated in document order; DOCX formatting is discarded. Parse
// failures return *Error wrapping the cause.
func (Service) Text(data []byte, mimeType string) (string, error) {
	switch mimeType {
	case MimePDF:
		return pdfText(data)
	case MimeDocx:
		return docxText(data)
	default:
		return "", fmt.Errorf("extract: unsupported mime type %q", mimeType)
	}
}

// pdfText walks the page tree in order and concatenates each page's text.
// Page boundaries are not marked in the output.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Cause: err}
	}

	var sb strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &Error{Cause: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", &Error{Cause: err}
	}
	return text, nil
}
