// Package extractor defines the text extraction collaborator boundary.
//
// Extraction is best-effort by contract: an Extractor never returns an
// error. Malformed or binary-only input yields a sentinel string, so a
// degenerate document is still indexed with a valid (sentinel-derived)
// embedding instead of being silently skipped.
package extractor

import (
	"strings"
	"unicode/utf8"
)

// Sentinel texts stored for documents whose content could not be extracted.
// Sentinels are real index entries: they get embedded and persisted like
// any other excerpt.
const (
	SentinelUnreadable = "[unreadable document]"
	SentinelEmpty      = "[empty document or no selectable text]"
)

// Extractor converts raw document bytes to plain text. Implementations must
// not fail: any extraction problem maps to a sentinel string.
type Extractor interface {
	Extract(data []byte, mimeType string) string
}

// Plain handles UTF-8 text payloads and falls back to sentinels for binary
// formats. Richer formats (PDF page text) belong to external extractors
// that implement the same interface.
type Plain struct{}

// NewPlain creates the basic text extractor.
func NewPlain() *Plain {
	return &Plain{}
}

// Extract returns the payload as text when it is valid UTF-8 with printable
// content, SentinelEmpty when there is nothing to index, and
// SentinelUnreadable for binary payloads.
func (p *Plain) Extract(data []byte, mimeType string) string {
	if len(data) == 0 {
		return SentinelEmpty
	}

	if !utf8.Valid(data) || looksBinary(data) {
		return SentinelUnreadable
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return SentinelEmpty
	}
	return text
}

// looksBinary samples the payload for NUL bytes, a cheap signal that the
// content is not plain text.
func looksBinary(data []byte) bool {
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	for _, b := range sample {
		if b == 0 {
			return true
		}
	}
	return false
}

// Func adapts a plain function to the Extractor interface.
type Func func(data []byte, mimeType string) string

// Extract calls f.
func (f Func) Extract(data []byte, mimeType string) string {
	return f(data, mimeType)
}
