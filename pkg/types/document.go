package types

import "unicode/utf8"

// MaxStoredTextChars caps the text excerpt kept in a DocumentRecord.
// Bounding the excerpt keeps the persisted index small and keeps prompt
// sizes predictable when excerpts are fed to the summarizer.
const MaxStoredTextChars = 15000

// DocumentRecord is one indexed document: remote metadata, a bounded text
// excerpt, and the embedding vector computed from the extracted content.
type DocumentRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType,omitempty"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
	CreatedTime  string    `json:"createdTime,omitempty"`
	ModifiedTime string    `json:"modifiedTime,omitempty"`
	Text         string    `json:"text"`
	Embedding    []float32 `json:"embedding"`
}

// Validate checks record integrity against the expected embedding dimension.
// Pass dimension 0 to skip the dimension check.
func (d *DocumentRecord) Validate(dimension int) error {
	if d.ID == "" {
		return ErrMissingDocumentID
	}
	if len(d.Embedding) == 0 {
		return ErrMissingEmbedding
	}
	if dimension > 0 && len(d.Embedding) != dimension {
		return ErrDimensionMismatch
	}
	return nil
}

// TruncateText enforces the stored-excerpt cap. Safe to call on records
// built from already-capped text; it is a no-op then. The cut backs off
// to a rune boundary so the stored excerpt stays valid UTF-8.
func (d *DocumentRecord) TruncateText() {
	if len(d.Text) <= MaxStoredTextChars {
		return
	}
	n := MaxStoredTextChars
	for n > 0 && !utf8.RuneStart(d.Text[n]) {
		n--
	}
	d.Text = d.Text[:n]
}

// RemoteFileSummary is the slim remote listing entry used for diffing and
// for remote-sourced search hits. ModifiedTime may be empty when the remote
// store did not report one; an empty value never classifies as "modified".
type RemoteFileSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
}
