package types

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	rec := DocumentRecord{ID: "a", Embedding: []float32{0.1, 0.2, 0.3}}

	assert.NoError(t, rec.Validate(0))
	assert.NoError(t, rec.Validate(3))
	assert.ErrorIs(t, rec.Validate(4), ErrDimensionMismatch)

	noID := DocumentRecord{Embedding: []float32{0.1}}
	assert.ErrorIs(t, noID.Validate(0), ErrMissingDocumentID)

	noVec := DocumentRecord{ID: "a"}
	assert.ErrorIs(t, noVec.Validate(0), ErrMissingEmbedding)
}

func TestTruncateTextRuneBoundary(t *testing.T) {
	rec := DocumentRecord{Text: "x" + strings.Repeat("日", MaxStoredTextChars)}
	rec.TruncateText()

	assert.True(t, utf8.ValidString(rec.Text))
	assert.LessOrEqual(t, len(rec.Text), MaxStoredTextChars)
	assert.Greater(t, len(rec.Text), MaxStoredTextChars-utf8.UTFMax)
}

func TestTruncateTextShortIsNoOp(t *testing.T) {
	rec := DocumentRecord{Text: "short"}
	rec.TruncateText()
	assert.Equal(t, "short", rec.Text)
}
