package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"unicode/utf8"
)

// MaxEmbedInputChars caps text sent to an embedding provider. Providers
// enforce input-size limits; callers must truncate before requesting an
// embedding rather than rely on provider-side behavior.
const MaxEmbedInputChars = 20000

// Common errors
var (
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrProviderFailed    = errors.New("embedding provider failed")
	ErrNoProviderEnabled = errors.New("no embedding provider configured")
	ErrUnknownProvider   = errors.New("unknown embedding provider")
)

// Embedder produces fixed-dimension embedding vectors for text.
type Embedder interface {
	// Embed generates the embedding vector for text. Implementations
	// truncate input to MaxEmbedInputChars before calling the provider.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the fixed vector length this provider produces.
	Dimension() int

	// Provider returns the provider name.
	Provider() string

	// Model returns the model name.
	Model() string

	// Close releases any resources held by the embedder.
	Close() error
}

// Truncate enforces the provider input cap deterministically. The cut
// backs off to a rune boundary so the result is always valid UTF-8.
func Truncate(text string) string {
	if len(text) <= MaxEmbedInputChars {
		return text
	}
	n := MaxEmbedInputChars
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// ComputeHash computes the SHA-256 cache key for a text.
func ComputeHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
