package types

import "errors"

// Domain errors shared across components
var (
	// Record integrity errors
	ErrMissingDocumentID = errors.New("document record has no id")
	ErrMissingEmbedding  = errors.New("document record has no embedding")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// Request validation errors
	ErrEmptyQuery = errors.New("query cannot be empty")
)
