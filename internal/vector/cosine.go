// Package vector implements similarity scoring between embedding vectors.
//
// Cosine returns explicit errors for corrupt inputs (dimension mismatch,
// zero-norm vectors) instead of a sentinel score, so callers can skip the
// offending record rather than rank it with a misleading 0.
package vector

import (
	"errors"
	"math"
)

var (
	// ErrDimensionMismatch indicates the two vectors have different lengths,
	// usually a corrupt or stale stored record.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrZeroVector indicates one of the vectors has zero norm, for which
	// cosine similarity is undefined.
	ErrZeroVector = errors.New("vector has zero norm")
)

// Cosine computes the cosine similarity between two vectors: the dot product
// divided by the product of L2 norms. The result is bounded in [-1, 1];
// embedding models with non-negative components keep it in [0, 1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Guard against floating point drift pushing the result out of bounds.
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}

	return sim, nil
}
