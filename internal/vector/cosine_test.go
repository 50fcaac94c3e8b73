package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineIdentical(t *testing.T) {
	a := []float32{1, 2, 3}

	sim, err := Cosine(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.5, 0.2, 0.9}
	scaled := make([]float32, len(a))
	for i, v := range a {
		scaled[i] = v * 4.5
	}

	sim, err := Cosine(a, scaled)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-6)
}

func TestCosineSymmetric(t *testing.T) {
	a := []float32{0.1, 0.9, 0.4}
	b := []float32{0.7, 0.2, 0.5}

	ab, err := Cosine(a, b)
	require.NoError(t, err)
	ba, err := Cosine(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestCosineOrthogonal(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)
}

func TestCosineOpposite(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{-1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)
}

func TestCosineBounded(t *testing.T) {
	cases := [][2][]float32{
		{{0.5, 0.5, 0.5}, {0.9, 0.1, 0.3}},
		{{1, 2, 3}, {3, 2, 1}},
		{{0.001, 0.002}, {1000, 2000}},
	}

	for _, c := range cases {
		sim, err := Cosine(c[0], c[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sim, -1.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCosineZeroVector(t *testing.T) {
	_, err := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = Cosine([]float32{1, 2, 3}, []float32{0, 0, 0})
	assert.ErrorIs(t, err, ErrZeroVector)
}
