package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("a", MaxEmbedInputChars+100)
	assert.Len(t, Truncate(long), MaxEmbedInputChars)
}

func TestTruncateRuneBoundary(t *testing.T) {
	// Three-byte runes never divide the byte cap evenly, so a naive byte
	// slice would cut mid-rune.
	long := strings.Repeat("日", MaxEmbedInputChars)
	got := Truncate(long)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), MaxEmbedInputChars)
	assert.Greater(t, len(got), MaxEmbedInputChars-utf8.UTFMax)
}

func TestComputeHashStable(t *testing.T) {
	assert.Equal(t, ComputeHash("abc"), ComputeHash("abc"))
	assert.NotEqual(t, ComputeHash("abc"), ComputeHash("abd"))
}

func TestLocalProviderDeterministic(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)

	a, err := l.Embed(context.Background(), "same text")
	require.NoError(t, err)
	b, err := l.Embed(context.Background(), "same text")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, LocalDimension)

	c, err := l.Embed(context.Background(), "different text")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestLocalProviderRejectsEmptyText(t *testing.T) {
	l, err := NewLocalProvider(nil)
	require.NoError(t, err)

	_, err = l.Embed(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestOpenAIProviderEmbed(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Input string `json:"input"`
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultOpenAIModel, req.Model)
		assert.LessOrEqual(t, len(req.Input), MaxEmbedInputChars)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3}, "index": 0},
			},
		})
	}))
	defer server.Close()

	cache := NewCache(10)
	o, err := NewOpenAIProvider("test-key", cache)
	require.NoError(t, err)
	o.SetEndpoint(server.URL)

	vec, err := o.Embed(context.Background(), strings.Repeat("q", MaxEmbedInputChars+10))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)

	// Second call with the same (truncated) text hits the cache.
	again, err := o.Embed(context.Background(), strings.Repeat("q", MaxEmbedInputChars+10))
	require.NoError(t, err)
	assert.Equal(t, vec, again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIProviderRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	o, err := NewOpenAIProvider("test-key", nil)
	require.NoError(t, err)
	o.SetEndpoint(server.URL)

	_, err = o.Embed(context.Background(), "query")
	require.ErrorIs(t, err, ErrProviderFailed)
	assert.Equal(t, int32(MaxRetries), calls.Load())
}

func TestCacheReturnsCopy(t *testing.T) {
	cache := NewCache(10)
	cache.Set("k", []float32{1, 2, 3})

	vec, ok := cache.Get("k")
	require.True(t, ok)
	vec[0] = 99

	fresh, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, float32(1), fresh[0])
}

func TestCacheEvictsAtCapacity(t *testing.T) {
	cache := NewCache(2)
	cache.Set("a", []float32{1})
	assert.Equal(t, 1, cache.Size())

	cache.Set("b", []float32{2})
	cache.Set("c", []float32{3})
	assert.Equal(t, 2, cache.Size())

	// "a" is the least recently used entry.
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestNewWithConfig(t *testing.T) {
	emb, err := New(Config{Provider: ProviderLocal, CacheSize: 10})
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, emb.Provider())
	assert.Equal(t, LocalDimension, emb.Dimension())

	_, err = New(Config{Provider: "qdrant"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewWithConfigModelOverride(t *testing.T) {
	emb, err := New(Config{Provider: ProviderOpenAI, APIKey: "sk-test", Model: "text-embedding-3-large"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-large", emb.Model())

	emb, err = New(Config{Provider: ProviderOpenAI, APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, emb.Model())
}

func TestNewFromEnvExplicitProvider(t *testing.T) {
	t.Setenv(EnvProvider, "local")
	t.Setenv(EnvOpenAIAPIKey, "")

	emb, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, emb.Provider())
}

func TestNewFromEnvAutodetectsOpenAI(t *testing.T) {
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvOpenAIAPIKey, "sk-test")

	emb, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, emb.Provider())
}
