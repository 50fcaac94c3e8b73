// Package embedder generates embedding vectors for document text and
// queries.
//
// Two providers are available: the OpenAI embeddings API (the production
// path, model text-embedding-3-small at 1536 dimensions) and a
// deterministic local provider for offline use and tests.
//
// # Usage
//
//	emb, err := embedder.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	vec, err := emb.Embed(ctx, text)
//
// # Input capping
//
// Providers enforce input-size limits, so Embed truncates its input to
// MaxEmbedInputChars (20000) before any API call. The cap is fixed and
// deterministic: the same document always produces the same request.
//
// # Caching and retry
//
// Vectors are cached in an LRU keyed by content SHA-256; re-indexing a
// document whose text did not change, or repeating a query, does not cost
// an API call. Transient API failures are retried with exponential
// backoff; context cancellation aborts the retry loop immediately.
package embedder
