package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested session does not exist.
	// It always propagates to the caller verbatim.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidInput indicates malformed or out-of-bounds input
	// (too short, empty question, etc).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContent indicates a document produced no chunks
	// (empty or whitespace-only text).
	ErrNoContent = errors.New("document has no content")

	// ErrProcessing indicates an internal chunking or embedding failure.
	// A session is never stored partially: if its chunks cannot all be
	// embedded, creation fails with this error.
	ErrProcessing = errors.New("processing failed")

	// ErrUpstream indicates an external collaborator (embedding or
	// generation model) was unreachable or returned unparseable output.
	ErrUpstream = errors.New("upstream service failed")

	// ErrLLMUnavailable indicates no generation model is configured.
	// Remote answering, abstractive rewriting and flashcard generation
	// are disabled without one.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding model is configured.
	// Session creation and local answering are disabled without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
