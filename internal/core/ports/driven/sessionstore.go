package driven

import (
	"context"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
)

// SessionStore owns session lifecycle and conversation state.
// Backed by process memory; sessions never survive a restart.
type SessionStore interface {
	// Create chunks and embeds the document, then stores a new session
	// under id. The session is stored whole or not at all: if the
	// document yields no chunks it fails with domain.ErrNoContent, and
	// if embedding fails it fails with domain.ErrProcessing.
	// Returns the number of chunks stored.
	Create(ctx context.Context, id, documentText string, metadata map[string]string) (int, error)

	// Get retrieves a session snapshot by id.
	// Fails with domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// AppendTurn appends one exchange to the session's conversation log.
	// Appends against the same session are serialized.
	// Fails with domain.ErrNotFound if absent.
	AppendTurn(ctx context.Context, id string, turn domain.ConversationTurn) error

	// Delete removes a session. Idempotent: reports whether a session
	// existed, and never errors.
	Delete(ctx context.Context, id string) bool

	// ClearHistory empties the conversation log but keeps the document,
	// chunks and embeddings. Fails with domain.ErrNotFound if absent.
	ClearHistory(ctx context.Context, id string) error

	// List returns summaries of all active sessions, oldest first.
	List(ctx context.Context) []domain.SessionSummary
}
