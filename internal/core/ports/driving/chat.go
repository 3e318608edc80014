package driving

import (
	"context"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
)

// ChatService provides chat-over-document capabilities to external actors.
type ChatService interface {
	// CreateSession stores a document and returns the new session id
	// with the number of chunks created.
	CreateSession(ctx context.Context, documentText string, metadata map[string]string) (domain.SessionInfo, error)

	// Ask answers a question against a session. When useRemote is true
	// and a generation model is configured, the remote path is tried
	// first and falls back to the local extractive path on failure.
	// The exchange is appended to the session's conversation log.
	Ask(ctx context.Context, sessionID, question string, useRemote bool) (domain.Answer, error)

	// History returns the ordered conversation log for a session.
	History(ctx context.Context, sessionID string) (domain.Conversation, error)

	// DeleteSession removes a session, reporting whether it existed.
	DeleteSession(ctx context.Context, sessionID string) bool

	// ClearHistory empties a session's conversation log, keeping the
	// document.
	ClearHistory(ctx context.Context, sessionID string) error

	// Sessions lists all active sessions.
	Sessions(ctx context.Context) []domain.SessionSummary
}

// SummaryService provides document summarization to external actors.
type SummaryService interface {
	// Summarize runs the hybrid extractive/abstractive pipeline.
	Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (*domain.SummaryResult, error)
}

// FlashcardService generates study cards from document text.
type FlashcardService interface {
	// Generate produces up to numCards flashcards from the text.
	Generate(ctx context.Context, text string, opts domain.FlashcardOptions) ([]domain.Flashcard, error)
}
