package domain

import "time"

// Chunk is a bounded contiguous span of a document's sentences, used as
// the unit of retrieval. Chunks may overlap in underlying text.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text content of this chunk.
	Content string
}

// ConversationTurn is one question/answer exchange within a session.
// Turns are append-only and never mutated after they are recorded.
type ConversationTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Session binds one document to its chunks, embeddings and conversation
// history. Sessions are volatile: they live in process memory until
// explicitly deleted or evicted, never across restarts.
type Session struct {
	// ID is the opaque unique session identifier.
	ID string

	// DocumentText is the raw document, immutable once stored.
	DocumentText string

	// Chunks is the ordered chunk sequence produced at creation.
	Chunks []Chunk

	// Embeddings is index-aligned with Chunks: Embeddings[i] is the
	// vector for Chunks[i].
	Embeddings [][]float32

	// Metadata contains free-form key/value pairs (document name etc).
	Metadata map[string]string

	// History is the append-only conversation log.
	History []ConversationTurn

	// CreatedAt is when the session was created.
	CreatedAt time.Time
}

// DocumentName returns the display name from metadata, or "Unknown".
func (s *Session) DocumentName() string {
	if name, ok := s.Metadata["document_name"]; ok && name != "" {
		return name
	}
	return "Unknown"
}

// SessionSummary is a lightweight listing entry for an active session.
type SessionSummary struct {
	SessionID      string    `json:"session_id"`
	DocumentName   string    `json:"document_name"`
	CreatedAt      time.Time `json:"created_at"`
	TurnCount      int       `json:"total_questions"`
	DocumentLength int       `json:"document_length"`
}

// SessionInfo is returned when a session is created.
type SessionInfo struct {
	SessionID  string `json:"session_id"`
	ChunkCount int    `json:"chunks_count"`
}

// Conversation is the full history view of a session.
type Conversation struct {
	Turns           []ConversationTurn `json:"history"`
	DocumentPreview string             `json:"document_preview"`
	CreatedAt       time.Time          `json:"created_at"`
	TurnCount       int                `json:"total_questions"`
}
