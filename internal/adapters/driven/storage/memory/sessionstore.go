// Package memory provides the in-memory session store. Sessions hold a
// document, its chunks and embeddings, and the conversation log. The
// store is bounded: when full, the oldest session is evicted to admit
// the new one.
package memory

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/postprocessors/chunker"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// DefaultMaxSessions bounds the store when no capacity is configured.
const DefaultMaxSessions = 100

// Option configures a SessionStore.
type Option func(*SessionStore)

// WithMaxSessions sets the session capacity. Values below 1 keep the
// default.
func WithMaxSessions(n int) Option {
	return func(s *SessionStore) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithEvictionHook registers a callback invoked with the id of every
// evicted session. Used for metrics and logging.
func WithEvictionHook(hook func(id string)) Option {
	return func(s *SessionStore) {
		s.onEvict = hook
	}
}

type entry struct {
	session domain.Session
	elem    *list.Element

	// turnMu serializes history mutations for this session only, so
	// concurrent appends against different sessions do not contend.
	turnMu sync.Mutex
}

// SessionStore is an in-memory implementation of driven.SessionStore.
// Creation is atomic: the document is chunked and embedded first, and
// the session is only stored once both succeed.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	order       *list.List // front = most recently created
	maxSessions int
	onEvict     func(id string)

	splitter *chunker.Splitter
	embedder driven.EmbeddingService
}

// NewSessionStore creates a session store. The splitter and embedder
// are used during Create to derive the retrieval state.
func NewSessionStore(splitter *chunker.Splitter, embedder driven.EmbeddingService, opts ...Option) *SessionStore {
	s := &SessionStore{
		sessions:    make(map[string]*entry),
		order:       list.New(),
		maxSessions: DefaultMaxSessions,
		splitter:    splitter,
		embedder:    embedder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create chunks and embeds documentText, then stores the session.
func (s *SessionStore) Create(ctx context.Context, id, documentText string, metadata map[string]string) (int, error) {
	chunks := s.splitter.Chunks(documentText)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: document produced no chunks", domain.ErrNoContent)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: embed chunks: %v", domain.ErrProcessing, err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("%w: embedding count mismatch: %d chunks, %d vectors", domain.ErrProcessing, len(chunks), len(embeddings))
	}

	if metadata == nil {
		metadata = make(map[string]string)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replacing an existing id must not double-count it in the order list.
	if old, ok := s.sessions[id]; ok {
		s.order.Remove(old.elem)
		delete(s.sessions, id)
	}

	for len(s.sessions) >= s.maxSessions {
		s.evictOldest()
	}

	e := &entry{
		session: domain.Session{
			ID:           id,
			DocumentText: documentText,
			Chunks:       chunks,
			Embeddings:   embeddings,
			Metadata:     metadata,
			CreatedAt:    time.Now(),
		},
	}
	e.elem = s.order.PushFront(id)
	s.sessions[id] = e

	return len(chunks), nil
}

// Get returns a snapshot copy of the session.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	e.turnMu.Lock()
	defer e.turnMu.Unlock()

	snapshot := e.session
	snapshot.History = make([]domain.ConversationTurn, len(e.session.History))
	copy(snapshot.History, e.session.History)
	return &snapshot, nil
}

// AppendTurn records one exchange in the session's conversation log.
func (s *SessionStore) AppendTurn(_ context.Context, id string, turn domain.ConversationTurn) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}

	e.turnMu.Lock()
	defer e.turnMu.Unlock()
	e.session.History = append(e.session.History, turn)
	return nil
}

// Delete removes a session and reports whether it existed.
func (s *SessionStore) Delete(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	s.order.Remove(e.elem)
	delete(s.sessions, id)
	return true
}

// ClearHistory empties the conversation log, keeping the document state.
func (s *SessionStore) ClearHistory(_ context.Context, id string) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}

	e.turnMu.Lock()
	defer e.turnMu.Unlock()
	e.session.History = nil
	return nil
}

// List returns summaries of all sessions, oldest first.
func (s *SessionStore) List(_ context.Context) []domain.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.SessionSummary, 0, len(s.sessions))
	for el := s.order.Back(); el != nil; el = el.Prev() {
		id := el.Value.(string)
		e := s.sessions[id]

		e.turnMu.Lock()
		summaries = append(summaries, domain.SessionSummary{
			SessionID:      e.session.ID,
			DocumentName:   e.session.DocumentName(),
			CreatedAt:      e.session.CreatedAt,
			TurnCount:      len(e.session.History),
			DocumentLength: len(e.session.DocumentText),
		})
		e.turnMu.Unlock()
	}
	return summaries
}

// Len reports the number of sessions currently stored.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictOldest removes the oldest session by creation order.
// Caller must hold the write lock.
func (s *SessionStore) evictOldest() {
	el := s.order.Back()
	if el == nil {
		return
	}
	id := el.Value.(string)
	s.order.Remove(el)
	delete(s.sessions, id)
	if s.onEvict != nil {
		s.onEvict(id)
	}
}
