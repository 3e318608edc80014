package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/embedding/hash"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/postprocessors/chunker"
)

// failingEmbedder always errors, for exercising the atomic-create path.
type failingEmbedder struct {
	*hash.EmbeddingService
}

func (f *failingEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("embedding backend down")
}

func testDocument(sentences int) string {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&sb, "Sentence number %d talks about the document contents in detail. ", i)
	}
	return sb.String()
}

func newTestStore(opts ...Option) *SessionStore {
	return NewSessionStore(chunker.New(), hash.New(), opts...)
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	count, err := store.Create(ctx, "sess-1", testDocument(30), map[string]string{"document_name": "notes.txt"})

	require.NoError(t, err)
	assert.Greater(t, count, 0)

	sess, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, "notes.txt", sess.DocumentName())
	assert.Len(t, sess.Chunks, count)
	assert.Len(t, sess.Embeddings, count)
	assert.Empty(t, sess.History)
	assert.WithinDuration(t, time.Now(), sess.CreatedAt, time.Minute)
}

func TestSessionStore_Create_EmptyDocument(t *testing.T) {
	store := newTestStore()

	_, err := store.Create(context.Background(), "sess-1", "   ", nil)

	assert.ErrorIs(t, err, domain.ErrNoContent)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_Create_EmbeddingFailureStoresNothing(t *testing.T) {
	store := NewSessionStore(chunker.New(), &failingEmbedder{hash.New()})

	_, err := store.Create(context.Background(), "sess-1", testDocument(30), nil)

	assert.ErrorIs(t, err, domain.ErrProcessing)
	assert.Equal(t, 0, store.Len())
	_, err = store.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	store := newTestStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_AppendTurn(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.Create(ctx, "sess-1", testDocument(30), nil)
	require.NoError(t, err)

	turn := domain.ConversationTurn{Question: "q", Answer: "a", Timestamp: time.Now()}
	require.NoError(t, store.AppendTurn(ctx, "sess-1", turn))

	sess, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, sess.History, 1)
	assert.Equal(t, "q", sess.History[0].Question)

	assert.ErrorIs(t, store.AppendTurn(ctx, "missing", turn), domain.ErrNotFound)
}

func TestSessionStore_AppendTurn_Concurrent(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.Create(ctx, "sess-1", testDocument(30), nil)
	require.NoError(t, err)

	const turns = 50
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			turn := domain.ConversationTurn{Question: fmt.Sprintf("q%d", i), Answer: "a", Timestamp: time.Now()}
			assert.NoError(t, store.AppendTurn(ctx, "sess-1", turn))
		}(i)
	}
	wg.Wait()

	sess, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, sess.History, turns)
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.Create(ctx, "sess-1", testDocument(30), nil)
	require.NoError(t, err)

	assert.True(t, store.Delete(ctx, "sess-1"))
	assert.False(t, store.Delete(ctx, "sess-1"))
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_ClearHistory(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.Create(ctx, "sess-1", testDocument(30), nil)
	require.NoError(t, err)
	require.NoError(t, store.AppendTurn(ctx, "sess-1", domain.ConversationTurn{Question: "q", Answer: "a"}))

	require.NoError(t, store.ClearHistory(ctx, "sess-1"))

	sess, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, sess.History)
	assert.NotEmpty(t, sess.Chunks)

	assert.ErrorIs(t, store.ClearHistory(ctx, "missing"), domain.ErrNotFound)
}

func TestSessionStore_List_OldestFirst(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_, err := store.Create(ctx, id, testDocument(30), nil)
		require.NoError(t, err)
	}

	summaries := store.List(ctx)

	require.Len(t, summaries, 3)
	assert.Equal(t, "a", summaries[0].SessionID)
	assert.Equal(t, "b", summaries[1].SessionID)
	assert.Equal(t, "c", summaries[2].SessionID)
}

func TestSessionStore_EvictsOldestAtCapacity(t *testing.T) {
	var evicted []string
	store := newTestStore(
		WithMaxSessions(2),
		WithEvictionHook(func(id string) { evicted = append(evicted, id) }),
	)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := store.Create(ctx, id, testDocument(30), nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"a"}, evicted)

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestSessionStore_Create_ReplacesExistingID(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.Create(ctx, "sess-1", testDocument(30), map[string]string{"document_name": "old.txt"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "sess-1", testDocument(40), map[string]string{"document_name": "new.txt"})
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	sess, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "new.txt", sess.DocumentName())
}

func TestSessionStore_GetReturnsSnapshot(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.Create(ctx, "sess-1", testDocument(30), nil)
	require.NoError(t, err)

	sess, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	sess.History = append(sess.History, domain.ConversationTurn{Question: "mutated"})

	fresh, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.History)
}
