package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestStore_Load_MissingFileYieldsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	require.NoError(t, err)

	cfg, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultEmbeddingProvider, cfg.Embedding.Provider)
	assert.Equal(t, DefaultChunkSize, cfg.Chunking.ChunkSize)
	assert.Equal(t, DefaultOverlapSentences, cfg.Chunking.OverlapSentences)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, DefaultMaxSessions, cfg.Sessions.MaxSessions)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestStore_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	require.NoError(t, err)

	cfg := Default()
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.Chunking.ChunkSize = 150
	cfg.Metrics.Addr = ":9102"

	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", loaded.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", loaded.LLM.Model)
	assert.Equal(t, 150, loaded.Chunking.ChunkSize)
	assert.Equal(t, ":9102", loaded.Metrics.Addr)
}

func TestStore_Load_PartialFileFillsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	require.NoError(t, err)

	partial := []byte("[llm]\nprovider = \"none\"\n")
	require.NoError(t, os.WriteFile(store.Path(), partial, 0600))

	cfg, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "none", cfg.LLM.Provider)
	assert.Equal(t, DefaultChunkSize, cfg.Chunking.ChunkSize)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
}

func TestStore_Load_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not = [valid"), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestStore_Save_RestrictedPermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save(Default()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
