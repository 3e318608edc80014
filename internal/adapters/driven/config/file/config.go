package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultEmbeddingProvider = "hash"
	DefaultLLMProvider       = "ollama"
	DefaultChunkSize         = 200
	DefaultOverlapSentences  = 2
	DefaultTopK              = 3
	DefaultMaxSessions       = 100
	DefaultLogLevel          = "info"
)

// Config holds all intellidoc settings.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Sessions  SessionsConfig  `toml:"sessions"`
	Log       LogConfig       `toml:"log"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Provider is one of "hash", "openai" or "ollama".
	Provider string `toml:"provider"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	// Provider is one of "ollama", "openai" or "none". With "none" the
	// assistant runs in extractive-only mode.
	Provider          string `toml:"provider"`
	Model             string `toml:"model,omitempty"`
	BaseURL           string `toml:"base_url,omitempty"`
	RequestsPerMinute int    `toml:"requests_per_minute,omitempty"`
}

// ChunkingConfig controls how documents are split.
type ChunkingConfig struct {
	ChunkSize        int `toml:"chunk_size"`
	OverlapSentences int `toml:"overlap_sentences"`
}

// RetrievalConfig controls semantic search over chunks.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// SessionsConfig bounds the in-memory session store.
type SessionsConfig struct {
	MaxSessions int `toml:"max_sessions"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// MetricsConfig exposes Prometheus metrics when Addr is set.
type MetricsConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{Provider: DefaultEmbeddingProvider},
		LLM:       LLMConfig{Provider: DefaultLLMProvider},
		Chunking: ChunkingConfig{
			ChunkSize:        DefaultChunkSize,
			OverlapSentences: DefaultOverlapSentences,
		},
		Retrieval: RetrievalConfig{TopK: DefaultTopK},
		Sessions:  SessionsConfig{MaxSessions: DefaultMaxSessions},
		Log:       LogConfig{Level: DefaultLogLevel},
	}
}

// Store loads and persists Config as a TOML file.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.intellidoc.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".intellidoc")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &Store{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load reads the config file, filling unset fields with defaults.
// A missing file yields the defaults without error.
func (s *Store) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := Default()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// Save persists the config with restricted file permissions.
func (s *Store) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}

func applyDefaults(cfg *Config) {
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = DefaultEmbeddingProvider
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultLLMProvider
	}
	if cfg.Chunking.ChunkSize <= 0 {
		cfg.Chunking.ChunkSize = DefaultChunkSize
	}
	if cfg.Chunking.OverlapSentences < 0 {
		cfg.Chunking.OverlapSentences = DefaultOverlapSentences
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}
	if cfg.Sessions.MaxSessions <= 0 {
		cfg.Sessions.MaxSessions = DefaultMaxSessions
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
