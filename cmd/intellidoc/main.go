package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/config/file"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/embedding/hash"
	ollamaembed "github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/llm/ollama"
	openaillm "github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/llm/openai"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/storage/memory"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driving/cli"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/services"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/logger"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/metrics"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/postprocessors/chunker"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/textrank"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// Secrets come from the environment; a local .env is optional.
	_ = godotenv.Load()

	store, err := file.NewStore(os.Getenv("INTELLIDOC_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level})

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	if llm != nil {
		defer llm.Close()
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, log)
	}

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSize),
		chunker.WithOverlapSentences(cfg.Chunking.OverlapSentences),
	)
	sessions := memory.NewSessionStore(splitter, embedder,
		memory.WithMaxSessions(cfg.Sessions.MaxSessions),
		memory.WithEvictionHook(func(id string) {
			log.Info().Str("session_id", id).Msg("session evicted")
			m.SessionsEvicted.Inc()
			m.SessionsActive.Dec()
		}),
	)

	chatSvc := services.NewChatService(sessions, embedder, llm, log)
	chatSvc.SetTopK(cfg.Retrieval.TopK)
	chatSvc.SetMetrics(m)

	summarySvc := services.NewSummaryService(textrank.NewRanker(embedder), llm, log)
	summarySvc.SetMetrics(m)

	flashcardSvc := services.NewFlashcardService(llm, log)
	flashcardSvc.SetMetrics(m)

	cli.SetServices(chatSvc, summarySvc, flashcardSvc)
	cli.SetVersion(version)
	return cli.Execute()
}

func buildEmbedder(cfg file.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "hash", "":
		return hash.New(), nil
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

func buildLLM(cfg file.Config) (driven.LLMService, error) {
	switch cfg.LLM.Provider {
	case "none":
		return nil, nil
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:            os.Getenv("OPENAI_API_KEY"),
			BaseURL:           cfg.LLM.BaseURL,
			Model:             cfg.LLM.Model,
			RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		})
	case "ollama", "":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func serveMetrics(addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Str("addr", addr).Msg("metrics endpoint listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics endpoint failed")
	}
}
