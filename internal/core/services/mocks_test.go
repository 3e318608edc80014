package services

import (
	"context"
	"errors"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response    string
	err         error
	lastSystem  string
	lastPrompt  string
	lastMsgs    []driven.ChatMessage
	lastOpts    driven.GenerateOptions
	generateHit int
	chatHit     int
}

func (m *mockLLM) Generate(_ context.Context, system, prompt string, opts driven.GenerateOptions) (string, error) {
	m.generateHit++
	m.lastSystem = system
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.GenerateOptions) (string, error) {
	m.chatHit++
	m.lastMsgs = messages
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// brokenEmbedder implements driven.EmbeddingService and always fails.
type brokenEmbedder struct{}

func (brokenEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("embedding backend down")
}

func (brokenEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("embedding backend down")
}

func (brokenEmbedder) Dimensions() int             { return 0 }
func (brokenEmbedder) ModelName() string           { return "broken" }
func (brokenEmbedder) Ping(_ context.Context) error { return errors.New("down") }
func (brokenEmbedder) Close() error                { return nil }
