package driven

import "context"

// LLMService provides generation model operations.
// This is an optional service - when nil, features degrade gracefully to
// local extractive behaviour.
//
// Implementations may include:
//   - OpenAI (chat completions API and compatible servers)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a system instruction and
	// a user prompt.
	Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
