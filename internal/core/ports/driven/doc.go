// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SessionStore: Session lifecycle and conversation state
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Generation model. Without it, remote answering,
//     abstractive rewriting and flashcard generation are disabled and
//     every path falls back to local extractive behaviour.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
