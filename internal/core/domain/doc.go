// Package domain defines the core business entities for IntelliDoc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: One document bound to its chunks, embeddings and history
//   - Chunk: The unit of retrieval within a document
//   - ConversationTurn: One question/answer exchange
//   - Answer: The result of asking a question against a session
//   - SummaryResult: The result of the hybrid summarization pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
