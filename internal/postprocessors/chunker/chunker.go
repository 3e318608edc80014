// Package chunker provides sentence-based text chunking with overlap.
package chunker

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
)

// DefaultChunkSize is the default word budget per chunk.
const DefaultChunkSize = 200

// DefaultOverlapSentences is the default number of sentences carried over
// from a closed chunk into the next one.
const DefaultOverlapSentences = 2

// Splitter splits document text into overlapping, size-bounded sentence
// groups. It is deterministic and holds no mutable state.
type Splitter struct {
	chunkSize        int
	overlapSentences int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the word budget per chunk.
func WithChunkSize(words int) Option {
	return func(s *Splitter) {
		if words > 0 {
			s.chunkSize = words
		}
	}
}

// WithOverlapSentences sets how many sentences a new chunk inherits from
// the previous one.
func WithOverlapSentences(n int) Option {
	return func(s *Splitter) {
		if n >= 0 {
			s.overlapSentences = n
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:        DefaultChunkSize,
		overlapSentences: DefaultOverlapSentences,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sentences splits text on terminal punctuation (. ! ?) followed by
// whitespace. Trailing text without terminal punctuation is kept as a
// final sentence, so joining the result loses nothing but the exact
// whitespace between sentences.
func Sentences(text string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Only a sentence boundary when followed by whitespace or EOF,
		// so "3.5" or "e.g." mid-token stays intact.
		j := i + 1
		if j < len(runes) && !unicode.IsSpace(runes[j]) {
			continue
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		i = j - 1
	}

	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// Split chunks text into sentence groups bounded by the word budget.
// A new chunk starts when adding the next sentence would overflow the
// budget; it is seeded with the last overlapSentences sentences of the
// closed chunk to preserve local context across the boundary.
//
// A single sentence longer than the budget is kept whole and may exceed
// the nominal size. The trailing partial chunk is always emitted.
// Empty or whitespace-only input yields nil.
func (s *Splitter) Split(text string) []string {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	words := 0

	for _, sentence := range sentences {
		n := len(strings.Fields(sentence))
		if words+n > s.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			start := len(current) - s.overlapSentences
			if start < 0 {
				start = 0
			}
			overlap := make([]string, len(current)-start)
			copy(overlap, current[start:])
			current = overlap
			words = 0
			for _, kept := range current {
				words += len(strings.Fields(kept))
			}
		}
		current = append(current, sentence)
		words += n
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// Chunks splits text and wraps each piece as a domain.Chunk with a fresh
// id and its source position.
func (s *Splitter) Chunks(text string) []domain.Chunk {
	pieces := s.Split(text)
	if len(pieces) == 0 {
		return nil
	}
	chunks := make([]domain.Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = domain.Chunk{
			ID:       uuid.New().String(),
			Position: i,
			Content:  content,
		}
	}
	return chunks
}
