// Package hash provides a deterministic local embedding service based on
// feature hashing. It needs no external model, so the local answer path
// works offline; vectors are comparable across sessions because there is
// no corpus-dependent vocabulary.
package hash

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions is the hashed feature space size.
const DefaultDimensions = 256

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)

// EmbeddingService hashes lowercased tokens into a fixed-size vector and
// L2-normalizes the result.
type EmbeddingService struct {
	dimensions int
}

// Option configures the embedding service.
type Option func(*EmbeddingService)

// WithDimensions sets the hashed vector size.
func WithDimensions(d int) Option {
	return func(s *EmbeddingService) {
		if d > 0 {
			s.dimensions = d
		}
	}
}

// New creates a feature-hashing embedding service.
func New(opts ...Option) *EmbeddingService {
	s := &EmbeddingService{dimensions: DefaultDimensions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Embed generates the hashed embedding for the given text.
// Text with no tokens embeds to the zero vector.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dimensions)
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		hv := h.Sum32()
		// Sign from a spare hash bit keeps colliding features from
		// always reinforcing each other.
		slot := hv % uint32(s.dimensions)
		if (hv>>16)&1 == 1 {
			vec[slot]++
		} else {
			vec[slot]--
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) * inv)
		}
	}
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the hashed vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName identifies this embedder.
func (s *EmbeddingService) ModelName() string {
	return "feature-hash"
}

// Ping always succeeds: there is nothing remote to reach.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
