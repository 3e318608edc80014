// Package index ranks embedding vectors by cosine similarity.
package index

import (
	"math"
	"sort"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
)

// DefaultTopK is the default number of chunks retrieved per query.
const DefaultTopK = 3

// Hit is one ranked corpus entry.
type Hit struct {
	// Index is the position of the matched vector in the corpus.
	Index int

	// Score is the cosine similarity against the query, in [-1, 1].
	Score float64
}

// Cosine returns the cosine similarity between two vectors.
// Mismatched lengths or zero-norm vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank orders corpus vectors by descending similarity to the query and
// returns the top k hits. When k <= 0 it defaults to DefaultTopK; when
// the corpus holds fewer than k vectors, all are returned. Equal scores
// keep the earlier corpus index first.
// An empty corpus fails with domain.ErrProcessing.
func Rank(query []float32, corpus [][]float32, topK int) ([]Hit, error) {
	if len(corpus) == 0 {
		return nil, domain.ErrProcessing
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > len(corpus) {
		topK = len(corpus)
	}

	hits := make([]Hit, len(corpus))
	for i, vec := range corpus {
		hits[i] = Hit{Index: i, Score: Cosine(query, vec)}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	return hits[:topK], nil
}

// Confidence is the arithmetic mean of the hit scores, rounded to three
// decimals. No hits score 0.
func Confidence(hits []Hit) float64 {
	if len(hits) == 0 {
		return 0
	}
	var sum float64
	for _, h := range hits {
		sum += h.Score
	}
	return math.Round(sum/float64(len(hits))*1000) / 1000
}
