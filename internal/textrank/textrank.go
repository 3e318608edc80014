// Package textrank ranks sentences by graph centrality over a
// sentence-similarity graph, for extractive summarization.
package textrank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/index"
)

// Ranking parameters for the power iteration.
const (
	damping       = 0.85
	maxIterations = 100
	tolerance     = 1e-6
)

// minEligibleWords is the smallest sentence length (in words) that takes
// part in ranking. Shorter sentences carry too little signal.
const minEligibleWords = 6

// Ranker scores sentences by centrality in their similarity graph.
// The embedding service is injected explicitly; the ranker holds no
// hidden model state.
type Ranker struct {
	embedder driven.EmbeddingService
}

// NewRanker creates a ranker backed by the given embedding service.
func NewRanker(embedder driven.EmbeddingService) *Ranker {
	return &Ranker{embedder: embedder}
}

// RankSentences selects the n most central sentences and returns them in
// original document order.
//
// When the input already fits the budget it is returned unchanged. When
// fewer than two sentences are eligible for ranking, the first n raw
// sentences are returned unranked. When the centrality computation does
// not converge, the first n eligible sentences are returned instead.
func (r *Ranker) RankSentences(ctx context.Context, sentences []string, n int) ([]string, error) {
	if n <= 0 {
		n = 5
	}
	if len(sentences) <= n {
		out := make([]string, len(sentences))
		copy(out, sentences)
		return out, nil
	}

	var eligible []string
	for _, s := range sentences {
		if len(strings.Fields(s)) >= minEligibleWords {
			eligible = append(eligible, strings.TrimSpace(s))
		}
	}
	if len(eligible) < 2 {
		return firstN(sentences, n), nil
	}

	embeddings, err := r.embedder.EmbedBatch(ctx, eligible)
	if err != nil {
		return nil, fmt.Errorf("%w: embed sentences: %v", domain.ErrProcessing, err)
	}

	similarity := similarityMatrix(embeddings)
	scores, ok := pagerank(similarity)
	if !ok {
		return firstN(eligible, n), nil
	}

	selected := topIndices(scores, n)
	sort.Ints(selected)

	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = eligible[idx]
	}
	return out, nil
}

func firstN(sentences []string, n int) []string {
	if n > len(sentences) {
		n = len(sentences)
	}
	out := make([]string, n)
	copy(out, sentences[:n])
	return out
}

// similarityMatrix builds the complete weighted graph over sentence
// embeddings. Negative similarities are clamped to zero so edge weights
// stay non-negative for the centrality walk.
func similarityMatrix(embeddings [][]float32) [][]float64 {
	n := len(embeddings)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i == j {
				continue
			}
			if sim := index.Cosine(embeddings[i], embeddings[j]); sim > 0 {
				m[i][j] = sim
			}
		}
	}
	return m
}

// pagerank runs power iteration over the weighted adjacency matrix.
// Returns the stationary scores and whether the iteration converged.
func pagerank(weights [][]float64) ([]float64, bool) {
	n := len(weights)
	if n == 0 {
		return nil, false
	}

	outWeight := make([]float64, n)
	for i := range weights {
		for _, w := range weights[i] {
			outWeight[i] += w
		}
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	base := (1 - damping) / float64(n)
	for iter := 0; iter < maxIterations; iter++ {
		// Dangling mass (nodes with no outgoing weight) is spread
		// uniformly, as in the reference formulation.
		var dangling float64
		for i := range scores {
			if outWeight[i] == 0 {
				dangling += scores[i]
			}
		}

		for i := range next {
			rank := base + damping*dangling/float64(n)
			for j := range weights {
				if weights[j][i] > 0 {
					rank += damping * scores[j] * weights[j][i] / outWeight[j]
				}
			}
			next[i] = rank
		}

		var delta float64
		for i := range scores {
			delta += math.Abs(next[i] - scores[i])
		}
		copy(scores, next)

		if delta < tolerance*float64(n) {
			return scores, true
		}
	}
	return nil, false
}

// topIndices returns the indices of the n highest scores, ties resolved
// toward the earlier index.
func topIndices(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}
