package textrank

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/embedding/hash"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
)

type failingEmbedder struct {
	*hash.EmbeddingService
}

func (f *failingEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("embedding backend down")
}

func longSentences(n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = fmt.Sprintf("Sentence %d discusses the shared central subject in considerable detail today.", i)
	}
	return out
}

func TestRankSentences_FitsWithinBudget(t *testing.T) {
	r := NewRanker(hash.New())

	sentences := []string{"First sentence here.", "Second sentence here."}
	got, err := r.RankSentences(context.Background(), sentences, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	if got[0] != sentences[0] || got[1] != sentences[1] {
		t.Errorf("expected sentences unmodified in original order, got %v", got)
	}
}

func TestRankSentences_TooFewEligible(t *testing.T) {
	r := NewRanker(hash.New())

	// Only one sentence reaches the six-word eligibility bar.
	sentences := []string{
		"Short one.",
		"Tiny.",
		"Also small.",
		"This single sentence has more than six words in total.",
		"No.",
		"Brief again.",
	}
	got, err := r.RankSentences(context.Background(), sentences, 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 3 {
		t.Fatalf("expected first 3 raw sentences, got %d", len(got))
	}
	for i := 0; i < 3; i++ {
		if got[i] != sentences[i] {
			t.Errorf("position %d: expected %q, got %q", i, sentences[i], got[i])
		}
	}
}

func TestRankSentences_SelectsBudgetInDocumentOrder(t *testing.T) {
	r := NewRanker(hash.New())

	sentences := longSentences(10)
	got, err := r.RankSentences(context.Background(), sentences, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 sentences, got %d", len(got))
	}

	// Selection must preserve original document order.
	positions := make(map[string]int, len(sentences))
	for i, s := range sentences {
		positions[s] = i
	}
	prev := -1
	for _, s := range got {
		pos, ok := positions[s]
		if !ok {
			t.Fatalf("returned sentence not from input: %q", s)
		}
		if pos <= prev {
			t.Errorf("selection out of document order: position %d after %d", pos, prev)
		}
		prev = pos
	}
}

func TestRankSentences_IneligibleExcludedFromRanking(t *testing.T) {
	r := NewRanker(hash.New())

	sentences := append(longSentences(8), "Tiny.", "No.")
	got, err := r.RankSentences(context.Background(), sentences, 5)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range got {
		if s == "Tiny." || s == "No." {
			t.Errorf("short sentence selected despite eligibility bar: %q", s)
		}
	}
}

func TestRankSentences_EmbeddingFailure(t *testing.T) {
	r := NewRanker(&failingEmbedder{hash.New()})

	_, err := r.RankSentences(context.Background(), longSentences(10), 3)
	if !errors.Is(err, domain.ErrProcessing) {
		t.Fatalf("expected ErrProcessing, got %v", err)
	}
}

func TestPagerank_UniformGraph(t *testing.T) {
	// A fully connected graph with equal weights must converge to equal
	// scores.
	n := 5
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
		for j := range weights[i] {
			if i != j {
				weights[i][j] = 1
			}
		}
	}

	scores, ok := pagerank(weights)
	if !ok {
		t.Fatal("expected convergence on uniform graph")
	}
	for i := 1; i < n; i++ {
		if diff := scores[i] - scores[0]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("expected uniform scores, got %v", scores)
		}
	}
}

func TestPagerank_CentralNodeWins(t *testing.T) {
	// Star graph: node 0 connects to everyone, others only to node 0.
	n := 5
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	for i := 1; i < n; i++ {
		weights[0][i] = 1
		weights[i][0] = 1
	}

	scores, ok := pagerank(weights)
	if !ok {
		t.Fatal("expected convergence on star graph")
	}
	for i := 1; i < n; i++ {
		if scores[0] <= scores[i] {
			t.Errorf("expected hub to outrank leaf %d: %v", i, scores)
		}
	}
}
