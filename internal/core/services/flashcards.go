package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driving"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/metrics"
)

// Ensure FlashcardService implements the interface.
var _ driving.FlashcardService = (*FlashcardService)(nil)

const (
	// minFlashcardChars is the smallest text flashcards can be made from.
	minFlashcardChars = 50

	// flashcardInputLimit bounds the text sent to the generation model.
	flashcardInputLimit = 2000

	// DefaultNumCards is how many cards are produced by default.
	DefaultNumCards = 10

	// maxFallbackCards caps the deterministic fallback output.
	maxFallbackCards = 5

	// fallbackWindowWords is the word window per fallback card.
	fallbackWindowWords = 20
)

const flashcardSystemInstruction = "You are a helpful flashcard generation assistant. Your output must be a valid JSON array of flashcard objects."

// FlashcardService generates study cards from document text. With a
// generation model it prompts for structured JSON; without one, or when
// the model's output cannot be parsed, it derives simple cards from
// word windows.
type FlashcardService struct {
	llm     driven.LLMService // optional
	log     zerolog.Logger
	metrics *metrics.Metrics // optional
}

// NewFlashcardService creates a flashcard service. llm may be nil.
func NewFlashcardService(llm driven.LLMService, log zerolog.Logger) *FlashcardService {
	return &FlashcardService{llm: llm, log: log}
}

// SetMetrics attaches Prometheus collectors.
func (s *FlashcardService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Generate produces up to opts.NumCards flashcards from text.
func (s *FlashcardService) Generate(ctx context.Context, text string, opts domain.FlashcardOptions) ([]domain.Flashcard, error) {
	text = strings.TrimSpace(text)
	if len(text) < minFlashcardChars {
		return nil, fmt.Errorf("%w: text is too short for flashcards, provide at least %d characters", domain.ErrInvalidInput, minFlashcardChars)
	}

	numCards := opts.NumCards
	if numCards <= 0 {
		numCards = DefaultNumCards
	}
	cardType := opts.CardType
	if cardType == "" {
		cardType = "question_answer"
	}
	language := opts.Language
	if language == "" {
		language = "english"
	}

	cards := s.generateWithModel(ctx, text, numCards, cardType, language, opts.Difficulty)
	if cards == nil {
		cards = fallbackFlashcards(text, numCards)
	}

	if s.metrics != nil {
		s.metrics.FlashcardsTotal.Add(float64(len(cards)))
	}
	return cards, nil
}

// generateWithModel prompts the generation model for a JSON card
// array. Returns nil when no model is configured or the output is
// unusable, so the caller can fall back.
func (s *FlashcardService) generateWithModel(ctx context.Context, text string, numCards int, cardType, language, difficulty string) []domain.Flashcard {
	if s.llm == nil {
		return nil
	}

	difficultyText := ""
	if difficulty != "" {
		difficultyText = fmt.Sprintf(" at %s difficulty level", difficulty)
	}

	prompt := fmt.Sprintf(`Generate %d %s flashcards from the following text in %s%s.

Text:
%s

Create exactly %d flashcards in JSON format:
[
  {"question": "...", "answer": "...", "topic": "...", "hint": "..."},
  ...
]

Only return the JSON array, nothing else.`,
		numCards, cardType, language, difficultyText,
		truncateRunes(text, flashcardInputLimit),
		numCards,
	)

	raw, err := s.llm.Generate(ctx, flashcardSystemInstruction, prompt, driven.GenerateOptions{
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("flashcard generation failed, using fallback cards")
		return nil
	}

	// Locate the outermost JSON array in case the model added prose.
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		s.log.Warn().Msg("flashcard output contained no JSON array, using fallback cards")
		return nil
	}

	var cards []domain.Flashcard
	if err := json.Unmarshal([]byte(raw[start:end+1]), &cards); err != nil {
		s.log.Warn().Err(err).Msg("flashcard JSON unparseable, using fallback cards")
		return nil
	}
	if len(cards) == 0 {
		return nil
	}
	if len(cards) > numCards {
		cards = cards[:numCards]
	}
	return cards
}

// fallbackFlashcards derives deterministic cards from fixed word
// windows of the text.
func fallbackFlashcards(text string, numCards int) []domain.Flashcard {
	words := strings.Fields(text)

	n := numCards
	if n > maxFallbackCards {
		n = maxFallbackCards
	}

	var cards []domain.Flashcard
	for i := 0; i < n; i++ {
		lo := i * fallbackWindowWords
		if lo >= len(words) {
			break
		}
		hi := lo + fallbackWindowWords
		if hi > len(words) {
			hi = len(words)
		}
		cards = append(cards, domain.Flashcard{
			Question: fmt.Sprintf("What is covered in section %d?", i+1),
			Answer:   strings.Join(words[lo:hi], " "),
			Topic:    fmt.Sprintf("Section %d", i+1),
			Hint:     "Review the document content",
		})
	}
	return cards
}
