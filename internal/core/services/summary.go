package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driving"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/metrics"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/postprocessors/chunker"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/textrank"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

const (
	// minSummaryWords is the smallest document the summarizer accepts.
	minSummaryWords = 20

	// summaryInputLimit bounds the text fed into the pipeline.
	summaryInputLimit = 10000

	// promptTokenLimit bounds the abstractive instruction.
	promptTokenLimit = 510

	// DefaultSentenceBudget is the extractive sentence count.
	DefaultSentenceBudget = 5
)

const summarySystemInstruction = "You are an expert summarizer. Your task is to provide a concise summary of the text provided by the user."

// SummaryService runs the hybrid summarization pipeline: classify the
// document, extract key sentences by graph centrality, then rewrite
// them abstractively. Without a generation model it stops after the
// extractive step.
type SummaryService struct {
	ranker  *textrank.Ranker
	llm     driven.LLMService // optional
	log     zerolog.Logger
	metrics *metrics.Metrics // optional
}

// NewSummaryService creates a summary service. llm may be nil for
// extractive-only operation.
func NewSummaryService(ranker *textrank.Ranker, llm driven.LLMService, log zerolog.Logger) *SummaryService {
	return &SummaryService{
		ranker: ranker,
		llm:    llm,
		log:    log,
	}
}

// SetMetrics attaches Prometheus collectors.
func (s *SummaryService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Summarize produces a structured hybrid summary of text.
func (s *SummaryService) Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (*domain.SummaryResult, error) {
	if len(strings.Fields(text)) < minSummaryWords {
		return nil, fmt.Errorf("%w: input text is too short, provide at least %d words", domain.ErrInvalidInput, minSummaryWords)
	}

	text = truncateRunes(text, summaryInputLimit)

	budget := opts.SentenceBudget
	if budget <= 0 {
		budget = DefaultSentenceBudget
	}
	profession := opts.Profession
	if profession == "" {
		profession = "general reader"
	}
	purpose := opts.Purpose
	if purpose == "" {
		purpose = "overview"
	}

	docType := strings.ToLower(opts.DocType)
	if docType == "" || docType == "auto" {
		docType = ClassifyDocument(text)
	}

	selected, err := s.ranker.RankSentences(ctx, chunker.Sentences(text), budget)
	if err != nil {
		return nil, fmt.Errorf("extractive summarize: %w", err)
	}
	extractive := strings.TrimSpace(strings.Join(selected, " "))
	if extractive == "" {
		return nil, fmt.Errorf("%w: could not extract key sentences from the document", domain.ErrProcessing)
	}

	prompt := buildContextPrompt(docType, profession, purpose, extractive)

	mode := "extractive"
	final := extractive
	if s.llm != nil {
		final, err = s.llm.Generate(ctx, summarySystemInstruction, prompt, driven.GenerateOptions{
			MaxTokens:   300,
			Temperature: 0.5,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: abstractive summarize: %v", domain.ErrUpstream, err)
		}
		final = strings.TrimSpace(final)
		mode = "hybrid"
	} else {
		s.log.Debug().Msg("no generation model configured, returning extractive summary")
	}

	if s.metrics != nil {
		s.metrics.SummariesTotal.WithLabelValues(mode).Inc()
	}

	return &domain.SummaryResult{
		DocumentType:      docType,
		ExtractiveSummary: extractive,
		ContextPrompt:     prompt,
		FinalSummary:      final,
		Metadata: map[string]string{
			"profession":        profession,
			"purpose":           purpose,
			"num_sentences":     strconv.Itoa(budget),
			"original_length":   strconv.Itoa(len(text)),
			"extractive_length": strconv.Itoa(len(extractive)),
			"final_length":      strconv.Itoa(len(final)),
		},
	}, nil
}

// buildContextPrompt embeds the extract in a rewrite instruction,
// bounded by a whitespace-token budget.
func buildContextPrompt(docType, profession, purpose, extract string) string {
	prompt := fmt.Sprintf("Summarize this %s document for a %s focusing on %s: %s",
		docType, profession, purpose, extract)

	tokens := strings.Fields(prompt)
	if len(tokens) > promptTokenLimit {
		prompt = strings.Join(tokens[:promptTokenLimit], " ")
	}
	return prompt
}
