package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/adapters/driven/embedding/hash"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/logger"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/textrank"
)

const summaryTestDocument = "To install the service you must first configure the database connection string in the settings file. " +
	"The api server listens on port eight thousand by default and accepts standard requests. " +
	"Administrators should configure the backup schedule before enabling production traffic for the cluster. " +
	"Monitoring dashboards display request latency and error rates for every deployed instance right away. " +
	"The database migration tool runs automatically whenever a new release is deployed to the server. " +
	"Client libraries are available for several languages and follow the same authentication conventions. " +
	"Support contracts include response time guarantees for critical production incidents reported by customers."

func newSummaryFixture(llm *mockLLM) *SummaryService {
	ranker := textrank.NewRanker(hash.New())
	if llm == nil {
		return NewSummaryService(ranker, nil, logger.Nop())
	}
	return NewSummaryService(ranker, llm, logger.Nop())
}

func TestSummaryService_InputTooShort(t *testing.T) {
	svc := newSummaryFixture(nil)

	_, err := svc.Summarize(context.Background(), "far too short", domain.SummaryOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummaryService_ExtractiveOnly(t *testing.T) {
	svc := newSummaryFixture(nil)

	result, err := svc.Summarize(context.Background(), summaryTestDocument, domain.SummaryOptions{SentenceBudget: 3})

	require.NoError(t, err)
	assert.Equal(t, "technical", result.DocumentType)
	assert.NotEmpty(t, result.ExtractiveSummary)
	assert.Equal(t, result.ExtractiveSummary, result.FinalSummary)
	assert.Contains(t, result.ContextPrompt, "Summarize this technical document for a general reader focusing on overview:")
	assert.Equal(t, "3", result.Metadata["num_sentences"])
	assert.Equal(t, "general reader", result.Metadata["profession"])
}

func TestSummaryService_ExtractiveSentencesComeFromSource(t *testing.T) {
	svc := newSummaryFixture(nil)

	result, err := svc.Summarize(context.Background(), summaryTestDocument, domain.SummaryOptions{SentenceBudget: 2})

	require.NoError(t, err)
	for _, sentence := range strings.Split(result.ExtractiveSummary, ". ") {
		sentence = strings.TrimSpace(strings.TrimSuffix(sentence, "."))
		if sentence == "" {
			continue
		}
		assert.Contains(t, summaryTestDocument, sentence)
	}
}

func TestSummaryService_Hybrid(t *testing.T) {
	llm := &mockLLM{response: "  A concise rewritten summary.  "}
	svc := newSummaryFixture(llm)

	result, err := svc.Summarize(context.Background(), summaryTestDocument, domain.SummaryOptions{
		Profession: "site reliability engineer",
		Purpose:    "operations",
	})

	require.NoError(t, err)
	assert.Equal(t, "A concise rewritten summary.", result.FinalSummary)
	assert.Equal(t, 1, llm.generateHit)
	assert.Contains(t, llm.lastPrompt, "for a site reliability engineer focusing on operations")
	assert.Equal(t, summarySystemInstruction, llm.lastSystem)
}

func TestSummaryService_UpstreamError(t *testing.T) {
	llm := &mockLLM{err: errors.New("model unreachable")}
	svc := newSummaryFixture(llm)

	_, err := svc.Summarize(context.Background(), summaryTestDocument, domain.SummaryOptions{})

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSummaryService_DocTypeOverride(t *testing.T) {
	svc := newSummaryFixture(nil)

	result, err := svc.Summarize(context.Background(), summaryTestDocument, domain.SummaryOptions{DocType: "Legal"})

	require.NoError(t, err)
	assert.Equal(t, "legal", result.DocumentType)
}

func TestBuildContextPrompt_TokenBudget(t *testing.T) {
	extract := strings.Repeat("word ", 600)

	prompt := buildContextPrompt("technical", "engineer", "overview", extract)

	assert.Len(t, strings.Fields(prompt), promptTokenLimit)
}

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"resume", "Work experience and skills listed below.", "resume"},
		{"legal", "This agreement binds both parties.", "legal"},
		{"academic", "Our research methodology follows a hypothesis.", "academic"},
		{"financial", "The invoice covers the fiscal year.", "financial"},
		{"technical", "Run install and configure the server.", "technical"},
		{"email", "Dear team, best regards.", "email"},
		{"story", "Chapter one introduces the character.", "story"},
		{"unknown", "Nothing matches here at all.", "unknown"},
		{"order precedence", "The contract references prior research.", "legal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDocument(tt.text))
		})
	}
}
