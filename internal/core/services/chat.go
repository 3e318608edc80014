package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/domain"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driven"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/core/ports/driving"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/index"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/metrics"
	"github.com/Vikrant-K-Thakur/IntelliDoc/internal/postprocessors/chunker"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

const (
	// contextPreviewLimit bounds the context preview in answers.
	contextPreviewLimit = 500

	// documentPreviewLimit bounds the document preview in history views.
	documentPreviewLimit = 200

	// remoteContextLimit bounds the document prefix sent to the
	// generation model.
	remoteContextLimit = 5000

	// remoteHistoryTurns is how many recent exchanges accompany a
	// remote question.
	remoteHistoryTurns = 3

	// answerSentences is how many context sentences make up a local
	// extractive answer.
	answerSentences = 2
)

// noAnswerMessage is returned when no context sentence shares a word
// with the question.
const noAnswerMessage = "I couldn't find a specific answer to your question in the document. Could you rephrase or ask something else?"

const remoteSystemInstruction = `You are a helpful and expert document analysis assistant.
Your task is to answer the user's question STRICTLY based on the provided "DOCUMENT CONTEXT".
Be concise and accurate. If the answer cannot be found in the context, your response MUST state that explicitly.
Format your final response as a JSON object with two keys:
1. "answer": The generated answer.
2. "confidence_score": A self-assessed float score (0.0 to 1.0) indicating your confidence that the answer is fully supported by the document context (1.0 is 100% supported).
DO NOT include any text outside the JSON object.`

// ChatService answers questions about uploaded documents. Each
// document lives in a session; answers come either from the local
// retrieval path or, on request, from the generation model with the
// local path as fallback.
type ChatService struct {
	store    driven.SessionStore
	embedder driven.EmbeddingService
	llm      driven.LLMService // optional
	log      zerolog.Logger
	topK     int
	metrics  *metrics.Metrics // optional
}

// NewChatService creates a chat service. llm may be nil, in which case
// remote answering degrades to the local path.
func NewChatService(
	store driven.SessionStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{
		store:    store,
		embedder: embedder,
		llm:      llm,
		log:      log,
		topK:     index.DefaultTopK,
	}
}

// SetTopK overrides how many chunks are retrieved per question.
func (s *ChatService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// SetMetrics attaches Prometheus collectors.
func (s *ChatService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// CreateSession stores a document under a fresh session id.
func (s *ChatService) CreateSession(ctx context.Context, documentText string, metadata map[string]string) (domain.SessionInfo, error) {
	id := uuid.New().String()

	count, err := s.store.Create(ctx, id, documentText, metadata)
	if err != nil {
		return domain.SessionInfo{}, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().
		Str("session_id", id).
		Int("chunks", count).
		Int("document_length", len(documentText)).
		Msg("session created")

	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
		s.metrics.SessionsActive.Inc()
	}

	return domain.SessionInfo{SessionID: id, ChunkCount: count}, nil
}

// Ask answers a question against a session and records the exchange.
func (s *ChatService) Ask(ctx context.Context, sessionID, question string, useRemote bool) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Answer{}, err
	}

	start := time.Now()
	path := "local"

	var answer domain.Answer
	if useRemote && s.llm != nil {
		answer, err = s.remoteAnswer(ctx, sess, question)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("session_id", sessionID).
				Msg("remote answer failed, falling back to local retrieval")
			if s.metrics != nil {
				s.metrics.FallbacksTotal.Inc()
			}
			answer, err = s.localAnswer(ctx, sess, question)
		} else {
			path = "remote"
		}
	} else {
		answer, err = s.localAnswer(ctx, sess, question)
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordQuestion(path, "error", time.Since(start))
		}
		return domain.Answer{}, err
	}

	turn := domain.ConversationTurn{
		Question:  question,
		Answer:    answer.Text,
		Timestamp: time.Now(),
	}
	if err := s.store.AppendTurn(ctx, sessionID, turn); err != nil {
		return domain.Answer{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordQuestion(path, "ok", time.Since(start))
	}
	return answer, nil
}

// localAnswer retrieves the most similar chunks and selects answer
// sentences by lexical overlap with the question.
func (s *ChatService) localAnswer(ctx context.Context, sess *domain.Session, question string) (domain.Answer, error) {
	qvec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: embed question: %v", domain.ErrProcessing, err)
	}

	hits, err := index.Rank(qvec, sess.Embeddings, s.topK)
	if err != nil {
		return domain.Answer{}, err
	}

	sources := make([]string, len(hits))
	for i, hit := range hits {
		sources[i] = sess.Chunks[hit.Index].Content
	}
	contextText := strings.Join(sources, " ")
	confidence := index.Confidence(hits)

	text, found := extractAnswer(question, contextText)
	if !found {
		confidence = 0
	}

	return domain.Answer{
		Text:           text,
		Confidence:     confidence,
		ContextPreview: preview(contextText, contextPreviewLimit),
		Sources:        sources,
	}, nil
}

// remoteAnswer prompts the generation model with the leading document
// context and recent history, expecting a structured JSON reply.
// Retrieval is deliberately skipped here: the model sees the raw
// document prefix, not ranked chunks.
func (s *ChatService) remoteAnswer(ctx context.Context, sess *domain.Session, question string) (domain.Answer, error) {
	history := sess.History
	if len(history) > remoteHistoryTurns {
		history = history[len(history)-remoteHistoryTurns:]
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("marshal history: %w", err)
	}

	prompt := fmt.Sprintf(`DOCUMENT CONTEXT:
%s

CONVERSATION HISTORY (Last %d Exchanges):
%s

CURRENT QUESTION: %s

Your JSON response:`,
		truncateRunes(sess.DocumentText, remoteContextLimit),
		remoteHistoryTurns,
		historyJSON,
		question,
	)

	raw, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: remoteSystemInstruction},
		{Role: "user", Content: prompt},
	}, driven.GenerateOptions{MaxTokens: 500, Temperature: 0.2})
	if err != nil {
		return domain.Answer{}, err
	}

	var parsed struct {
		Answer     string  `json:"answer"`
		Confidence float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &parsed); err != nil {
		return domain.Answer{}, fmt.Errorf("%w: generation model returned unparseable output: %v", domain.ErrUpstream, err)
	}
	if parsed.Answer == "" {
		return domain.Answer{}, fmt.Errorf("%w: generation model returned no answer", domain.ErrUpstream)
	}

	return domain.Answer{
		Text:           parsed.Answer,
		Confidence:     parsed.Confidence,
		ContextPreview: preview(sess.DocumentText, contextPreviewLimit),
	}, nil
}

// History returns the full conversation view for a session.
func (s *ChatService) History(ctx context.Context, sessionID string) (domain.Conversation, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Conversation{}, err
	}

	return domain.Conversation{
		Turns:           sess.History,
		DocumentPreview: preview(sess.DocumentText, documentPreviewLimit),
		CreatedAt:       sess.CreatedAt,
		TurnCount:       len(sess.History),
	}, nil
}

// DeleteSession removes a session, reporting whether it existed.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) bool {
	existed := s.store.Delete(ctx, sessionID)
	if existed {
		s.log.Info().Str("session_id", sessionID).Msg("session deleted")
		if s.metrics != nil {
			s.metrics.SessionsDeleted.Inc()
			s.metrics.SessionsActive.Dec()
		}
	}
	return existed
}

// ClearHistory empties a session's conversation log.
func (s *ChatService) ClearHistory(ctx context.Context, sessionID string) error {
	return s.store.ClearHistory(ctx, sessionID)
}

// Sessions lists all active sessions.
func (s *ChatService) Sessions(ctx context.Context) []domain.SessionSummary {
	return s.store.List(ctx)
}

// extractAnswer selects up to answerSentences context sentences by
// descending word overlap with the question. Ties keep original
// context order. Reports false when no sentence overlaps at all.
func extractAnswer(question, contextText string) (string, bool) {
	questionWords := wordSet(question)

	type scored struct {
		overlap  int
		sentence string
	}
	var candidates []scored
	for _, sentence := range chunker.Sentences(contextText) {
		overlap := 0
		for w := range wordSet(sentence) {
			if _, ok := questionWords[w]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			candidates = append(candidates, scored{overlap, sentence})
		}
	}
	if len(candidates) == 0 {
		return noAnswerMessage, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})
	if len(candidates) > answerSentences {
		candidates = candidates[:answerSentences]
	}

	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.sentence
	}
	return strings.TrimSpace(strings.Join(parts, " ")), true
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// stripJSONFences removes markdown code fences some models wrap around
// JSON output.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// preview truncates s to limit characters with an ellipsis marker.
func preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return truncateRunes(s, limit) + "..."
}

// truncateRunes cuts s to at most n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
