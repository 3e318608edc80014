package domain

// Answer is the result of asking a question against a session.
// It is transient: computed per request and never persisted beyond the
// conversation turn it produces.
type Answer struct {
	// Text is the answer itself.
	Text string `json:"answer"`

	// Confidence is in [0, 1]. For the local path it is the mean cosine
	// similarity of the retrieved chunks; for the remote path it is the
	// model's self-assessed score. Zero when no answer was found.
	Confidence float64 `json:"confidence_score"`

	// ContextPreview is the retrieved context truncated for display.
	ContextPreview string `json:"relevant_context"`

	// Sources are the retrieved chunk texts in similarity-rank order.
	// Empty on the remote path, which prompts with the raw document
	// prefix instead of retrieved chunks.
	Sources []string `json:"sources,omitempty"`
}

// SummaryOptions configures the hybrid summarization pipeline.
type SummaryOptions struct {
	// SentenceBudget is the extractive sentence count (default 5).
	SentenceBudget int

	// Profession tailors the abstractive rewrite ("general reader"
	// when empty).
	Profession string

	// Purpose is the summarization focus ("overview" when empty).
	Purpose string

	// DocType overrides classification when non-empty and not "auto".
	DocType string
}

// SummaryResult is the structured output of the hybrid summarizer.
type SummaryResult struct {
	DocumentType      string            `json:"document_type"`
	ExtractiveSummary string            `json:"extractive_summary"`
	ContextPrompt     string            `json:"context_prompt"`
	FinalSummary      string            `json:"final_summary"`
	Metadata          map[string]string `json:"metadata"`
}

// FlashcardOptions configures flashcard generation.
type FlashcardOptions struct {
	// NumCards is how many cards to produce (default 10).
	NumCards int

	// CardType is the card style ("question_answer" when empty).
	CardType string

	// Language is the output language ("english" when empty).
	Language string

	// Difficulty optionally biases the card difficulty.
	Difficulty string
}

// Flashcard is a generated study card.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Topic    string `json:"topic"`
	Hint     string `json:"hint,omitempty"`
}
