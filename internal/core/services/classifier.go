package services

import "strings"

// docTypeKeywords maps document types to their marker words. Order
// matters: the first type with any keyword present in the text wins.
var docTypeKeywords = []struct {
	docType  string
	keywords []string
}{
	{"resume", []string{"experience", "skills", "qualifications", "education", "certifications"}},
	{"legal", []string{"agreement", "contract", "shall", "pursuant to", "testament"}},
	{"academic", []string{"research", "study", "methodology", "abstract", "hypothesis"}},
	{"news", []string{"breaking news", "announced", "reported", "authorities said"}},
	{"financial", []string{"invoice", "earnings", "balance", "fiscal year", "revenue"}},
	{"technical", []string{"install", "api", "server", "database", "configure"}},
	{"email", []string{"subject:", "dear", "best regards", "sincerely"}},
	{"review", []string{"stars", "recommend", "rating", "customer service"}},
	{"story", []string{"chapter", "once upon a time", "character", "plot"}},
}

// ClassifyDocument assigns a document type by keyword matching.
// Returns "unknown" when no keyword set matches.
func ClassifyDocument(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range docTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.docType
			}
		}
	}
	return "unknown"
}
