package mock

import (
	"context"
	"strings"

	"github.com/poiesic/talentmatch/ai"
)

// MockProfileSummarizer is a test double for ai.ProfileSummarizer.
// It allows custom behavior injection via function fields.
type MockProfileSummarizer struct {
	// SummarizeProfileFunc is called by SummarizeProfile if set.
	// If nil, uses default sentence-splitting behavior.
	SummarizeProfileFunc func(ctx context.Context, profileText string) (*ai.FieldSummaries, error)

	callCount int
}

// NewMockProfileSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSummarizer().
func NewMockProfileSummarizer() *MockProfileSummarizer {
	return &MockProfileSummarizer{}
}

// SummarizeProfile produces deterministic summaries without an LLM.
// Default behavior: the first sentence becomes identity, the second becomes
// preferences, everything after becomes interests.
func (m *MockProfileSummarizer) SummarizeProfile(ctx context.Context, profileText string) (*ai.FieldSummaries, error) {
	m.callCount++

	if m.SummarizeProfileFunc != nil {
		return m.SummarizeProfileFunc(ctx, profileText)
	}

	sentences := splitSentences(profileText)
	result := &ai.FieldSummaries{}
	if len(sentences) > 0 {
		result.Identity = sentences[0]
	}
	if len(sentences) > 1 {
		result.Preferences = sentences[1]
	}
	if len(sentences) > 2 {
		result.Interests = strings.Join(sentences[2:], " ")
	}
	return result, nil
}

// CallCount returns the number of times SummarizeProfile was called.
func (m *MockProfileSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockProfileSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeProfileFunc = nil
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p+".")
		}
	}
	return sentences
}
