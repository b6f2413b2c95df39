package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/talentmatch/ai"
)

// MockMatchEvaluator is a test double for ai.MatchEvaluator.
// It allows custom behavior injection via function fields.
type MockMatchEvaluator struct {
	// EvaluateMatchesFunc is called by EvaluateMatches if set.
	// If nil, uses default approve-in-order behavior.
	EvaluateMatchesFunc func(ctx context.Context, req *ai.EvaluationRequest) (*ai.EvaluationResult, error)

	callCount int
}

// NewMockMatchEvaluator creates a mock evaluator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockEvaluator().
func NewMockMatchEvaluator() *MockMatchEvaluator {
	return &MockMatchEvaluator{}
}

// EvaluateMatches approves candidates in request order up to MaxApprovals and
// rejects the rest. The default behavior mirrors a maximally agreeable model.
func (m *MockMatchEvaluator) EvaluateMatches(ctx context.Context, req *ai.EvaluationRequest) (*ai.EvaluationResult, error) {
	m.callCount++

	if m.EvaluateMatchesFunc != nil {
		return m.EvaluateMatchesFunc(ctx, req)
	}

	result := &ai.EvaluationResult{}
	for i, c := range req.Candidates {
		if i < req.MaxApprovals {
			result.Approved = append(result.Approved, ai.Approval{
				Ref:           c.Ref,
				Justification: fmt.Sprintf("mock approval for %q", c.Title),
			})
		} else {
			result.Rejected = append(result.Rejected, ai.Rejection{
				Ref:    c.Ref,
				Reason: "mock rejection: over approval budget",
			})
		}
	}
	return result, nil
}

// CallCount returns the number of times EvaluateMatches was called.
func (m *MockMatchEvaluator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockMatchEvaluator) Reset() {
	m.callCount = 0
	m.EvaluateMatchesFunc = nil
}
