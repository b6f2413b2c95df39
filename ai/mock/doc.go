// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ProfileSummarizer,
// ai.MatchEvaluator, and ai.AIProvider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockEval := mock.NewMockMatchEvaluator()
//	mockEval.EvaluateMatchesFunc = func(ctx context.Context, req *ai.EvaluationRequest) (*ai.EvaluationResult, error) {
//	    return nil, errors.New("model unavailable")
//	}
//
//	// Check call counts
//	count := mockEval.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockProfileSummarizer: Splits profile sentences across the three fields
//   - MockMatchEvaluator: Approves candidates in order up to the approval budget
//   - MockProvider: Aggregates the three mock services
package mock
