package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ProfileSummarizer distills free-form candidate profile text into the three
// embedding field summaries. Implementations must be thread-safe.
type ProfileSummarizer interface {
	// SummarizeProfile produces identity, preferences and interests summaries
	// for the given profile text. Each summary is a short paragraph suitable
	// for embedding on its own.
	// Returns an error if summarization fails; callers are expected to
	// degrade gracefully (e.g. embed the raw text instead).
	SummarizeProfile(ctx context.Context, profileText string) (*FieldSummaries, error)
}

// MatchEvaluator performs qualitative re-ranking of similarity matches.
// Implementations are stateless per call and must be thread-safe.
//
// Evaluation is advisory: any error return is absorbed by the caller's
// similarity fallback and never aborts a matching run.
type MatchEvaluator interface {
	// EvaluateMatches reviews the request's candidates and approves at most
	// request.MaxApprovals of them, each with a one-sentence justification.
	// Responses that violate the schema (unknown or duplicate refs, too many
	// approvals) are rejected with ErrInvalidEvaluation.
	EvaluateMatches(ctx context.Context, request *EvaluationRequest) (*EvaluationResult, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, ProfileSummarizer and MatchEvaluator
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ProfileSummarizer returns the profile summarization service.
	ProfileSummarizer() ProfileSummarizer

	// MatchEvaluator returns the qualitative match evaluation service.
	MatchEvaluator() MatchEvaluator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
