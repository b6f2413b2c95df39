package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/talentmatch/ai"
	"github.com/poiesic/talentmatch/core"
)

// BatchEmbedder generates normalized embeddings for chunk texts in bounded
// batches with retry.
type BatchEmbedder struct {
	embedder       ai.Embedder
	dimensions     int
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchEmbedder creates a new batch embedder.
// dimensions: expected embedding vector length; mismatches fail the batch
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchEmbedder(embedder ai.Embedder, dimensions, batchSize, maxRetries int, retryBaseDelay time.Duration) *BatchEmbedder {
	return &BatchEmbedder{
		embedder:       embedder,
		dimensions:     dimensions,
		batchSize:      batchSize,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// EmbedAll embeds the given texts, splitting them into batches no larger than
// the configured batch size. Vectors are normalized to unit length so stored
// embeddings can be compared with a plain dot product.
func (be *BatchEmbedder) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += be.batchSize {
		end := min(start+be.batchSize, len(texts))
		batch, err := be.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (be *BatchEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	// Generate embeddings with retry
	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = be.embedder.EmbedTexts(ctx, texts)
		return err
	}, be.maxRetries, be.retryBaseDelay)

	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", be.maxRetries, err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(vectors))
	}

	// Normalize vectors and verify dimensions
	for i := range vectors {
		if len(vectors[i]) != be.dimensions {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, be.dimensions, len(vectors[i]))
		}
		vectors[i] = core.NormalizeVector(vectors[i])
	}

	return vectors, nil
}
