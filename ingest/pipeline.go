package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/talentmatch/ai"
	"github.com/poiesic/talentmatch/chunker"
	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
)

// reportInterval is how often progress is written, in items.
const reportInterval = 100

// Report summarizes the outcome of a corpus build.
type Report struct {
	// Processed is the number of items stored with chunks and embeddings.
	Processed int
	// Skipped is the number of items rejected by validation or skip-existing.
	Skipped int
	// Failed is the number of items that errored during processing.
	Failed int
	// Chunks is the total number of chunks written.
	Chunks int
}

// Pipeline builds the searchable corpus: it stores source items, chunks their
// content, embeds the chunks, and writes everything to the item repository.
// Items are processed concurrently; a single bad item never aborts the batch.
type Pipeline struct {
	items        storage.ItemRepository
	provider     ai.AIProvider
	splitter     *chunker.Chunker
	pool         *ants.Pool
	batcher      *BatchEmbedder
	batchSize    int
	maxRetries   int
	retryDelay   time.Duration
	dimensions   int
	skipExisting bool
	progress     io.Writer
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets the maximum number of chunk texts sent to the embedding
// service per request. Default is 100.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithMaxRetries sets the retry attempts for embedding calls. Default is 3.
func WithMaxRetries(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.maxRetries = n
		return nil
	}
}

// WithRetryDelay sets the base delay for exponential backoff. Default is 1s.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.retryDelay = d
		return nil
	}
}

// WithEmbeddingDimensions sets the expected embedding vector length.
// Default is 1536.
func WithEmbeddingDimensions(dim int) Option {
	return func(p *Pipeline) error {
		p.dimensions = dim
		return nil
	}
}

// WithSkipExisting makes the pipeline skip items that already have chunks
// stored, so repeated runs only pay for new content.
func WithSkipExisting(skip bool) Option {
	return func(p *Pipeline) error {
		p.skipExisting = skip
		return nil
	}
}

// WithProgress sets a writer for progress output (typically os.Stderr).
// Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	items storage.ItemRepository,
	provider ai.AIProvider,
	splitter *chunker.Chunker,
	opts ...Option,
) (*Pipeline, error) {
	if items == nil {
		return nil, ErrItemRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if splitter == nil {
		return nil, ErrChunkerRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		items:      items,
		provider:   provider,
		splitter:   splitter,
		pool:       pool,
		batchSize:  100,
		maxRetries: 3,
		retryDelay: 1 * time.Second,
		dimensions: 1536,
		logger:     slog.Default().With("component", "ingest"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the batch embedder after options are applied (so it gets final config)
	p.batcher = NewBatchEmbedder(provider.Embedder(), p.dimensions, p.batchSize, p.maxRetries, p.retryDelay)

	return p, nil
}

// Run ingests the given items and blocks until all of them are processed.
// Invalid and already-ingested items are counted as skipped; items that fail
// to chunk, embed, or store are counted as failed. Neither aborts the run.
func (p *Pipeline) Run(ctx context.Context, items []*core.SourceItem) (*Report, error) {
	report := &Report{}
	if len(items) == 0 {
		return report, nil
	}

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(items), reportInterval)
		tracker.Start()
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, item := range items {
		item := item
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			chunks, outcome := p.processItem(ctx, item)

			mu.Lock()
			switch outcome {
			case outcomeProcessed:
				report.Processed++
				report.Chunks += chunks
			case outcomeSkipped:
				report.Skipped++
			case outcomeFailed:
				report.Failed++
			}
			mu.Unlock()

			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			report.Failed++
			mu.Unlock()
			p.logger.Error("failed to submit item for processing", "err", err)
		}
	}

	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	p.logger.Info("ingestion complete",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"chunks", report.Chunks)

	return report, nil
}

type itemOutcome int

const (
	outcomeProcessed itemOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// processItem handles one source item end to end. It returns the number of
// chunks written and how the item should be counted.
func (p *Pipeline) processItem(ctx context.Context, item *core.SourceItem) (int, itemOutcome) {
	if err := core.ValidateSourceItem(item); err != nil {
		p.logger.Warn("skipping invalid item", "url", item.URL, "err", err)
		return 0, outcomeSkipped
	}

	if p.skipExisting {
		id := item.Id
		if id == 0 {
			id = core.IDFromContent(item.URL)
		}
		exists, err := p.items.HasChunks(ctx, id)
		if err != nil {
			p.logger.Error("failed to check existing chunks", "url", item.URL, "err", err)
			return 0, outcomeFailed
		}
		if exists {
			p.logger.Debug("skipping already ingested item", "url", item.URL)
			return 0, outcomeSkipped
		}
	}

	added, err := p.items.AddSourceItems(ctx, item)
	if err != nil {
		p.logger.Error("failed to store item", "url", item.URL, "err", err)
		return 0, outcomeFailed
	}
	stored := added[0]

	chunks, err := p.splitter.Split(stored.Title, stored.Content)
	if err != nil {
		if errors.Is(err, chunker.ErrEmptyText) {
			p.logger.Warn("skipping item with empty content", "url", stored.URL)
			return 0, outcomeSkipped
		}
		p.logger.Error("failed to chunk item", "url", stored.URL, "err", err)
		return 0, outcomeFailed
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := p.batcher.EmbedAll(ctx, texts)
	if err != nil {
		p.logger.Error("failed to embed chunks", "url", stored.URL, "chunks", len(chunks), "err", err)
		return 0, outcomeFailed
	}

	for i, chunk := range chunks {
		chunk.ItemId = stored.Id
		chunk.Kind = stored.Kind
		chunk.Vector = vectors[i]
	}

	if err := p.items.PutChunks(ctx, stored.Id, chunks); err != nil {
		p.logger.Error("failed to store chunks", "url", stored.URL, "err", err)
		return 0, outcomeFailed
	}

	return len(chunks), outcomeProcessed
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
