package storage

import (
	"context"

	"github.com/poiesic/talentmatch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ItemRepository provides operations for managing source items and their chunks.
type ItemRepository interface {
	Repository
	// AddSourceItems adds one or more source items to storage.
	// For items with ID=0, derives the ID from the item URL.
	// Sets InsertedAt timestamp if not already set.
	// Adding an item with an existing ID overwrites it.
	// Returns the items with IDs and timestamps populated.
	AddSourceItems(ctx context.Context, items ...*core.SourceItem) ([]*core.SourceItem, error)

	// GetSourceItem retrieves a single source item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetSourceItem(ctx context.Context, id core.ID) (*core.SourceItem, error)

	// GetSourceItems retrieves multiple source items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetSourceItems(ctx context.Context, ids ...core.ID) ([]*core.SourceItem, error)

	// DeleteSourceItems removes source items and their chunks by ID.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteSourceItems(ctx context.Context, ids ...core.ID) error

	// PutChunks replaces all chunks for an item in a single transaction.
	// Existing chunks for the item are removed first, so a shrinking chunk
	// set never leaves stale entries behind.
	PutChunks(ctx context.Context, itemID core.ID, chunks []*core.Chunk) error

	// GetChunks retrieves all chunks for an item, ordered by sequence.
	GetChunks(ctx context.Context, itemID core.ID) ([]*core.Chunk, error)

	// HasChunks reports whether any chunks are stored for the item.
	HasChunks(ctx context.Context, itemID core.ID) (bool, error)

	// FindSimilarChunks finds content chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity (highest first). The threshold is applied before
	// the limit. When kinds are given, only chunks of those kinds are
	// considered; otherwise all kinds are searched.
	FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int, kinds ...core.ItemKind) ([]*core.ChunkMatch, error)
}

// ProfileRepository provides operations for managing candidate profiles and
// their embedding fields.
type ProfileRepository interface {
	Repository
	// UpsertProfiles adds or updates candidate profiles.
	// For profiles with ID=0, derives the ID from ExternalId.
	// Sets InsertedAt on first write and UpdatedAt on every write.
	// Returns the profiles with IDs and timestamps populated.
	UpsertProfiles(ctx context.Context, profiles ...*core.CandidateProfile) ([]*core.CandidateProfile, error)

	// GetProfile retrieves a profile by its external identifier.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, externalID string) (*core.CandidateProfile, error)

	// DeleteProfile removes a profile and all its embedding fields.
	// Returns ErrNotFound if the profile doesn't exist.
	DeleteProfile(ctx context.Context, externalID string) error

	// PutEmbeddingField stores an embedding field, replacing any existing
	// field with the same profile and name in one write. Readers never see
	// a field with new text but a stale vector.
	PutEmbeddingField(ctx context.Context, field *core.EmbeddingField) error

	// GetEmbeddingField retrieves a single embedding field.
	// Returns ErrNotFound if the field doesn't exist.
	GetEmbeddingField(ctx context.Context, profileID core.ID, name core.FieldName) (*core.EmbeddingField, error)

	// GetEmbeddingFields retrieves all embedding fields for a profile.
	// Returns an empty slice when the profile has no fields.
	GetEmbeddingFields(ctx context.Context, profileID core.ID) ([]*core.EmbeddingField, error)
}
