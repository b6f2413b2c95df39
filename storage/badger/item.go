package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
type ItemRepository struct {
	backend *Backend
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(backend *Backend) (*ItemRepository, error) {
	return &ItemRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ItemRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindSimilarChunks delegates to the backend.
func (r *ItemRepository) FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int, kinds ...core.ItemKind) ([]*core.ChunkMatch, error) {
	return r.backend.FindSimilarChunks(ctx, vector, minSimilarity, limit, kinds...)
}

// AddSourceItems adds one or more source items to storage.
// IDs are derived from the item URL, so re-adding an item overwrites it.
func (r *ItemRepository) AddSourceItems(ctx context.Context, items ...*core.SourceItem) ([]*core.SourceItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if item.Id == 0 {
				item.Id = core.IDFromContent(item.URL)
			}

			key := makeSourceItemKey(item.Id)
			existing, err := r.readSourceItem(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if existing != nil {
				item.InsertedAt = existing.InsertedAt
			} else {
				item.InsertedAt = now
			}
			item.UpdatedAt = now

			value := storage.MarshalSourceItem(item)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// GetSourceItem retrieves a single source item by ID.
func (r *ItemRepository) GetSourceItem(ctx context.Context, id core.ID) (*core.SourceItem, error) {
	var result *core.SourceItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSourceItemKey(id)
		var err error
		result, err = r.readSourceItem(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetSourceItems retrieves multiple source items by their IDs.
func (r *ItemRepository) GetSourceItems(ctx context.Context, ids ...core.ID) ([]*core.SourceItem, error) {
	var result []*core.SourceItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSourceItemKey(id)
			item, err := r.readSourceItem(tx, key)
			if err != nil {
				return err
			}
			if item != nil {
				result = append(result, item)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteSourceItems removes source items and their chunks by ID.
func (r *ItemRepository) DeleteSourceItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSourceItemKey(id)

			item, err := r.readSourceItem(tx, key)
			if err != nil {
				return err
			}
			if item == nil {
				return storage.ErrNotFound
			}

			if err := r.deleteChunks(tx, id); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// PutChunks replaces all chunks for an item in a single transaction.
func (r *ItemRepository) PutChunks(ctx context.Context, itemID core.ID, chunks []*core.Chunk) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Remove existing chunks so a smaller set leaves no stale entries
		if err := r.deleteChunks(tx, itemID); err != nil {
			return err
		}

		for _, chunk := range chunks {
			chunk.ItemId = itemID
			key := makeChunkKey(itemID, chunk.Seq)
			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunks retrieves all chunks for an item, ordered by sequence.
func (r *ItemRepository) GetChunks(ctx context.Context, itemID core.ID) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialChunkKey(itemID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	return results, err
}

// HasChunks reports whether any chunks are stored for the item.
func (r *ItemRepository) HasChunks(ctx context.Context, itemID core.ID) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialChunkKey(itemID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		iter.Seek(prefix)
		found = iter.Valid() && bytes.HasPrefix(iter.Item().Key(), prefix)
		return nil
	}, false)
	return found, err
}

// Helper methods

// readSourceItem reads a source item from the transaction.
func (r *ItemRepository) readSourceItem(tx *badger.Txn, key []byte) (*core.SourceItem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SourceItem
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalSourceItem(val)
		return unmarshalErr
	})
	return record, err
}

// deleteChunks removes all chunk entries for an item within the transaction.
func (r *ItemRepository) deleteChunks(tx *badger.Txn, itemID core.ID) error {
	prefix := makePartialChunkKey(itemID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)

	var keys [][]byte
	for iter.Seek(prefix); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
