package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	return &ProfileRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertProfiles adds or updates candidate profiles.
// IDs are derived from ExternalId, so the same candidate always maps to the
// same record.
func (r *ProfileRepository) UpsertProfiles(ctx context.Context, profiles ...*core.CandidateProfile) ([]*core.CandidateProfile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			if profile.Id == 0 {
				profile.Id = core.IDFromContent(profile.ExternalId)
			}

			key := makeProfileKey(profile.Id)
			existing, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if existing != nil {
				profile.InsertedAt = existing.InsertedAt
			} else {
				profile.InsertedAt = now
			}
			profile.UpdatedAt = now

			value := storage.MarshalProfile(profile)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// GetProfile retrieves a profile by its external identifier.
func (r *ProfileRepository) GetProfile(ctx context.Context, externalID string) (*core.CandidateProfile, error) {
	var result *core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(core.IDFromContent(externalID))
		var err error
		result, err = r.readProfile(tx, key)
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

// DeleteProfile removes a profile and all its embedding fields.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, externalID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		profileID := core.IDFromContent(externalID)
		key := makeProfileKey(profileID)

		profile, err := r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		if err := r.deleteEmbeddingFields(tx, profileID); err != nil {
			return err
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PutEmbeddingField stores an embedding field, replacing any existing field
// with the same profile and name. Text and vector land in one write.
func (r *ProfileRepository) PutEmbeddingField(ctx context.Context, field *core.EmbeddingField) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if field.UpdatedAt.IsZero() {
			field.UpdatedAt = time.Now().UTC()
		}
		key := makeEmbeddingFieldKey(field.ProfileId, field.Name)
		value := storage.MarshalEmbeddingField(field)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetEmbeddingField retrieves a single embedding field.
func (r *ProfileRepository) GetEmbeddingField(ctx context.Context, profileID core.ID, name core.FieldName) (*core.EmbeddingField, error) {
	var result *core.EmbeddingField
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmbeddingFieldKey(profileID, name)
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalEmbeddingField(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// GetEmbeddingFields retrieves all embedding fields for a profile.
func (r *ProfileRepository) GetEmbeddingFields(ctx context.Context, profileID core.ID) ([]*core.EmbeddingField, error) {
	var results []*core.EmbeddingField
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialEmbeddingFieldKey(profileID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			var field *core.EmbeddingField
			err := iter.Item().Value(func(val []byte) error {
				var err error
				field, err = storage.UnmarshalEmbeddingField(val)
				return err
			})
			if err != nil {
				return err
			}
			if field != nil {
				results = append(results, field)
			}
		}
		return nil
	}, false)
	return results, err
}

// Helper methods

// readProfile reads a candidate profile from the transaction.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.CandidateProfile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.CandidateProfile
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		profile, unmarshalErr = storage.UnmarshalProfile(val)
		return unmarshalErr
	})
	return profile, err
}

// deleteEmbeddingFields removes all field entries for a profile within the
// transaction.
func (r *ProfileRepository) deleteEmbeddingFields(tx *badger.Txn, profileID core.ID) error {
	prefix := makePartialEmbeddingFieldKey(profileID)
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
