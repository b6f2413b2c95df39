package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileRepo(t *testing.T) storage.ProfileRepository {
	t.Helper()
	itemRepo, profileRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		profileRepo.Close()
		itemRepo.Close()
		backend.Close()
	})
	return profileRepo
}

func TestUpsertProfiles(t *testing.T) {
	repo := newTestProfileRepo(t)
	ctx := context.Background()

	profile := &core.CandidateProfile{
		ExternalId: "cand-123",
		FullName:   "Alex Doe",
		Headline:   "Staff Engineer",
	}

	upserted, err := repo.UpsertProfiles(ctx, profile)
	require.NoError(t, err)
	require.Len(t, upserted, 1)
	assert.Equal(t, core.IDFromContent("cand-123"), upserted[0].Id)

	got, err := repo.GetProfile(ctx, "cand-123")
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", got.FullName)
}

func TestUpsertProfiles_UpdatePreservesInsertedAt(t *testing.T) {
	repo := newTestProfileRepo(t)
	ctx := context.Background()

	first, err := repo.UpsertProfiles(ctx, &core.CandidateProfile{
		ExternalId: "cand-1",
		FullName:   "Before",
	})
	require.NoError(t, err)
	insertedAt := first[0].InsertedAt

	time.Sleep(time.Millisecond)

	_, err = repo.UpsertProfiles(ctx, &core.CandidateProfile{
		ExternalId: "cand-1",
		FullName:   "After",
	})
	require.NoError(t, err)

	got, err := repo.GetProfile(ctx, "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.FullName)
	assert.True(t, got.InsertedAt.Equal(insertedAt))
	assert.True(t, got.UpdatedAt.After(insertedAt))
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := newTestProfileRepo(t)
	_, err := repo.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutEmbeddingField_AtomicReplace(t *testing.T) {
	repo := newTestProfileRepo(t)
	ctx := context.Background()
	profileID := core.ID(42)

	original := &core.EmbeddingField{
		ProfileId: profileID,
		Name:      core.FieldInterests,
		Text:      "distributed systems",
		Vector:    []float32{1, 0, 0},
	}
	require.NoError(t, repo.PutEmbeddingField(ctx, original))

	replacement := &core.EmbeddingField{
		ProfileId: profileID,
		Name:      core.FieldInterests,
		Text:      "distributed systems\n\n[Updated 2026-08-25] observability",
		Vector:    []float32{0, 1, 0},
	}
	require.NoError(t, repo.PutEmbeddingField(ctx, replacement))

	got, err := repo.GetEmbeddingField(ctx, profileID, core.FieldInterests)
	require.NoError(t, err)
	assert.Equal(t, replacement.Text, got.Text)
	assert.Equal(t, replacement.Vector, got.Vector)

	// Only one field stored under that name
	fields, err := repo.GetEmbeddingFields(ctx, profileID)
	require.NoError(t, err)
	assert.Len(t, fields, 1)
}

func TestEmbeddingFields_IndependentPerName(t *testing.T) {
	repo := newTestProfileRepo(t)
	ctx := context.Background()
	profileID := core.ID(7)

	for i, name := range core.FieldNames {
		require.NoError(t, repo.PutEmbeddingField(ctx, &core.EmbeddingField{
			ProfileId: profileID,
			Name:      name,
			Text:      string(name) + " text",
			Vector:    []float32{float32(i), 1, 0},
		}))
	}

	// Replacing one field must not touch the others
	require.NoError(t, repo.PutEmbeddingField(ctx, &core.EmbeddingField{
		ProfileId: profileID,
		Name:      core.FieldPreferences,
		Text:      "changed",
		Vector:    []float32{9, 9, 9},
	}))

	fields, err := repo.GetEmbeddingFields(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	identity, err := repo.GetEmbeddingField(ctx, profileID, core.FieldIdentity)
	require.NoError(t, err)
	assert.Equal(t, "identity text", identity.Text)

	prefs, err := repo.GetEmbeddingField(ctx, profileID, core.FieldPreferences)
	require.NoError(t, err)
	assert.Equal(t, "changed", prefs.Text)
}

func TestGetEmbeddingField_NotFound(t *testing.T) {
	repo := newTestProfileRepo(t)
	_, err := repo.GetEmbeddingField(context.Background(), core.ID(1), core.FieldIdentity)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetEmbeddingFields_Empty(t *testing.T) {
	repo := newTestProfileRepo(t)
	fields, err := repo.GetEmbeddingFields(context.Background(), core.ID(1))
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestDeleteProfile(t *testing.T) {
	repo := newTestProfileRepo(t)
	ctx := context.Background()

	upserted, err := repo.UpsertProfiles(ctx, &core.CandidateProfile{ExternalId: "cand-9"})
	require.NoError(t, err)
	profileID := upserted[0].Id

	require.NoError(t, repo.PutEmbeddingField(ctx, &core.EmbeddingField{
		ProfileId: profileID,
		Name:      core.FieldIdentity,
		Text:      "text",
		Vector:    []float32{1, 0},
	}))

	require.NoError(t, repo.DeleteProfile(ctx, "cand-9"))

	_, err = repo.GetProfile(ctx, "cand-9")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	fields, err := repo.GetEmbeddingFields(ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, fields, "fields removed with profile")
}

func TestDeleteProfile_NotFound(t *testing.T) {
	repo := newTestProfileRepo(t)
	err := repo.DeleteProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
