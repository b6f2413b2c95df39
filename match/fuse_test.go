package match

import (
	"testing"

	"github.com/poiesic/talentmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuse(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Fuse(nil, 10))
	})

	t.Run("unions distinct items across fields", func(t *testing.T) {
		perField := map[core.FieldName][]*core.MatchCandidate{
			core.FieldIdentity:  {candidate(1, 0, 0.70, core.FieldIdentity)},
			core.FieldInterests: {candidate(2, 0, 0.60, core.FieldInterests)},
		}

		result := Fuse(perField, 10)
		require.Len(t, result, 2)
		assert.Equal(t, core.ID(1), result[0].ItemId)
		assert.Equal(t, core.ID(2), result[1].ItemId)
	})

	t.Run("cross-field duplicate keeps max similarity and its field", func(t *testing.T) {
		perField := map[core.FieldName][]*core.MatchCandidate{
			core.FieldIdentity:    {candidate(1, 0, 0.72, core.FieldIdentity)},
			core.FieldPreferences: {candidate(1, 2, 0.81, core.FieldPreferences)},
		}

		result := Fuse(perField, 10)
		require.Len(t, result, 1)
		assert.Equal(t, float32(0.81), result[0].Similarity)
		assert.Equal(t, core.FieldPreferences, result[0].Field)
		assert.Equal(t, 2, result[0].ChunkSeq)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		perField := map[core.FieldName][]*core.MatchCandidate{
			core.FieldIdentity: {
				candidate(1, 0, 0.90, core.FieldIdentity),
				candidate(2, 0, 0.80, core.FieldIdentity),
				candidate(3, 0, 0.70, core.FieldIdentity),
			},
		}

		result := Fuse(perField, 2)
		require.Len(t, result, 2)
		assert.Equal(t, float32(0.90), result[0].Similarity)
		assert.Equal(t, float32(0.80), result[1].Similarity)
	})

	t.Run("absent field contributes nothing", func(t *testing.T) {
		perField := map[core.FieldName][]*core.MatchCandidate{
			core.FieldIdentity:  {candidate(1, 0, 0.70, core.FieldIdentity)},
			core.FieldInterests: nil,
		}

		result := Fuse(perField, 10)
		assert.Len(t, result, 1)
	})
}

func TestDiversify(t *testing.T) {
	specific1 := &core.MatchCandidate{ItemId: 1, Title: "Designing our sharded Postgres layer", Similarity: 0.9}
	specific2 := &core.MatchCandidate{ItemId: 2, Title: "Profiling Go allocations in production", Similarity: 0.7}
	generic1 := &core.MatchCandidate{ItemId: 3, Title: "Life at Acme: our culture", Similarity: 0.85}
	generic2 := &core.MatchCandidate{ItemId: 4, Title: "Meet the engineers behind the team", Similarity: 0.8}

	t.Run("prefers specific titles", func(t *testing.T) {
		result := Diversify([]*core.MatchCandidate{specific1, generic1, specific2, generic2}, 2)
		require.Len(t, result, 2)
		assert.Equal(t, specific1, result[0])
		assert.Equal(t, specific2, result[1])
	})

	t.Run("backfills with generic when short", func(t *testing.T) {
		result := Diversify([]*core.MatchCandidate{specific1, generic1, generic2}, 3)
		require.Len(t, result, 3)
		assert.Equal(t, specific1, result[0])
		assert.Equal(t, generic1, result[1])
		assert.Equal(t, generic2, result[2])
	})

	t.Run("fewer candidates than count", func(t *testing.T) {
		result := Diversify([]*core.MatchCandidate{generic1}, 5)
		assert.Len(t, result, 1)
	})

	t.Run("zero count", func(t *testing.T) {
		assert.Empty(t, Diversify([]*core.MatchCandidate{specific1}, 0))
	})

	t.Run("keyword match is case insensitive", func(t *testing.T) {
		c := &core.MatchCandidate{ItemId: 5, Title: "CAREERS AT ACME", Similarity: 0.9}
		result := Diversify([]*core.MatchCandidate{c, specific1}, 1)
		require.Len(t, result, 1)
		assert.Equal(t, specific1, result[0])
	})
}
