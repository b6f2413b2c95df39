package match

import (
	"testing"

	"github.com/poiesic/talentmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(item core.ID, seq int, similarity float32, field core.FieldName) *core.MatchCandidate {
	return &core.MatchCandidate{
		ItemId:     item,
		Kind:       core.ItemKindArticle,
		ChunkSeq:   seq,
		Similarity: similarity,
		Field:      field,
	}
}

func TestDedupe(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Dedupe(nil))
	})

	t.Run("keeps highest similarity per item", func(t *testing.T) {
		result := Dedupe([]*core.MatchCandidate{
			candidate(1, 0, 0.50, core.FieldIdentity),
			candidate(1, 3, 0.80, core.FieldIdentity),
			candidate(1, 1, 0.65, core.FieldIdentity),
			candidate(2, 0, 0.70, core.FieldIdentity),
		})

		require.Len(t, result, 2)
		assert.Equal(t, core.ID(1), result[0].ItemId)
		assert.Equal(t, float32(0.80), result[0].Similarity)
		assert.Equal(t, 3, result[0].ChunkSeq)
		assert.Equal(t, core.ID(2), result[1].ItemId)
	})

	t.Run("tie-break prefers earliest chunk", func(t *testing.T) {
		result := Dedupe([]*core.MatchCandidate{
			candidate(1, 4, 0.75, core.FieldIdentity),
			candidate(1, 2, 0.75, core.FieldIdentity),
			candidate(1, 7, 0.75, core.FieldIdentity),
		})

		require.Len(t, result, 1)
		assert.Equal(t, 2, result[0].ChunkSeq)
	})

	t.Run("output sorted descending", func(t *testing.T) {
		result := Dedupe([]*core.MatchCandidate{
			candidate(1, 0, 0.40, core.FieldIdentity),
			candidate(2, 0, 0.90, core.FieldIdentity),
			candidate(3, 0, 0.60, core.FieldIdentity),
		})

		require.Len(t, result, 3)
		assert.Equal(t, float32(0.90), result[0].Similarity)
		assert.Equal(t, float32(0.60), result[1].Similarity)
		assert.Equal(t, float32(0.40), result[2].Similarity)
	})

	t.Run("idempotent", func(t *testing.T) {
		input := []*core.MatchCandidate{
			candidate(1, 0, 0.50, core.FieldIdentity),
			candidate(1, 1, 0.80, core.FieldIdentity),
			candidate(2, 0, 0.70, core.FieldIdentity),
			candidate(3, 2, 0.70, core.FieldIdentity),
		}

		once := Dedupe(input)
		twice := Dedupe(once)
		assert.Equal(t, once, twice)
	})
}
