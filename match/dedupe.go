package match

import (
	"sort"

	"github.com/poiesic/talentmatch/core"
)

// Dedupe collapses chunk-level candidates to one candidate per source item.
// The survivor is the chunk with the highest similarity; on equal similarity
// the earliest chunk in the item wins. The result is sorted by similarity
// descending. Applying Dedupe to its own output changes nothing.
func Dedupe(candidates []*core.MatchCandidate) []*core.MatchCandidate {
	best := make(map[core.ID]*core.MatchCandidate, len(candidates))
	for _, c := range candidates {
		current, ok := best[c.ItemId]
		if !ok || c.Similarity > current.Similarity ||
			(c.Similarity == current.Similarity && c.ChunkSeq < current.ChunkSeq) {
			best[c.ItemId] = c
		}
	}

	result := make([]*core.MatchCandidate, 0, len(best))
	for _, c := range best {
		result = append(result, c)
	}
	sortCandidates(result)
	return result
}

// sortCandidates orders candidates by similarity descending, breaking ties by
// item ID so equal-similarity results have a stable order.
func sortCandidates(candidates []*core.MatchCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].ItemId < candidates[j].ItemId
	})
}
