package match

import "github.com/poiesic/talentmatch/core"

// Fuse merges per-field candidate lists into one ranking. When the same item
// surfaces through several fields, the entry with the highest similarity
// survives and keeps the field that produced it. The fused list is sorted by
// similarity descending and truncated to limit.
func Fuse(perField map[core.FieldName][]*core.MatchCandidate, limit int) []*core.MatchCandidate {
	best := make(map[core.ID]*core.MatchCandidate)
	for _, candidates := range perField {
		for _, c := range candidates {
			current, ok := best[c.ItemId]
			if !ok || c.Similarity > current.Similarity {
				best[c.ItemId] = c
			}
		}
	}

	result := make([]*core.MatchCandidate, 0, len(best))
	for _, c := range best {
		result = append(result, c)
	}
	sortCandidates(result)

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
