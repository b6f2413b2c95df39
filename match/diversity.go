package match

import (
	"strings"

	"github.com/poiesic/talentmatch/core"
)

// genericTitleKeywords flag recruiting boilerplate that tends to dominate
// similarity rankings without telling the candidate anything specific.
var genericTitleKeywords = []string{
	"career",
	"team",
	"culture",
	"life at",
	"meet the engineers",
}

// Diversify selects up to count candidates, preferring those whose titles are
// not generic recruiting content. When too few specific titles exist, the
// best remaining generic candidates fill the gap. Relative order within each
// group is preserved.
func Diversify(candidates []*core.MatchCandidate, count int) []*core.MatchCandidate {
	if count <= 0 {
		return nil
	}

	specific := make([]*core.MatchCandidate, 0, len(candidates))
	generic := make([]*core.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if isGenericTitle(c.Title) {
			generic = append(generic, c)
		} else {
			specific = append(specific, c)
		}
	}

	result := make([]*core.MatchCandidate, 0, count)
	for _, c := range specific {
		if len(result) == count {
			return result
		}
		result = append(result, c)
	}
	for _, c := range generic {
		if len(result) == count {
			break
		}
		result = append(result, c)
	}
	return result
}

func isGenericTitle(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range genericTitleKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
