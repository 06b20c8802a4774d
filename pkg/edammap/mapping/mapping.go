package mapping

import (
	"sort"

	"github.com/edamontology/edammap/pkg/edammap/edam"
)

// ConceptScore is one concept's result: the best match type any field
// achieved and the aggregate score. Immutable once produced.
type ConceptScore struct {
	URI   edam.URI  `json:"uri"`
	Match MatchType `json:"match"`
	Score float64   `json:"score"`
}

// Mapping is the ranked annotation result for one tool record, sorted by
// score descending, then match type rank descending, then URI ascending.
// The order is total, so equal runs produce identical output.
type Mapping struct {
	Scores []ConceptScore
}

// Len returns the number of ranked concepts.
func (m Mapping) Len() int {
	return len(m.Scores)
}

// ByBranch partitions the ranking by EDAM branch, preserving rank order
// within each branch.
func (m Mapping) ByBranch() map[edam.Branch][]ConceptScore {
	out := make(map[edam.Branch][]ConceptScore, 4)
	for _, cs := range m.Scores {
		b := cs.URI.Branch()
		out[b] = append(out[b], cs)
	}
	return out
}

// sortScores orders scores with the total deterministic order.
func sortScores(scores []ConceptScore) {
	sort.Slice(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Match != b.Match {
			return a.Match.Better(b.Match)
		}
		return a.URI < b.URI
	})
}
