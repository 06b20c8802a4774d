// Package mapping implements the scoring engine: it compares a processed
// tool record against every processed concept and produces a ranked,
// deterministic concept mapping.
package mapping

import (
	"math"
	"sort"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/processing"
)

// target is one concept sub-field prepared for overlap lookup.
type target struct {
	kind MatchType
	set  map[string]struct{}
}

// Mapper scores tool records against a fixed concept index. It is pure and
// read-only after construction, so one Mapper may be shared by all workers.
type Mapper struct {
	args    Args
	targets map[edam.URI][]target
}

// NewMapper prepares the concept index for matching. Concepts whose fields
// are all empty get no targets and can never match.
func NewMapper(concepts map[edam.URI]processing.ProcessedConcept, args Args) *Mapper {
	targets := make(map[edam.URI][]target, len(concepts))
	for uri, pc := range concepts {
		var ts []target
		ts = appendTarget(ts, MatchLabel, pc.Label)
		for _, f := range pc.ExactSynonyms {
			ts = appendTarget(ts, MatchExactSynonym, f)
		}
		for _, f := range pc.NarrowSynonyms {
			ts = appendTarget(ts, MatchNarrowSynonym, f)
		}
		for _, f := range pc.BroadSynonyms {
			ts = appendTarget(ts, MatchBroadSynonym, f)
		}
		ts = appendTarget(ts, MatchDefinition, pc.Definition)
		ts = appendTarget(ts, MatchComment, pc.Comment)
		if len(ts) > 0 {
			targets[uri] = ts
		}
	}
	return &Mapper{args: args, targets: targets}
}

func appendTarget(ts []target, kind MatchType, f processing.ProcessedField) []target {
	if f.Empty() {
		return ts
	}
	set := make(map[string]struct{}, len(f.Tokens))
	for _, tok := range f.Tokens {
		set[tok] = struct{}{}
	}
	return append(ts, target{kind: kind, set: set})
}

// categorized is one record field tagged with its category.
type categorized struct {
	cat   FieldCategory
	field processing.ProcessedField
}

// contribution is one field's scored match against one concept.
type contribution struct {
	cat   FieldCategory
	kind  MatchType
	score float64
}

// Map scores the processed tool against every concept and returns the
// ranked mapping. An empty record yields an empty mapping, not an error.
func (m *Mapper) Map(pt processing.ProcessedTool) Mapping {
	fields := collectFields(pt)
	if len(fields) == 0 {
		return Mapping{}
	}

	var scores []ConceptScore
	for uri, targets := range m.targets {
		if cs, ok := m.scoreConcept(uri, targets, fields); ok {
			scores = append(scores, cs)
		}
	}

	sortScores(scores)
	if m.args.TopPerBranch > 0 {
		scores = capPerBranch(scores, m.args.TopPerBranch)
	}
	return Mapping{Scores: scores}
}

// scoreConcept computes one concept's aggregate score over all record fields.
func (m *Mapper) scoreConcept(uri edam.URI, targets []target, fields []categorized) (ConceptScore, bool) {
	var contribs []contribution

	for _, cf := range fields {
		// Among sub-fields clearing the threshold, the highest-ranked match
		// type wins; overlap only breaks ties within the same type. A large
		// definition overlap must not shadow a qualifying label match.
		bestScore := 0.0
		bestKind := MatchNone
		for _, t := range targets {
			ov := overlap(cf.field, t.set)
			if ov < m.args.Threshold {
				continue
			}
			if t.kind.Better(bestKind) || (t.kind == bestKind && ov > bestScore) {
				bestKind = t.kind
				bestScore = ov
			}
		}
		if bestKind == MatchNone {
			continue
		}
		weighted := bestScore * m.args.Multiplier(cf.cat, bestKind)
		if weighted <= 0 {
			continue
		}
		contribs = append(contribs, contribution{cat: cf.cat, kind: bestKind, score: weighted})
	}

	if len(contribs) == 0 {
		return ConceptScore{}, false
	}

	total := m.aggregate(contribs)
	if total <= 0 {
		return ConceptScore{}, false
	}

	best := MatchNone
	for _, c := range contribs {
		if c.kind.Better(best) {
			best = c.kind
		}
	}

	return ConceptScore{URI: uri, Match: best, Score: total}, true
}

// aggregate sums contributions with diminishing returns within each field
// category: the i-th best contribution of a category is scaled by
// 1/(i+1)^RepeatPenalty.
func (m *Mapper) aggregate(contribs []contribution) float64 {
	byCat := make(map[FieldCategory][]float64)
	for _, c := range contribs {
		byCat[c.cat] = append(byCat[c.cat], c.score)
	}

	// Sum categories in a fixed order: float addition is not associative,
	// so map-order iteration would make the total vary between runs.
	cats := make([]FieldCategory, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	total := 0.0
	for _, cat := range cats {
		scores := byCat[cat]
		sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
		for i, s := range scores {
			total += s * repeatScale(i, m.args.RepeatPenalty)
		}
	}
	return total
}

func repeatScale(i int, penalty float64) float64 {
	if penalty == 0 || i == 0 {
		return 1
	}
	return math.Pow(1/float64(i+1), penalty)
}

// overlap is the weighted token-overlap of a record field against a concept
// sub-field: the IDF mass of the field's tokens present in the target,
// normalized by the field's total IDF mass.
func overlap(f processing.ProcessedField, set map[string]struct{}) float64 {
	total := f.WeightSum()
	if total <= 0 {
		return 0
	}
	shared := 0.0
	for i, tok := range f.Tokens {
		if _, ok := set[tok]; ok {
			shared += f.Weights[i]
		}
	}
	return shared / total
}

// collectFields flattens the processed tool into categorized non-empty fields.
func collectFields(pt processing.ProcessedTool) []categorized {
	var out []categorized
	add := func(cat FieldCategory, f processing.ProcessedField) {
		if !f.Empty() {
			out = append(out, categorized{cat: cat, field: f})
		}
	}
	add(CategoryName, pt.Name)
	for _, f := range pt.Keywords {
		add(CategoryKeyword, f)
	}
	add(CategoryDescription, pt.Description)
	for _, f := range pt.Webpages {
		add(CategoryWebpage, f)
	}
	for _, f := range pt.Docs {
		add(CategoryDoc, f)
	}
	for _, f := range pt.Publications {
		add(CategoryPublication, f)
	}
	return out
}

// capPerBranch keeps the top n entries per EDAM branch, preserving order.
func capPerBranch(scores []ConceptScore, n int) []ConceptScore {
	counts := make(map[edam.Branch]int, 4)
	out := scores[:0]
	for _, cs := range scores {
		b := cs.URI.Branch()
		if counts[b] >= n {
			continue
		}
		counts[b]++
		out = append(out, cs)
	}
	return out
}
