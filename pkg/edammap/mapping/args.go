package mapping

// FieldCategory names the record field a contribution came from. The
// category×match-type multiplier table is keyed by it.
type FieldCategory string

const (
	CategoryName        FieldCategory = "name"
	CategoryKeyword     FieldCategory = "keyword"
	CategoryDescription FieldCategory = "description"
	CategoryWebpage     FieldCategory = "webpage"
	CategoryDoc         FieldCategory = "doc"
	CategoryPublication FieldCategory = "publication"
)

// Args is the mapper's configuration surface. The multiplier table and
// thresholds are tuning data, injected rather than hard-coded; the engine
// only fixes the shape of the computation.
type Args struct {
	// Threshold is the minimum weighted overlap a concept sub-field must
	// reach for a field to count as matched at all.
	Threshold float64 `yaml:"threshold"`

	// RepeatPenalty dampens repeated contributions from the same field
	// category: the i-th best contribution (0-based) is scaled by
	// 1/(i+1)^RepeatPenalty. Zero means a plain sum.
	RepeatPenalty float64 `yaml:"repeat_penalty"`

	// TopPerBranch caps the reported concepts per EDAM branch.
	// Zero means unlimited.
	TopPerBranch int `yaml:"top_per_branch"`

	// Multipliers is the field-category × match-type weight table, keyed
	// by FieldCategory and MatchType.Key(). A missing entry weighs zero,
	// so a category or match type can be switched off by omission.
	Multipliers map[FieldCategory]map[string]float64 `yaml:"multipliers"`
}

// Multiplier looks up the weight for one (category, match type) pair.
func (a *Args) Multiplier(cat FieldCategory, mt MatchType) float64 {
	kinds, ok := a.Multipliers[cat]
	if !ok {
		return 0
	}
	return kinds[mt.Key()]
}

// DefaultArgs returns a usable default configuration. The numbers are
// tuning values with no special significance beyond ordering: identifying
// fields (name, keywords) outweigh prose fields, and label/synonym matches
// outweigh definition/comment matches.
func DefaultArgs() Args {
	row := func(label, exact, narrow, broad, definition, comment float64) map[string]float64 {
		return map[string]float64{
			MatchLabel.Key():         label,
			MatchExactSynonym.Key():  exact,
			MatchNarrowSynonym.Key(): narrow,
			MatchBroadSynonym.Key():  broad,
			MatchDefinition.Key():    definition,
			MatchComment.Key():       comment,
		}
	}
	return Args{
		Threshold:     0.5,
		RepeatPenalty: 1,
		Multipliers: map[FieldCategory]map[string]float64{
			CategoryName:        row(1.0, 0.9, 0.6, 0.5, 0.25, 0.15),
			CategoryKeyword:     row(1.0, 0.9, 0.6, 0.5, 0.25, 0.15),
			CategoryDescription: row(0.8, 0.7, 0.5, 0.4, 0.2, 0.12),
			CategoryWebpage:     row(0.5, 0.45, 0.3, 0.25, 0.12, 0.08),
			CategoryDoc:         row(0.5, 0.45, 0.3, 0.25, 0.12, 0.08),
			CategoryPublication: row(0.6, 0.55, 0.35, 0.3, 0.15, 0.1),
		},
	}
}
