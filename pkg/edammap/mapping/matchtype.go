package mapping

import (
	"encoding/json"
	"fmt"
)

// MatchType grades the quality of a text match by which concept sub-field
// produced it. The ordering is total and fixed:
// label > exact synonym > narrow synonym > broad synonym > definition >
// comment > none. Ranks are assigned explicitly; nothing depends on
// declaration order.
type MatchType int

const (
	MatchNone          MatchType = 0
	MatchComment       MatchType = 1
	MatchDefinition    MatchType = 2
	MatchBroadSynonym  MatchType = 3
	MatchNarrowSynonym MatchType = 4
	MatchExactSynonym  MatchType = 5
	MatchLabel         MatchType = 6
)

// Rank returns the position in the quality order; higher is better.
func (m MatchType) Rank() int {
	return int(m)
}

// Better reports whether m outranks other.
func (m MatchType) Better(other MatchType) bool {
	return m.Rank() > other.Rank()
}

// Key is the identifier form used in configuration files.
func (m MatchType) Key() string {
	switch m {
	case MatchLabel:
		return "label"
	case MatchExactSynonym:
		return "exact_synonym"
	case MatchNarrowSynonym:
		return "narrow_synonym"
	case MatchBroadSynonym:
		return "broad_synonym"
	case MatchDefinition:
		return "definition"
	case MatchComment:
		return "comment"
	default:
		return "none"
	}
}

// MarshalJSON encodes the match type as its configuration key.
func (m MatchType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.Key() + `"`), nil
}

// UnmarshalJSON decodes the configuration key form written by MarshalJSON.
func (m *MatchType) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	switch key {
	case "label":
		*m = MatchLabel
	case "exact_synonym":
		*m = MatchExactSynonym
	case "narrow_synonym":
		*m = MatchNarrowSynonym
	case "broad_synonym":
		*m = MatchBroadSynonym
	case "definition":
		*m = MatchDefinition
	case "comment":
		*m = MatchComment
	case "none":
		*m = MatchNone
	default:
		return fmt.Errorf("unknown match type %q", key)
	}
	return nil
}

// String is the human-readable form used in reports.
func (m MatchType) String() string {
	switch m {
	case MatchExactSynonym:
		return "exact synonym"
	case MatchNarrowSynonym:
		return "narrow synonym"
	case MatchBroadSynonym:
		return "broad synonym"
	default:
		return m.Key()
	}
}
