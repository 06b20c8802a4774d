// Package benchmark scores produced mappings against known-correct
// annotations using standard information-retrieval measures.
package benchmark

import (
	"fmt"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// Measure holds the quality measures for one tool's mapping.
type Measure struct {
	Recall       float64 `json:"recall"`
	AvgPrecision float64 `json:"average_precision"`
}

// ToolMeasure pairs a measure with the tool it was computed for.
type ToolMeasure struct {
	ToolID   string `json:"tool_id"`
	ToolName string `json:"tool_name"`
	Measure
}

// Results aggregates measures over a batch. Tools without gold-standard
// annotations are excluded from the aggregate, not scored as zero; when no
// tool had annotations, Included is 0 and the means are meaningless and
// reported absent by the output layer.
type Results struct {
	Mean     Measure       `json:"mean"`
	PerTool  []ToolMeasure `json:"per_tool"`
	Included int           `json:"included"`
	Excluded int           `json:"excluded"`
}

// Evaluate scores one mapping against one gold-standard concept set.
// The mapping is assumed to be ranked already.
func Evaluate(gold []edam.URI, m mapping.Mapping) Measure {
	goldSet := make(map[edam.URI]struct{}, len(gold))
	for _, u := range gold {
		goldSet[u] = struct{}{}
	}
	n := float64(len(goldSet))
	if n == 0 {
		return Measure{}
	}

	found := 0
	precisionSum := 0.0
	for k, cs := range m.Scores {
		if _, ok := goldSet[cs.URI]; !ok {
			continue
		}
		// Guard against duplicate gold hits: a URI appears at most once
		// in a mapping, but delete to keep the invariant explicit.
		delete(goldSet, cs.URI)
		found++
		precisionSum += float64(found) / float64(k+1)
	}

	return Measure{
		Recall:       float64(found) / n,
		AvgPrecision: precisionSum / n,
	}
}

// Calculate evaluates every (tool, mapping) pair and aggregates the means.
// The two slices must be parallel.
func Calculate(list []tools.Tool, mappings []mapping.Mapping) (Results, error) {
	if len(list) != len(mappings) {
		return Results{}, fmt.Errorf("%w: %d tools but %d mappings",
			internalerr.ErrInvalidInput, len(list), len(mappings))
	}

	var res Results
	recallSum, avepSum := 0.0, 0.0
	for i, tool := range list {
		if len(tool.Annotations) == 0 {
			res.Excluded++
			continue
		}
		m := Evaluate(tool.Annotations, mappings[i])
		res.PerTool = append(res.PerTool, ToolMeasure{
			ToolID:   tool.ID,
			ToolName: tool.Name,
			Measure:  m,
		})
		recallSum += m.Recall
		avepSum += m.AvgPrecision
		res.Included++
	}

	if res.Included > 0 {
		res.Mean.Recall = recallSum / float64(res.Included)
		res.Mean.AvgPrecision = avepSum / float64(res.Included)
	}
	return res, nil
}
