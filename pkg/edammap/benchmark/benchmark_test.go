package benchmark

import (
	"math"
	"testing"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

func ranked(uris ...edam.URI) mapping.Mapping {
	m := mapping.Mapping{}
	for i, u := range uris {
		m.Scores = append(m.Scores, mapping.ConceptScore{
			URI:   u,
			Match: mapping.MatchLabel,
			Score: float64(len(uris) - i),
		})
	}
	return m
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluatePerfectRanking(t *testing.T) {
	gold := []edam.URI{"http://edamontology.org/operation_0292", "http://edamontology.org/topic_0080"}
	m := ranked(gold[0], gold[1])

	got := Evaluate(gold, m)
	if got.Recall != 1.0 {
		t.Errorf("Recall = %f, want 1.0", got.Recall)
	}
	if got.AvgPrecision != 1.0 {
		t.Errorf("AveP = %f, want 1.0", got.AvgPrecision)
	}
}

func TestEvaluateNoneFound(t *testing.T) {
	gold := []edam.URI{"http://edamontology.org/operation_0292"}
	m := ranked("http://edamontology.org/topic_0084", "http://edamontology.org/data_0006")

	got := Evaluate(gold, m)
	if got.Recall != 0 || got.AvgPrecision != 0 {
		t.Errorf("Expected zero measures, got %+v", got)
	}
}

func TestEvaluatePartial(t *testing.T) {
	// Gold at ranks 1 and 3 of three; one gold concept never found.
	gold := []edam.URI{
		"http://edamontology.org/operation_0001",
		"http://edamontology.org/operation_0002",
		"http://edamontology.org/operation_0003",
	}
	m := ranked(
		"http://edamontology.org/operation_0001", // rank 1, gold
		"http://edamontology.org/topic_9999",     // rank 2
		"http://edamontology.org/operation_0002", // rank 3, gold
	)

	got := Evaluate(gold, m)
	if !almostEqual(got.Recall, 2.0/3.0) {
		t.Errorf("Recall = %f, want 2/3", got.Recall)
	}
	// AveP = (1/1 + 2/3) / 3
	if !almostEqual(got.AvgPrecision, (1.0+2.0/3.0)/3.0) {
		t.Errorf("AveP = %f", got.AvgPrecision)
	}
}

func TestEvaluateRecallMonotonic(t *testing.T) {
	gold := []edam.URI{
		"http://edamontology.org/operation_0001",
		"http://edamontology.org/operation_0002",
	}
	full := ranked(
		"http://edamontology.org/topic_9999",
		"http://edamontology.org/operation_0001",
		"http://edamontology.org/operation_0002",
	)

	prev := 0.0
	for cut := 0; cut <= full.Len(); cut++ {
		partial := mapping.Mapping{Scores: full.Scores[:cut]}
		r := Evaluate(gold, partial).Recall
		if r < prev {
			t.Errorf("Recall decreased from %f to %f at cut %d", prev, r, cut)
		}
		prev = r
	}
	if prev != 1.0 {
		t.Errorf("Recall with every gold concept ranked should be 1.0, got %f", prev)
	}
}

func TestCalculateExcludesUnannotated(t *testing.T) {
	list := []tools.Tool{
		{ID: "a", Name: "A", Annotations: []edam.URI{"http://edamontology.org/operation_0001"}},
		{ID: "b", Name: "B"}, // no gold set: excluded, not zero-scored
		{ID: "c", Name: "C", Annotations: []edam.URI{"http://edamontology.org/operation_0002"}},
	}
	mappings := []mapping.Mapping{
		ranked("http://edamontology.org/operation_0001"),
		{},
		ranked("http://edamontology.org/topic_9999"),
	}

	res, err := Calculate(list, mappings)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.Included != 2 || res.Excluded != 1 {
		t.Errorf("Included/Excluded = %d/%d, want 2/1", res.Included, res.Excluded)
	}
	if !almostEqual(res.Mean.Recall, 0.5) {
		t.Errorf("Mean recall = %f, want 0.5", res.Mean.Recall)
	}
	if len(res.PerTool) != 2 || res.PerTool[0].ToolID != "a" {
		t.Errorf("PerTool = %+v", res.PerTool)
	}
}

func TestCalculateNoAnnotatedTools(t *testing.T) {
	list := []tools.Tool{{ID: "a", Name: "A"}}
	res, err := Calculate(list, []mapping.Mapping{{}})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.Included != 0 {
		t.Errorf("Included = %d, want 0", res.Included)
	}
	if res.Mean.Recall != 0 || res.Mean.AvgPrecision != 0 {
		t.Errorf("Means must not be NaN or nonzero: %+v", res.Mean)
	}
}

func TestCalculateLengthMismatch(t *testing.T) {
	if _, err := Calculate([]tools.Tool{{Name: "A"}}, nil); err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}
