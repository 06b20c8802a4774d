// Package output renders batch results as plain text or JSON. Rendering is
// glue only; all scoring happens upstream.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/edamontology/edammap/pkg/edammap/benchmark"
	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// NewRunID returns a fresh ULID identifying one batch run or server request.
func NewRunID() string {
	return ulid.Make().String()
}

// Report bundles everything one run produced.
type Report struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Tools       []ToolReport       `json:"tools"`
	Results     *benchmark.Results `json:"results,omitempty"`
}

// ToolReport is one tool's mapping in renderable form.
type ToolReport struct {
	ID      string        `json:"id,omitempty"`
	Name    string        `json:"name"`
	Matches []MatchReport `json:"matches"`
}

// MatchReport is one ranked concept with its label resolved.
type MatchReport struct {
	URI    edam.URI          `json:"uri"`
	Label  string            `json:"label,omitempty"`
	Branch edam.Branch       `json:"branch"`
	Match  mapping.MatchType `json:"match"`
	Score  float64           `json:"score"`
}

// New assembles a Report from a finished run. results may be nil when not
// benchmarking.
func New(concepts map[edam.URI]edam.Concept, list []tools.Tool, mappings []mapping.Mapping, results *benchmark.Results) Report {
	r := Report{
		RunID:       NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}
	for i, tool := range list {
		tr := ToolReport{ID: tool.ID, Name: tool.Name}
		if i < len(mappings) {
			for _, cs := range mappings[i].Scores {
				mr := MatchReport{
					URI:    cs.URI,
					Branch: cs.URI.Branch(),
					Match:  cs.Match,
					Score:  cs.Score,
				}
				if c, ok := concepts[cs.URI]; ok {
					mr.Label = c.Label
				}
				tr.Matches = append(tr.Matches, mr)
			}
		}
		r.Tools = append(r.Tools, tr)
	}
	return r
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

// WriteText renders the report as a plain-text listing.
func (r Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "run %s (%s)\n", r.RunID, r.GeneratedAt.Format(time.RFC3339))

	for _, tr := range r.Tools {
		fmt.Fprintf(w, "\n%s\n", tr.Name)
		if len(tr.Matches) == 0 {
			fmt.Fprintln(w, "  (no matches)")
			continue
		}
		for _, m := range tr.Matches {
			label := m.Label
			if label == "" {
				label = "?"
			}
			fmt.Fprintf(w, "  %-10s %-40s %-15s %.4f  %s\n", m.Branch, label, m.Match, m.Score, m.URI)
		}
	}

	if r.Results != nil {
		fmt.Fprintln(w)
		if r.Results.Included == 0 {
			fmt.Fprintln(w, "benchmark: no tools with gold-standard annotations")
		} else {
			fmt.Fprintf(w, "benchmark over %d tools (%d excluded): recall %.4f, average precision %.4f\n",
				r.Results.Included, r.Results.Excluded,
				r.Results.Mean.Recall, r.Results.Mean.AvgPrecision)
		}
	}
	return nil
}
