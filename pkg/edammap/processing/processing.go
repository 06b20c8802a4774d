// Package processing turns raw concepts and tool records into the
// token/weight form consumed by the mapper. Concepts are processed once
// per run and shared read-only; each tool is processed once, by the worker
// that maps it.
package processing

import (
	"context"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/fetch"
	"github.com/edamontology/edammap/pkg/edammap/idf"
	"github.com/edamontology/edammap/pkg/edammap/preproc"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// ProcessedField is a normalized token sequence with a parallel IDF weight
// sequence of equal length.
type ProcessedField struct {
	Tokens  []string
	Weights []float64
}

// Empty reports whether the field contributes nothing.
func (f ProcessedField) Empty() bool {
	return len(f.Tokens) == 0
}

// WeightSum is the total IDF mass of the field.
func (f ProcessedField) WeightSum() float64 {
	sum := 0.0
	for _, w := range f.Weights {
		sum += w
	}
	return sum
}

// ProcessedConcept holds one concept's fields in processed form.
type ProcessedConcept struct {
	Label          ProcessedField
	ExactSynonyms  []ProcessedField
	NarrowSynonyms []ProcessedField
	BroadSynonyms  []ProcessedField
	Definition     ProcessedField
	Comment        ProcessedField
}

// ProcessedTool holds one tool record's fields in processed form.
// Multi-item fields keep one ProcessedField per item.
type ProcessedTool struct {
	Name         ProcessedField
	Keywords     []ProcessedField
	Description  ProcessedField
	Webpages     []ProcessedField
	Docs         []ProcessedField
	Publications []ProcessedField
}

// Empty reports whether no field survived normalization.
func (p ProcessedTool) Empty() bool {
	if !p.Name.Empty() || !p.Description.Empty() {
		return false
	}
	for _, group := range [][]ProcessedField{p.Keywords, p.Webpages, p.Docs, p.Publications} {
		for _, f := range group {
			if !f.Empty() {
				return false
			}
		}
	}
	return true
}

// Processor builds ProcessedField values from raw text. Safe for
// concurrent use: all state is read-only after construction.
type Processor struct {
	pp      *preproc.PreProcessor
	idf     *idf.Table
	fetcher fetch.Fetcher
	limits  tools.Limits
}

// New creates a Processor. The IDF table must match the PreProcessor's
// stemming setting; fetcher may be fetch.Absent for offline runs.
func New(pp *preproc.PreProcessor, table *idf.Table, fetcher fetch.Fetcher, limits tools.Limits) *Processor {
	if fetcher == nil {
		fetcher = fetch.Absent{}
	}
	return &Processor{pp: pp, idf: table, fetcher: fetcher, limits: limits}
}

// Field normalizes one piece of raw text into a ProcessedField.
func (p *Processor) Field(text string) ProcessedField {
	tokens := p.pp.Process(text)
	if len(tokens) == 0 {
		return ProcessedField{}
	}
	weights := make([]float64, len(tokens))
	for i, tok := range tokens {
		weights[i] = p.idf.Value(tok)
	}
	return ProcessedField{Tokens: tokens, Weights: weights}
}

// ProcessConcepts processes every concept's label, synonyms, definition and
// comment. The result is read-only and shared by all workers.
func (p *Processor) ProcessConcepts(concepts map[edam.URI]edam.Concept) map[edam.URI]ProcessedConcept {
	out := make(map[edam.URI]ProcessedConcept, len(concepts))
	for uri, c := range concepts {
		out[uri] = ProcessedConcept{
			Label:          p.Field(c.Label),
			ExactSynonyms:  p.fields(c.ExactSynonyms),
			NarrowSynonyms: p.fields(c.NarrowSynonyms),
			BroadSynonyms:  p.fields(c.BroadSynonyms),
			Definition:     p.Field(c.Definition),
			Comment:        p.Field(c.Comment),
		}
	}
	return out
}

// ProcessTool validates a tool record and processes its fields. Linked
// text that cannot be resolved degrades to an empty field; only a failed
// validation is an error.
func (p *Processor) ProcessTool(ctx context.Context, t tools.Tool) (ProcessedTool, error) {
	if err := t.Validate(p.limits); err != nil {
		return ProcessedTool{}, err
	}

	pt := ProcessedTool{
		Name:        p.Field(t.Name),
		Keywords:    p.fields(t.Keywords),
		Description: p.Field(t.Description),
	}
	pt.Webpages = p.fetched(ctx, t.Webpages)
	pt.Docs = p.fetched(ctx, t.Docs)
	pt.Publications = p.fetched(ctx, t.PublicationIDs)

	return pt, nil
}

func (p *Processor) fields(texts []string) []ProcessedField {
	out := make([]ProcessedField, len(texts))
	for i, text := range texts {
		out[i] = p.Field(text)
	}
	return out
}

func (p *Processor) fetched(ctx context.Context, refs []string) []ProcessedField {
	out := make([]ProcessedField, len(refs))
	for i, ref := range refs {
		text, ok := p.fetcher.Fetch(ctx, ref)
		if !ok {
			continue // absent text contributes an empty field
		}
		out[i] = p.Field(text)
	}
	return out
}
