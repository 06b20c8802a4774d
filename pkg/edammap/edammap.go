// Package edammap annotates descriptions of scientific software tools with
// concepts from the EDAM ontology, by scoring every concept against the
// tool's text fields and returning a ranked mapping.
package edammap

import (
	"context"

	"github.com/edamontology/edammap/pkg/edammap/batch"
	"github.com/edamontology/edammap/pkg/edammap/benchmark"
	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/fetch"
	"github.com/edamontology/edammap/pkg/edammap/idf"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/preproc"
	"github.com/edamontology/edammap/pkg/edammap/processing"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// Edammap is the main annotation engine facade. The concept index is
// processed once at construction and shared read-only afterwards, so one
// Edammap serves both batch runs and per-request server use.
type Edammap struct {
	concepts  map[edam.URI]edam.Concept
	processor *processing.Processor
	mapper    *mapping.Mapper
	driver    *batch.Driver
}

// Options configures an Edammap instance.
type Options struct {
	Concepts     map[edam.URI]edam.Concept
	PreProcessor *preproc.PreProcessor
	Idf          *idf.Table
	Fetcher      fetch.Fetcher // nil means no link text is resolved
	Limits       tools.Limits
	MapperArgs   mapping.Args
	Workers      int
}

// New creates an Edammap instance and processes the concept set.
func New(opts Options) *Edammap {
	processor := processing.New(opts.PreProcessor, opts.Idf, opts.Fetcher, opts.Limits)
	mapper := mapping.NewMapper(processor.ProcessConcepts(opts.Concepts), opts.MapperArgs)
	return &Edammap{
		concepts:  opts.Concepts,
		processor: processor,
		mapper:    mapper,
		driver:    batch.NewDriver(processor, mapper, opts.Workers),
	}
}

// Concepts returns the loaded concept set, for label resolution in output.
func (e *Edammap) Concepts() map[edam.URI]edam.Concept {
	return e.concepts
}

// MapTool processes and maps a single tool record.
func (e *Edammap) MapTool(ctx context.Context, t tools.Tool) (mapping.Mapping, error) {
	pt, err := e.processor.ProcessTool(ctx, t)
	if err != nil {
		return mapping.Mapping{}, err
	}
	return e.mapper.Map(pt), nil
}

// MapAll maps every tool with bounded parallelism, preserving input order.
func (e *Edammap) MapAll(ctx context.Context, list []tools.Tool) ([]mapping.Mapping, error) {
	return e.driver.Run(ctx, list)
}

// Progress reports how many records the current batch has completed.
func (e *Edammap) Progress() int {
	return e.driver.Progress()
}

// Benchmark scores mappings against the tools' gold-standard annotations.
func (e *Edammap) Benchmark(list []tools.Tool, mappings []mapping.Mapping) (benchmark.Results, error) {
	return benchmark.Calculate(list, mappings)
}
