// Package batch runs the mapping engine over many tool records with
// bounded parallelism. Output order always equals input order.
package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/processing"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// Driver distributes tool records to a fixed pool of workers. Each worker
// pulls the next record via an atomically advanced cursor, processes and
// maps it, and writes the result into its own index slot, so no record is
// processed twice and no slot is written by two workers.
type Driver struct {
	processor *processing.Processor
	mapper    *mapping.Mapper
	workers   int

	cursor atomic.Int64
	done   atomic.Int64
}

// NewDriver creates a Driver with the given worker count (minimum 1).
func NewDriver(processor *processing.Processor, mapper *mapping.Mapper, workers int) *Driver {
	if workers < 1 {
		workers = 1
	}
	return &Driver{processor: processor, mapper: mapper, workers: workers}
}

// Progress reports how many records have completed so far. Observational
// only; the count is exact but may lag the workers by a moment.
func (d *Driver) Progress() int {
	return int(d.done.Load())
}

// Run maps every tool and returns one Mapping per input, in input order.
// The first worker error cancels the remaining work and fails the whole
// run; no partial results are returned.
func (d *Driver) Run(ctx context.Context, list []tools.Tool) ([]mapping.Mapping, error) {
	results := make([]mapping.Mapping, len(list))
	d.cursor.Store(0)
	d.done.Store(0)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < d.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				i := int(d.cursor.Add(1)) - 1
				if i >= len(list) {
					return
				}

				pt, err := d.processor.ProcessTool(ctx, list[i])
				if err != nil {
					fail(fmt.Errorf("tool %d (%s): %w", i, list[i].Name, err))
					return
				}

				results[i] = d.mapper.Map(pt)
				d.done.Add(1)
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
