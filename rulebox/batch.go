package rulebox

import (
	"runtime"
	"sync"
)

// parallelCutoff is the small-batch threshold below which AssignLabelsBatch
// runs sequentially rather than paying goroutine dispatch overhead (spec
// §4.4, "Scaling threshold" — a performance knob, not a semantic one).
const parallelCutoff = 8

// AssignLabelsBatch evaluates each input against the catalog, preserving
// input order 1:1: index i of the result always corresponds to index i of
// inputs, regardless of how work was scheduled across workers. For batches
// at or above parallelCutoff it partitions the input slice by index across
// up to GOMAXPROCS workers; each worker owns a disjoint range of indices
// and writes only into its own slots of the output slice, so no locking is
// needed on the shared, read-only Catalog or on the output slice itself.
//
// Evaluation of a single input cannot fail once the catalog is built, so
// AssignLabelsBatch is infallible.
func (c *Catalog) AssignLabelsBatch(inputs []string) [][]string {
	return c.AssignLabelsBatchWithWorkers(inputs, runtime.GOMAXPROCS(0))
}

// AssignLabelsBatchWithWorkers is AssignLabelsBatch with an explicit worker
// count, for callers that size the pool themselves (cmd/rulebox's
// batch.workers_override config knob). workers <= 0 falls back to
// AssignLabelsBatch's GOMAXPROCS default.
func (c *Catalog) AssignLabelsBatchWithWorkers(inputs []string, workers int) [][]string {
	results := make([][]string, len(inputs))

	if len(inputs) < parallelCutoff {
		for i, in := range inputs {
			results[i] = c.AssignLabels(in)
		}
		return results
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (len(inputs) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(inputs) {
			break
		}
		end := start + chunk
		if end > len(inputs) {
			end = len(inputs)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				results[i] = c.AssignLabels(inputs[i])
			}
		}(start, end)
	}
	wg.Wait()

	return results
}
