package sarf

import (
	"context"
	"sync"
)

// DefaultBatchWorkers is the number of goroutines AnalyzeBatch uses when
// workers is not positive.
const DefaultBatchWorkers = 4

// AnalyzeBatch analyses inputs concurrently and returns results in input
// order. Duplicate inputs are analysed once. It stops early when ctx is
// cancelled; the returned error is then ctx.Err() and the slice holds only
// the results completed so far (others are zero values).
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []string, workers int) ([]Analysis, error) {
	results := make([]Analysis, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	// Deduplicate inputs, remembering every position each one fills
	positions := make(map[string][]int)
	var unique []string
	for i, in := range inputs {
		if _, seen := positions[in]; !seen {
			unique = append(unique, in)
		}
		positions[in] = append(positions[in], i)
	}

	type batchResult struct {
		input string
		res   Analysis
	}

	jobs := make(chan string)
	out := make(chan batchResult, len(unique))
	var wg sync.WaitGroup

	for w := 0; w < workers && w < len(unique); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				out <- batchResult{input: in, res: a.Analyze(in)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, in := range unique {
			select {
			case <-ctx.Done():
				return
			case jobs <- in:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	for r := range out {
		for _, i := range positions[r.input] {
			results[i] = r.res
		}
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
