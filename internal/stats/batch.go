// Package stats implements the aggregation core: per-repository fan-out,
// contribution merging and analytics, language and topic aggregation, and
// the computed cross-cutting metrics.
//
// This file (batch.go) contains the bounded-concurrency batch dispatcher.
// It runs N independent fetches with a semaphore-limited worker pool and
// returns one tagged result per input, in input order, never aborting on
// individual failures.
package stats

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// defaultBatchWorkers bounds concurrent per-repository fetches. Staying
// around 10 keeps bursts below GitHub's secondary rate limit heuristics.
const defaultBatchWorkers = 10

// Result tags one batch item's outcome. Exactly one of Value and Err is
// meaningful: Err == nil means Value holds the fetched data.
type Result[T any] struct {
	Value T
	Err   error
}

// RunBatch executes fetch(i) for every i in [0, n) with at most maxWorkers
// in flight at once (maxWorkers <= 0 uses the default). It always waits for
// all items and always returns exactly n results, where result index i
// corresponds to input index i regardless of completion order.
//
// A failing or panicking item produces a Result with Err set; it never
// shortens the result set or stops its siblings. Context cancellation is
// observed at dispatch time: items not yet started report ctx.Err().
func RunBatch[T any](ctx context.Context, n int, maxWorkers int, fetch func(ctx context.Context, i int) (T, error)) []Result[T] {
	if maxWorkers <= 0 {
		maxWorkers = defaultBatchWorkers
	}

	results := make([]Result[T], n)
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("panic recovered: %v\nstack:\n%s", r, debug.Stack())
				}
			}()

			// Each worker writes only its own index, so no lock is needed.
			results[i].Value, results[i].Err = fetch(ctx, i)
		}(i)
	}

	wg.Wait()
	return results
}
