package runner

import (
	"context"
	"sync"

	"digital.vasic.corespec/pkg/registry"
	"digital.vasic.corespec/pkg/scenario"
)

// parallelResult pairs a case result with its declaration
// index so results can be returned in declaration order.
type parallelResult struct {
	index  int
	result scenario.CaseResult
	ok     bool
}

// runParallel executes entries concurrently with a semaphore
// limiting maxConcurrency goroutines. Results come back in
// declaration order. Entries that never acquired a slot
// before ctx was cancelled are left out.
func runParallel(
	ctx context.Context,
	r *Runner,
	entries []registry.Entry,
	maxConcurrency int,
) []scenario.CaseResult {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan parallelResult, len(entries))

	var wg sync.WaitGroup

	for i, e := range entries {
		wg.Add(1)
		go func(idx int, entry registry.Entry) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- parallelResult{index: idx}
				return
			}

			if ctx.Err() != nil {
				resultsCh <- parallelResult{index: idx}
				return
			}

			resultsCh <- parallelResult{
				index:  idx,
				result: r.runCase(ctx, entry),
				ok:     true,
			}
		}(i, e)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	ordered := make([]parallelResult, len(entries))
	for pr := range resultsCh {
		ordered[pr.index] = pr
	}

	results := make([]scenario.CaseResult, 0, len(entries))
	for _, pr := range ordered {
		if pr.ok {
			results = append(results, pr.result)
		}
	}
	return results
}
