// Package parallel splits index ranges across goroutines. Each worker owns a
// disjoint [start, end) range, so callers writing to distinct rows of a
// preallocated matrix need no further synchronisation.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the item count below which work runs on the calling goroutine.
const DefaultThreshold = 256

// Parallelize divides items across runtime.NumCPU() workers and calls fn for
// each contiguous (start, end) range.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeN(items, runtime.NumCPU(), fn)
}

// ParallelizeN is Parallelize with an explicit worker count.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at most
// threshold and in parallel otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
