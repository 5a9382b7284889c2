package engine

import (
	"runtime"
	"sync"
)

// minChunk is the smallest per-worker slice worth the goroutine overhead.
const minChunk = 16

// parallelFor executes fn over disjoint chunks of [0, n). Each worker
// receives an exclusive index range, so callers may mutate their slice
// elements without locking. parallelFor returns only after every worker
// has finished; the caller's next statement is a barrier.
func parallelFor(n int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
