package raster

import (
	"fmt"
	"runtime"
	"sync"
)

// parallelFor partitions [0,n) into contiguous chunks, one per worker, and
// runs fn(lo, hi) for each chunk on its own goroutine, blocking until every
// chunk has completed. This is the stand-in for the spec's "massively
// parallel execution fabric": the return of parallelFor IS the device-wide
// barrier §5 requires between stages.
//
// A panic inside any chunk is recovered and surfaced as ErrDispatchFailure
// once every goroutine has finished, rather than crashing the process —
// the spec's §7 contract is "the frame is discarded", not "the program
// exits".
func parallelFor(n, workers int, fn func(lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[w] = fmt.Errorf("raster: %w: %v", ErrDispatchFailure, r)
				}
			}()
			fn(lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
