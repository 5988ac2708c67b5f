// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slide

import "sync"

// WorkerPool is a persistent, channel-dispatched goroutine pool: each
// worker owns a channel and runs whatever closure it receives. It fans a
// per-example closure out across contiguous chunks of a batch.
// RunOverExamples blocks until every worker's chunk has completed, giving
// callers a synchronous parallel-region-then-join model.
type WorkerPool struct {
	n     int
	chans []chan func()
	wg    sync.WaitGroup
}

// NewWorkerPool starts n persistent worker goroutines (n is clamped to
// at least 1).
func NewWorkerPool(n int) *WorkerPool {
	if n < 1 {
		n = 1
	}
	wp := &WorkerPool{n: n, chans: make([]chan func(), n)}
	for t := range wp.chans {
		wp.chans[t] = make(chan func())
		go wp.worker(t)
	}
	return wp
}

// N returns the number of worker threads.
func (wp *WorkerPool) N() int { return wp.n }

func (wp *WorkerPool) worker(t int) {
	for fn := range wp.chans[t] {
		fn()
		wp.wg.Done()
	}
}

// RunOverExamples partitions [0,b) into wp.n contiguous chunks and calls
// fn(exampleIndex, threadIndex) for every example, running chunks on
// separate goroutines when b and wp.n both allow it, and joining before
// returning.
func (wp *WorkerPool) RunOverExamples(b int, fn func(i, thread int)) {
	if wp.n <= 1 || b <= 1 {
		for i := 0; i < b; i++ {
			fn(i, 0)
		}
		return
	}
	chunk := (b + wp.n - 1) / wp.n
	for t := 0; t < wp.n; t++ {
		start := t * chunk
		if start >= b {
			break
		}
		end := start + chunk
		if end > b {
			end = b
		}
		wp.wg.Add(1)
		wp.chans[t] <- func() {
			for i := start; i < end; i++ {
				fn(i, t)
			}
		}
	}
	wp.wg.Wait()
}

// Stop closes every worker channel, terminating the pool's goroutines.
func (wp *WorkerPool) Stop() {
	for _, c := range wp.chans {
		close(c)
	}
}
