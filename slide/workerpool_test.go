// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slide

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunOverExamplesVisitsEveryIndex(t *testing.T) {
	wp := NewWorkerPool(4)
	defer wp.Stop()

	const b = 37
	var seen [b]int32
	wp.RunOverExamples(b, func(i, _ int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, c := range seen {
		assert.Equal(t, int32(1), c, "index %d visited %d times", i, c)
	}
}

func TestRunOverExamplesSerialFallback(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Stop()

	var order []int
	wp.RunOverExamples(5, func(i, thr int) {
		order = append(order, i)
		assert.Equal(t, 0, thr)
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestRunOverExamplesEmptyBatch(t *testing.T) {
	wp := NewWorkerPool(4)
	defer wp.Stop()
	called := false
	wp.RunOverExamples(0, func(i, thr int) { called = true })
	assert.False(t, called)
}

func TestErrCollectorKeepsFirst(t *testing.T) {
	var ec errCollector
	first := assertErr("first")
	ec.set(first)
	ec.set(assertErr("second"))
	assert.Equal(t, first, ec.get())
}

func assertErr(msg string) error {
	return &stringError{msg}
}

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }
