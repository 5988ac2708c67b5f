// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hsched provides the rebuild-schedule gates the Network consults
// after every batch update: ConstantFrequency and ExponentialDecay. Each
// is a small Counter-shaped state machine, in the style of looper.Counter,
// rather than a full training-loop DSL.
package hsched

import (
	"github.com/chewxy/math32"
	"github.com/ymd-h/HashDL/herr"
)

// Scheduler decides, after each completed step, whether the caller should
// rebuild hash tables.
type Scheduler interface {
	// Due reports whether a rebuild is due at this step (1-based step
	// count of completed batches) and advances internal state.
	Due(step int) bool
}

// ConstantFrequency signals a rebuild every N steps.
type ConstantFrequency struct {
	N int
}

// NewConstantFrequency validates N > 0.
func NewConstantFrequency(n int) (*ConstantFrequency, error) {
	if n <= 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "ConstantFrequency: N must be > 0, got %d", n)
	}
	return &ConstantFrequency{N: n}, nil
}

func (c *ConstantFrequency) Due(step int) bool {
	return step > 0 && step%c.N == 0
}

// ExponentialDecay signals the first rebuild at step N0; after each
// rebuild, the next rebuild step is ceil(prev_step * exp(lambda)).
// lambda > 0 makes rebuilds progressively rarer (e.g. N0=50, lambda=ln2
// rebuilds at steps 50, 100, 200, 400, ...); lambda < 0 makes them
// progressively more frequent (clamped to a minimum step spacing of 1).
type ExponentialDecay struct {
	N0     int
	Lambda float32

	next float32
}

// NewExponentialDecay validates N0 > 0.
func NewExponentialDecay(n0 int, lambda float32) (*ExponentialDecay, error) {
	if n0 <= 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "ExponentialDecay: N0 must be > 0, got %d", n0)
	}
	return &ExponentialDecay{N0: n0, Lambda: lambda, next: float32(n0)}, nil
}

func (e *ExponentialDecay) Due(step int) bool {
	if float32(step) < e.next {
		return false
	}
	grown := math32.Ceil(e.next * math32.Exp(e.Lambda))
	if grown <= float32(step) {
		grown = float32(step) + 1
	}
	e.next = grown
	return true
}
