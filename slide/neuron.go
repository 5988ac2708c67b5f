// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slide

import (
	"github.com/chewxy/math32"
	"github.com/ymd-h/HashDL/hopt"
)

// Neuron holds one layer unit's weight vector, bias, and per-parameter
// optimizer state, inline rather than in a parallel parameter-to-state
// map, so the sparse update loop stays cache-local.
type Neuron struct {
	ID int
	W  []float32
	B  float32

	WOpt []hopt.State
	BOpt hopt.State

	// gradW/gradB accumulate across the current batch; touched marks
	// whether any example in the batch placed this neuron in its active
	// set, so Update only steps neurons that were actually exercised.
	gradW   []float32
	gradB   float32
	touched bool
}

func newNeuron(id, f int, w []float32, b float32) Neuron {
	return Neuron{
		ID:    id,
		W:     w,
		B:     b,
		WOpt:  make([]hopt.State, f),
		gradW: make([]float32, f),
	}
}

// norm returns the L2 norm of the neuron's weight vector, used by the
// sparsity padding rule to rank candidate neurons by magnitude.
func (n *Neuron) norm() float32 {
	var s float32
	for _, v := range n.W {
		s += v * v
	}
	return math32.Sqrt(s)
}
