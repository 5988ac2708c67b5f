// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slide

import (
	"sort"

	"github.com/chewxy/math32"
	"golang.org/x/exp/slices"

	"github.com/ymd-h/HashDL/hact"
	"github.com/ymd-h/HashDL/herr"
	"github.com/ymd-h/HashDL/hhash"
	"github.com/ymd-h/HashDL/hinit"
	"github.com/ymd-h/HashDL/hopt"
	"github.com/ymd-h/HashDL/hrand"
	"github.com/ymd-h/HashDL/htable"
)

// Layer is a fully-connected layer whose forward and backward passes
// only ever touch the active subset of its neurons for a given example:
// the set retrieved from its hash tables, rather than every unit.
type Layer struct {
	F, U int

	Act    hact.Func
	Hasher hhash.Hasher
	Tables *htable.Tables

	Neurons []Neuron

	Opt      hopt.Optimizer
	Sparsity float32
	L2       float32
}

// NewLayer allocates U neurons of fan-in F, initializes their weights and
// biases from init, and performs the initial rebuild so every neuron's
// hash keys are already present in the tables before the first forward
// pass.
func NewLayer(f, u, l int, act hact.Func, hasher hhash.Hasher, init hinit.Initializer, opt hopt.Optimizer, sparsity, l2 float32, rng *hrand.Stream) (*Layer, error) {
	if f <= 0 || u <= 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewLayer: fan-in and unit count must be > 0 (got F=%d, U=%d)", f, u)
	}
	if l <= 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewLayer: L must be > 0, got %d", l)
	}
	if sparsity < 0 || sparsity > 1 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewLayer: sparsity must be in [0,1], got %v", sparsity)
	}
	if l2 < 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewLayer: L2 must be >= 0, got %v", l2)
	}

	neurons := make([]Neuron, u)
	for i := range neurons {
		w := make([]float32, f)
		for j := range w {
			w[j] = init.Sample(rng)
		}
		neurons[i] = newNeuron(i, f, w, init.Sample(rng))
	}

	ly := &Layer{
		F: f, U: u,
		Act: act, Hasher: hasher, Tables: htable.New(l),
		Neurons: neurons, Opt: opt, Sparsity: sparsity, L2: l2,
	}
	ly.Rebuild()
	return ly, nil
}

// Rebuild re-hashes every neuron's current weight vector and rebuilds all
// L tables. Layer-local: safe to run concurrently with another layer's
// Rebuild, but must not overlap this layer's own Forward/Backward.
func (ly *Layer) Rebuild() {
	ids := make([]int, ly.U)
	for i := range ids {
		ids[i] = i
	}
	ly.Tables.Rebuild(ids, func(n int) []int64 {
		// ly.Neurons[n].W always has length ly.F == ly.Hasher.F(), so
		// this cannot fail on dimension mismatch.
		keys, _ := ly.Hasher.Hash(ly.Neurons[n].W)
		return keys
	})
}

// ExampleState is the per-example, per-layer slice of the batch context:
// the active set, the (dense) input restricted to F coordinates, the
// pre-activation values at active neurons, and the dense post-activation
// output.
type ExampleState struct {
	Active []int
	X      []float32
	Z      []float32 // length U, valid only at Active indices
	A      []float32 // length U, zero outside Active
}

// activeSet computes the union of hash-retrieved buckets for x, folds in
// label-aware retrieval when y is non-nil, applies the empty-active-set
// fallback, and pads to the configured sparsity floor.
func (ly *Layer) activeSet(x, y []float32) ([]int, error) {
	keys, err := ly.Hasher.Hash(x)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool, ly.U/4+1)
	for ell, k := range keys {
		for _, n := range ly.Tables.Bucket(ell, k) {
			seen[n] = true
		}
	}
	if y != nil {
		for n, v := range y {
			if v != 0 {
				seen[n] = true
			}
		}
	}
	if len(seen) == 0 {
		step := (ly.U + ly.Tables.L() - 1) / ly.Tables.L()
		if step < 1 {
			step = 1
		}
		for n := 0; n < ly.U; n += step {
			seen[n] = true
		}
	}
	if ly.Sparsity > 0 {
		min := int(math32.Ceil(ly.Sparsity * float32(ly.U)))
		if min > ly.U {
			min = ly.U
		}
		if len(seen) < min {
			ly.padActiveSet(seen, min)
		}
	}
	active := make([]int, 0, len(seen))
	for n := range seen {
		active = append(active, n)
	}
	slices.Sort(active)
	return active, nil
}

// padActiveSet adds neurons to seen, highest weight-vector magnitude
// first and ties broken by ascending id, until len(seen) reaches min or
// every neuron has been added.
func (ly *Layer) padActiveSet(seen map[int]bool, min int) {
	type candidate struct {
		id  int
		mag float32
	}
	cands := make([]candidate, 0, ly.U-len(seen))
	for n := 0; n < ly.U; n++ {
		if seen[n] {
			continue
		}
		cands = append(cands, candidate{id: n, mag: ly.Neurons[n].norm()})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].mag != cands[j].mag {
			return cands[i].mag > cands[j].mag
		}
		return cands[i].id < cands[j].id
	})
	need := min - len(seen)
	for i := 0; i < need && i < len(cands); i++ {
		seen[cands[i].id] = true
	}
}

// Forward computes the sparse forward pass for one example. y, if
// non-nil, is the label mask that forces label-aware retrieval on this
// layer; pass nil for hidden layers and for inference without labels.
func (ly *Layer) Forward(x, y []float32) (*ExampleState, error) {
	active, err := ly.activeSet(x, y)
	if err != nil {
		return nil, err
	}
	es := &ExampleState{
		Active: active,
		X:      append([]float32(nil), x...),
		Z:      make([]float32, ly.U),
		A:      make([]float32, ly.U),
	}
	for _, n := range active {
		nr := &ly.Neurons[n]
		z := nr.B
		for f := 0; f < ly.F; f++ {
			z += nr.W[f] * x[f]
		}
		es.Z[n] = z
		es.A[n] = ly.Act.Value(z)
	}
	return es, nil
}

// neuronGrad accumulates one neuron's gradient contributions from the
// examples processed by a single worker thread.
type neuronGrad struct {
	W []float32
	B float32
}

// Backward computes this example's contribution to every active neuron's
// gradient (added into shadow, a per-thread accumulator owned by the
// caller for the duration of one batch's backward pass over this layer)
// and returns the dense gradient w.r.t. this layer's input.
func (ly *Layer) Backward(es *ExampleState, deltaOut []float32, shadow map[int]*neuronGrad) []float32 {
	gIn := make([]float32, ly.F)
	for _, n := range es.Active {
		g := deltaOut[n] * ly.Act.Deriv(es.Z[n])
		ng := shadow[n]
		if ng == nil {
			ng = &neuronGrad{W: make([]float32, ly.F)}
			shadow[n] = ng
		}
		ng.B += g
		nr := &ly.Neurons[n]
		for f := 0; f < ly.F; f++ {
			ng.W[f] += g * es.X[f]
			gIn[f] += g * nr.W[f]
		}
	}
	return gIn
}

// Accumulate merges every worker thread's gradient shadow into each
// touched neuron's batch-level gradient buffer.
func (ly *Layer) Accumulate(shadows []map[int]*neuronGrad) {
	for _, sh := range shadows {
		for n, ng := range sh {
			nr := &ly.Neurons[n]
			for f := 0; f < ly.F; f++ {
				nr.gradW[f] += ng.W[f]
			}
			nr.gradB += ng.B
			nr.touched = true
		}
	}
}

// Update applies one optimizer step to every neuron touched during the
// batch just completed, dividing its accumulated gradient by batchSize
// and adding L2 weight decay before stepping; untouched neurons (and
// their optimizer moments) are left exactly as they were.
func (ly *Layer) Update(batchSize int) {
	inv := 1 / float32(batchSize)
	for i := range ly.Neurons {
		nr := &ly.Neurons[i]
		if !nr.touched {
			continue
		}
		for f := 0; f < ly.F; f++ {
			g := nr.gradW[f] * inv
			if ly.L2 > 0 {
				g += ly.L2 * nr.W[f]
			}
			nr.W[f] = ly.Opt.Step(nr.W[f], g, &nr.WOpt[f])
			nr.gradW[f] = 0
		}
		gb := nr.gradB * inv
		nr.B = ly.Opt.Step(nr.B, gb, &nr.BOpt)
		nr.gradB = 0
		nr.touched = false
	}
}
