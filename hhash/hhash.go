// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hhash implements the WTA and DWTA locality-sensitive hashers
// used to select each layer's active neuron set. Permutations are sampled
// once at construction from an hrand.Stream and frozen for the hasher's
// lifetime.
package hhash

import (
	"github.com/chewxy/math32"
	"github.com/ymd-h/HashDL/herr"
	"github.com/ymd-h/HashDL/hrand"
)

// Hasher maps a dense activation vector of dimension F to L integer
// bucket keys. Hash must be side-effect free.
type Hasher interface {
	F() int
	L() int
	Hash(x []float32) ([]int64, error)
}

// bitsFor returns ceil(log2(p)) for p >= 1.
func bitsFor(p int) uint {
	b := uint(0)
	for (1 << b) < p {
		b++
	}
	return b
}

func samplePermutations(rng *hrand.Stream, l, k, f int) [][]int {
	perms := make([][]int, l*k)
	for i := range perms {
		perms[i] = rng.Permutation(f)
	}
	return perms
}

func validateDims(want, got int) error {
	if want != got {
		return herr.Wrap(herr.InvalidArgument, "hhash: expected input dimension %d, got %d", want, got)
	}
	return nil
}

// WTA is Winner-Take-All hashing: each of K permutations selects the
// first P coordinates of the input; the hash contribution is the index
// within those P coordinates of the argmax, concatenated across K
// permutations into one key per table.
type WTA struct {
	f, k, l, p int
	bits       uint
	perms      [][]int // L*K permutations, each of length f
}

// NewWTA constructs a WTA hasher over F input dimensions with K
// permutations per table, L tables and bin size P, seeded from rng.
func NewWTA(f, k, l, p int, rng *hrand.Stream) (*WTA, error) {
	if f <= 0 || k <= 0 || l <= 0 || p <= 0 || p > f {
		return nil, herr.Wrap(herr.InvalidArgument, "hhash.NewWTA: require f,k,l,p > 0 and p <= f (got f=%d k=%d l=%d p=%d)", f, k, l, p)
	}
	return &WTA{
		f: f, k: k, l: l, p: p,
		bits:  bitsFor(p),
		perms: samplePermutations(rng, l, k, f),
	}, nil
}

func (h *WTA) F() int { return h.f }
func (h *WTA) L() int { return h.l }

func (h *WTA) Hash(x []float32) ([]int64, error) {
	if err := validateDims(h.f, len(x)); err != nil {
		return nil, err
	}
	keys := make([]int64, h.l)
	for l := 0; l < h.l; l++ {
		var key int64
		for k := 0; k < h.k; k++ {
			perm := h.perms[l*h.k+k]
			code := argmax(x, perm[:h.p])
			key = key<<h.bits | int64(code)
		}
		keys[l] = key
	}
	return keys, nil
}

// DWTA is Densified WTA: identical to WTA, but if a permutation's current
// window is degenerate (all coordinates zero), the hasher falls back to
// the next window along the same permutation, cyclically, until a
// non-degenerate window is found (or all windows are degenerate, in which
// case the contribution is 0) -- this keeps sparse inputs from collapsing
// every example into the same bucket.
type DWTA struct {
	f, k, l, p int
	bits       uint
	nBins      int
	perms      [][]int
}

// NewDWTA constructs a DWTA hasher; parameters as NewWTA.
func NewDWTA(f, k, l, p int, rng *hrand.Stream) (*DWTA, error) {
	if f <= 0 || k <= 0 || l <= 0 || p <= 0 || p > f {
		return nil, herr.Wrap(herr.InvalidArgument, "hhash.NewDWTA: require f,k,l,p > 0 and p <= f (got f=%d k=%d l=%d p=%d)", f, k, l, p)
	}
	return &DWTA{
		f: f, k: k, l: l, p: p,
		bits:  bitsFor(p),
		nBins: (f + p - 1) / p,
		perms: samplePermutations(rng, l, k, f),
	}, nil
}

func (h *DWTA) F() int { return h.f }
func (h *DWTA) L() int { return h.l }

func (h *DWTA) Hash(x []float32) ([]int64, error) {
	if err := validateDims(h.f, len(x)); err != nil {
		return nil, err
	}
	keys := make([]int64, h.l)
	for l := 0; l < h.l; l++ {
		var key int64
		for k := 0; k < h.k; k++ {
			perm := h.perms[l*h.k+k]
			code := 0
			for b := 0; b < h.nBins; b++ {
				start := b * h.p
				end := start + h.p
				if end > h.f {
					end = h.f
				}
				idx, ok := argmaxNonzero(x, perm[start:end])
				if ok {
					code = idx
					break
				}
			}
			key = key<<h.bits | int64(code)
		}
		keys[l] = key
	}
	return keys, nil
}

// Factory defers hasher construction until a layer's fan-in F is known,
// so the same configuration (e.g. from Network's constructor) can be
// reused to build one hasher per layer.
type Factory func(f int, rng *hrand.Stream) (Hasher, error)

// defaultBinSize picks a bin size P when the caller does not name one
// explicitly, clamped to F so WTA/DWTA(K, L) alone (matching the
// external interface's two-argument signature) is always constructible.
func defaultBinSize(f int) int {
	if f < 8 {
		return f
	}
	return 8
}

// WTA returns a Factory building a WTA hasher with K permutations per
// table, L tables, and a default bin size.
func WTA(k, l int) Factory {
	return func(f int, rng *hrand.Stream) (Hasher, error) {
		return NewWTA(f, k, l, defaultBinSize(f), rng)
	}
}

// WTAWithBinSize is WTA with an explicit bin size P.
func WTAWithBinSize(k, l, p int) Factory {
	return func(f int, rng *hrand.Stream) (Hasher, error) {
		return NewWTA(f, k, l, p, rng)
	}
}

// DWTA returns a Factory building a DWTA hasher with K permutations per
// table, L tables, and a default bin size.
func DWTA(k, l int) Factory {
	return func(f int, rng *hrand.Stream) (Hasher, error) {
		return NewDWTA(f, k, l, defaultBinSize(f), rng)
	}
}

// DWTAWithBinSize is DWTA with an explicit bin size P.
func DWTAWithBinSize(k, l, p int) Factory {
	return func(f int, rng *hrand.Stream) (Hasher, error) {
		return NewDWTA(f, k, l, p, rng)
	}
}

// argmax returns the index within window of the coordinate with the
// largest x value, breaking ties toward the earliest index.
func argmax(x []float32, window []int) int {
	best := 0
	bestV := x[window[0]]
	for i := 1; i < len(window); i++ {
		v := x[window[i]]
		if v > bestV {
			bestV = v
			best = i
		}
	}
	return best
}

// argmaxNonzero is argmax restricted to nonzero coordinates; ok is false
// if every coordinate in window is zero.
func argmaxNonzero(x []float32, window []int) (int, bool) {
	best := -1
	var bestV float32
	for i, coord := range window {
		v := x[coord]
		if v == 0 || math32.IsNaN(v) {
			continue
		}
		if best == -1 || v > bestV {
			bestV = v
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
