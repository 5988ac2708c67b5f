// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hrand provides seeded, reproducible random number generation
// for hashers and initializers. Every stream
// wraps its own *rand.Rand so that two Streams constructed from the same
// seed draw identical sequences regardless of what else is running.
package hrand

import "math/rand"

// Stream is an independent, seeded random source. Thr is the owning
// worker-thread index and is informational only (kept so call sites can
// log which thread drew a given value); it has no effect on the sequence.
type Stream struct {
	rnd *rand.Rand
	Thr int
}

// New returns a Stream seeded deterministically from seed.
func New(seed int64) *Stream {
	return &Stream{rnd: rand.New(rand.NewSource(seed))}
}

// WithThread returns a copy of s tagged with the given thread index.
func (s *Stream) WithThread(thr int) *Stream {
	return &Stream{rnd: s.rnd, Thr: thr}
}

// Float32 returns a uniform random value in [0,1).
func (s *Stream) Float32() float32 {
	return s.rnd.Float32()
}

// Gauss returns a sample from N(mean, sigma^2).
func (s *Stream) Gauss(mean, sigma float64) float64 {
	return mean + sigma*s.rnd.NormFloat64()
}

// Intn returns a uniform random integer in [0,n).
func (s *Stream) Intn(n int) int {
	return s.rnd.Intn(n)
}

// Permutation returns a random permutation of [0,n), using the standard
// Fisher-Yates shuffle (mirrors erand.PermuteInts' approach, but over an
// explicit owned source rather than the global one).
func (s *Stream) Permutation(n int) []int {
	p := s.rnd.Perm(n)
	return p
}
