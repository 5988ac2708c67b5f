// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hinit provides weight initializers: a constant value and
// Gaussian sampling, the two distributions a layer's construction needs.
package hinit

import "github.com/ymd-h/HashDL/hrand"

// Initializer draws a single scalar weight or bias value from a stream.
type Initializer interface {
	Sample(rng *hrand.Stream) float32
}

// Constant always returns C.
type Constant struct {
	C float32
}

func (c Constant) Sample(*hrand.Stream) float32 { return c.C }

// Gauss draws from N(Mu, Sigma^2).
type Gauss struct {
	Mu, Sigma float64
}

func (g Gauss) Sample(rng *hrand.Stream) float32 {
	return float32(rng.Gauss(g.Mu, g.Sigma))
}
