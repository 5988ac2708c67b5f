// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hinit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ymd-h/HashDL/hrand"
)

func TestConstant(t *testing.T) {
	c := Constant{C: 1.5}
	rng := hrand.New(1)
	assert.Equal(t, float32(1.5), c.Sample(rng))
	assert.Equal(t, float32(1.5), c.Sample(rng))
}

func TestGaussDeterministic(t *testing.T) {
	g := Gauss{Mu: 0, Sigma: 1}
	a := hrand.New(5)
	b := hrand.New(5)
	for i := 0; i < 20; i++ {
		assert.Equal(t, g.Sample(a), g.Sample(b))
	}
}

func TestGaussMeanShift(t *testing.T) {
	g := Gauss{Mu: 10, Sigma: 0}
	rng := hrand.New(1)
	assert.Equal(t, float32(10), g.Sample(rng))
}
