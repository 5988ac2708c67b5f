// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hact

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestLinear(t *testing.T) {
	l := Linear{}
	assert.Equal(t, float32(-3), l.Value(-3))
	assert.Equal(t, float32(1), l.Deriv(100))
}

func TestReLU(t *testing.T) {
	r := ReLU{}
	assert.Equal(t, float32(0), r.Value(-1))
	assert.Equal(t, float32(2), r.Value(2))
	assert.Equal(t, float32(0), r.Deriv(-1))
	assert.Equal(t, float32(1), r.Deriv(1))
}

func TestSigmoidBounds(t *testing.T) {
	s := Sigmoid{}
	assert.InDelta(t, 0.5, s.Value(0), 1e-6)
	v := s.Value(-1000)
	assert.False(t, math32.IsNaN(v))
	assert.False(t, math32.IsInf(v, 0))
	// exp(-1000) underflows to 0 in float32, so the result is exactly the
	// lower bound of [0, 1].
	assert.GreaterOrEqual(t, v, float32(0))
	assert.Less(t, v, float32(1))

	v2 := s.Value(1000)
	assert.False(t, math32.IsNaN(v2))
	assert.InDelta(t, 1, v2, 1e-6)
}

func TestSigmoidDeriv(t *testing.T) {
	s := Sigmoid{}
	d := s.Deriv(0)
	assert.InDelta(t, 0.25, d, 1e-6)
}

func TestByName(t *testing.T) {
	cases := map[string]Func{
		"linear":  Linear{},
		"ReLU":    ReLU{},
		"re_lu":   ReLU{},
		"relu":    ReLU{},
		"Sigmoid": Sigmoid{},
	}
	for name, want := range cases {
		got, err := ByName(name)
		assert.NoError(t, err)
		assert.Equal(t, want.Name(), got.Name())
	}
	_, err := ByName("tanh")
	assert.Error(t, err)
}
