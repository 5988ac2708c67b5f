// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hhash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ymd-h/HashDL/herr"
	"github.com/ymd-h/HashDL/hrand"
)

func TestNewWTAValidation(t *testing.T) {
	rng := hrand.New(1)
	_, err := NewWTA(0, 2, 2, 2, rng)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, herr.InvalidArgument))

	_, err = NewWTA(4, 2, 2, 8, rng)
	assert.Error(t, err)
}

func TestWTAProducesLKeys(t *testing.T) {
	rng := hrand.New(1)
	h, err := NewWTA(8, 3, 5, 4, rng)
	assert.NoError(t, err)
	x := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	keys, err := h.Hash(x)
	assert.NoError(t, err)
	assert.Len(t, keys, 5)
}

func TestWTADimensionMismatch(t *testing.T) {
	rng := hrand.New(1)
	h, err := NewWTA(8, 2, 2, 4, rng)
	assert.NoError(t, err)
	_, err = h.Hash([]float32{1, 2, 3})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, herr.InvalidArgument))
}

func TestWTADeterministic(t *testing.T) {
	a := hrand.New(9)
	b := hrand.New(9)
	ha, _ := NewWTA(6, 2, 4, 3, a)
	hb, _ := NewWTA(6, 2, 4, 3, b)
	x := []float32{0.1, 0.9, 0.3, 0.2, 0.7, 0.5}
	ka, _ := ha.Hash(x)
	kb, _ := hb.Hash(x)
	assert.Equal(t, ka, kb)
}

func TestDWTAHandlesSparseInput(t *testing.T) {
	rng := hrand.New(3)
	h, err := NewDWTA(8, 2, 4, 2, rng)
	assert.NoError(t, err)
	// all-but-one coordinate zero: WTA's first window could easily be
	// degenerate; DWTA must still return L keys without error.
	x := make([]float32, 8)
	x[7] = 1
	keys, err := h.Hash(x)
	assert.NoError(t, err)
	assert.Len(t, keys, 4)
}

func TestDWTAAllZeroInputDoesNotError(t *testing.T) {
	rng := hrand.New(4)
	h, err := NewDWTA(4, 1, 2, 2, rng)
	assert.NoError(t, err)
	keys, err := h.Hash(make([]float32, 4))
	assert.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestFactoryDefaultBinSize(t *testing.T) {
	rng := hrand.New(1)
	f := WTA(2, 3)
	h, err := f(5, rng)
	assert.NoError(t, err)
	assert.Equal(t, 5, h.F())
	assert.Equal(t, 3, h.L())

	f2 := DWTAWithBinSize(2, 3, 2)
	h2, err := f2(10, rng)
	assert.NoError(t, err)
	assert.Equal(t, 10, h2.F())
}

func TestArgmaxTieBreaksEarliest(t *testing.T) {
	x := []float32{5, 5, 1}
	assert.Equal(t, 0, argmax(x, []int{0, 1, 2}))
}

func TestArgmaxNonzeroSkipsZeros(t *testing.T) {
	x := []float32{0, 0, 3}
	idx, ok := argmaxNonzero(x, []int{0, 1, 2})
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok2 := argmaxNonzero(x, []int{0, 1})
	assert.False(t, ok2)
}
