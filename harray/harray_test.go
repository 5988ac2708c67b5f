// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ymd-h/HashDL/herr"
)

func TestRowViewWritesBack(t *testing.T) {
	m := NewMatrix(2, 3)
	row := m.Row(1)
	row[0] = 9
	assert.Equal(t, float32(9), m.At(1, 0))
}

func TestSetAt(t *testing.T) {
	m := NewMatrix(2, 2)
	m.Set(0, 1, 5)
	assert.Equal(t, float32(5), m.At(0, 1))
	assert.Equal(t, float32(0), m.At(1, 1))
}

func TestSameShape(t *testing.T) {
	a := NewMatrix(2, 3)
	b := NewMatrix(2, 3)
	c := NewMatrix(3, 2)
	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}

func TestCheckShapeMismatch(t *testing.T) {
	m := NewMatrix(2, 3)
	err := m.CheckShape("x", 3, 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, herr.ShapeMismatch))
	assert.NoError(t, m.CheckShape("x", 2, 3))
}

func TestCheckCols(t *testing.T) {
	m := NewMatrix(5, 4)
	assert.NoError(t, m.CheckCols("x", 4))
	err := m.CheckCols("x", 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, herr.ShapeMismatch))
}
