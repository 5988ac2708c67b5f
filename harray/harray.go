// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package harray is the dense boundary adapter: the only place batches of
// examples enter and leave the sparse core as ordinary row-major float32
// matrices. It is adapted from etensor's Shape/stride bookkeeping, trimmed
// from an arbitrary-rank tensor down to the 2-D (batch, features) case the
// network boundary actually needs.
package harray

import "github.com/ymd-h/HashDL/herr"

// Matrix is a dense, row-major Rows x Cols float32 matrix.
type Matrix struct {
	Rows, Cols int
	Data       []float32
}

// NewMatrix allocates a zeroed Rows x Cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Row returns the slice of m's backing array for row i; mutations through
// it write back into m.
func (m *Matrix) Row(i int) []float32 {
	o := i * m.Cols
	return m.Data[o : o+m.Cols]
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) float32 {
	return m.Data[row*m.Cols+col]
}

// Set assigns the element at (row, col).
func (m *Matrix) Set(row, col int, v float32) {
	m.Data[row*m.Cols+col] = v
}

// SameShape reports whether m and o have identical Rows and Cols.
func (m *Matrix) SameShape(o *Matrix) bool {
	return m.Rows == o.Rows && m.Cols == o.Cols
}

// CheckCols validates that m has exactly cols columns, regardless of row
// count, returning a herr.ShapeMismatch error otherwise.
func (m *Matrix) CheckCols(name string, cols int) error {
	if m.Cols != cols {
		return herr.Wrap(herr.ShapeMismatch, "%s: expected %d columns, got %d", name, cols, m.Cols)
	}
	return nil
}

// CheckShape validates that m has the expected row and column counts,
// returning a herr.ShapeMismatch error otherwise.
func (m *Matrix) CheckShape(name string, rows, cols int) error {
	if m.Rows != rows || m.Cols != cols {
		return herr.Wrap(herr.ShapeMismatch, "%s: expected shape (%d, %d), got (%d, %d)", name, rows, cols, m.Rows, m.Cols)
	}
	return nil
}
