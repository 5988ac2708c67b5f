// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hloss provides the softmax cross-entropy loss helper: a
// collaborator that consumes the network's dense output and produces the
// gradient matrix passed to Network.Backward. It is not required by the
// sparse core itself.
package hloss

import (
	"github.com/chewxy/math32"
	"github.com/ymd-h/HashDL/harray"
)

// SoftmaxCrossEntropy computes the per-example softmax of the network's
// raw output, cross-entropy against a one-hot (or soft) label matrix, and
// the gradient of that loss w.r.t. the raw output.
type SoftmaxCrossEntropy struct{}

// Loss returns the mean cross-entropy over the batch.
func (SoftmaxCrossEntropy) Loss(yTrue, yPred *harray.Matrix) (float32, error) {
	if err := yPred.CheckShape("yPred", yTrue.Rows, yTrue.Cols); err != nil {
		return 0, err
	}
	var sum float32
	for i := 0; i < yPred.Rows; i++ {
		p := softmax(yPred.Row(i))
		t := yTrue.Row(i)
		for j, tv := range t {
			if tv == 0 {
				continue
			}
			sum -= tv * math32.Log(clampEps(p[j]))
		}
	}
	return sum / float32(yPred.Rows), nil
}

// Gradient returns d(loss)/d(yPred), shaped like yPred: softmax(yPred) -
// yTrue, scaled by 1/batch size (standard softmax-cross-entropy gradient).
func (SoftmaxCrossEntropy) Gradient(yTrue, yPred *harray.Matrix) (*harray.Matrix, error) {
	if err := yPred.CheckShape("yPred", yTrue.Rows, yTrue.Cols); err != nil {
		return nil, err
	}
	g := harray.NewMatrix(yPred.Rows, yPred.Cols)
	inv := 1 / float32(yPred.Rows)
	for i := 0; i < yPred.Rows; i++ {
		p := softmax(yPred.Row(i))
		t := yTrue.Row(i)
		row := g.Row(i)
		for j := range row {
			row[j] = (p[j] - t[j]) * inv
		}
	}
	return g, nil
}

func softmax(z []float32) []float32 {
	out := make([]float32, len(z))
	max := z[0]
	for _, v := range z[1:] {
		if v > max {
			max = v
		}
	}
	var sum float32
	for i, v := range z {
		e := math32.Exp(v - max)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func clampEps(p float32) float32 {
	const eps = 1e-12
	if p < eps {
		return eps
	}
	return p
}
