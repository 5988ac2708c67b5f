// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slide

import (
	"math"

	"github.com/ymd-h/HashDL/harray"
)

// ActiveStats accumulates running min/max/avg active-set size over a
// sequence of examples (see Layer.ActiveStats; Forward does not feed it),
// useful for checking that retrieval stays within an expected sparsity
// range over a batch or dataset.
type ActiveStats struct {
	Min   int
	Max   int
	Sum   int
	N     int
	total int // layer width U, set on first observation, for Frac
}

// Init resets the running statistics.
func (a *ActiveStats) Init() {
	a.Min = math.MaxInt32
	a.Max = 0
	a.Sum = 0
	a.N = 0
	a.total = 0
}

// Observe records one example's active-set size out of u possible
// neurons.
func (a *ActiveStats) Observe(size, u int) {
	if a.N == 0 || size < a.Min {
		a.Min = size
	}
	if size > a.Max {
		a.Max = size
	}
	a.Sum += size
	a.N++
	a.total = u
}

// Avg returns the mean active-set size observed so far.
func (a *ActiveStats) Avg() float32 {
	if a.N == 0 {
		return 0
	}
	return float32(a.Sum) / float32(a.N)
}

// MinFrac and MaxFrac return the observed size bounds as a fraction of
// the layer's total unit count, for comparing against a configured
// Sparsity floor.
func (a *ActiveStats) MinFrac() float32 {
	if a.total == 0 {
		return 0
	}
	return float32(a.Min) / float32(a.total)
}

func (a *ActiveStats) MaxFrac() float32 {
	if a.total == 0 {
		return 0
	}
	return float32(a.Max) / float32(a.total)
}

// ActiveStats computes running active-set size statistics for one layer
// by replaying activeSet over every row of x (and, if labels is non-nil,
// the matching label row). It does not mutate any cached batch state and
// is safe to call at any time, independent of Forward/Backward.
func (ly *Layer) ActiveStats(x *harray.Matrix, labels *harray.Matrix) (ActiveStats, error) {
	var st ActiveStats
	st.Init()
	for i := 0; i < x.Rows; i++ {
		var y []float32
		if labels != nil {
			y = labels.Row(i)
		}
		active, err := ly.activeSet(x.Row(i), y)
		if err != nil {
			return st, err
		}
		st.Observe(len(active), ly.U)
	}
	return st, nil
}
