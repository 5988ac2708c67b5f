// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timer provides a wall-clock duration timer built on the
// standard time package, accumulating total elapsed time and call count
// across repeated Start/Stop pairs. slide.Network uses one per processing
// phase (forward, backward, update, rebuild) to report where batch time
// goes.
package timer

import "time"

// Time tracks accumulated elapsed time across repeated Start/Stop pairs.
type Time struct {
	St    time.Time
	Total time.Duration
	N     int
}

// Reset zeroes the accumulated Total and N.
func (t *Time) Reset() {
	t.Total = 0
	t.N = 0
}

// Start records the current instant as the interval's beginning.
func (t *Time) Start() {
	t.St = time.Now()
}

// Stop closes out the interval begun by the most recent Start, folds its
// duration into Total, increments N, and returns that duration.
func (t *Time) Stop() time.Duration {
	iv := time.Since(t.St)
	t.Total += iv
	t.N++
	return iv
}

// Avg returns Total/N, the mean duration of the intervals recorded so far.
func (t *Time) Avg() time.Duration {
	if t.N == 0 {
		return 0
	}
	return t.Total / time.Duration(t.N)
}

// AvgSecs is Avg expressed as a float64 number of seconds.
func (t *Time) AvgSecs() float64 {
	if t.N == 0 {
		return 0
	}
	return float64(t.Total) / (float64(t.N) * float64(time.Second))
}

// TotalSecs is Total expressed as a float64 number of seconds.
func (t *Time) TotalSecs() float64 {
	return float64(t.Total) / float64(time.Second)
}
