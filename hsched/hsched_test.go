// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hsched

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestConstantFrequency(t *testing.T) {
	c, err := NewConstantFrequency(10)
	assert.NoError(t, err)
	for step := 1; step <= 30; step++ {
		due := c.Due(step)
		assert.Equal(t, step%10 == 0, due)
	}
}

func TestConstantFrequencyValidation(t *testing.T) {
	_, err := NewConstantFrequency(0)
	assert.Error(t, err)
}

// TestExponentialDecaySchedule checks that N0=50, lambda=ln2 rebuilds at
// steps 50, 100, 200, 400.
func TestExponentialDecaySchedule(t *testing.T) {
	e, err := NewExponentialDecay(50, math32.Log(2))
	assert.NoError(t, err)

	var got []int
	for step := 1; step <= 400; step++ {
		if e.Due(step) {
			got = append(got, step)
		}
	}
	assert.Equal(t, []int{50, 100, 200, 400}, got)
}

func TestExponentialDecayValidation(t *testing.T) {
	_, err := NewExponentialDecay(0, 1)
	assert.Error(t, err)
}
