// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAndBucket(t *testing.T) {
	tb := New(3)
	assert.Equal(t, 3, tb.L())
	tb.Insert(0, 42, 7)
	tb.Insert(0, 42, 9)
	assert.ElementsMatch(t, []int{7, 9}, tb.Bucket(0, 42))
	assert.Nil(t, tb.Bucket(1, 42))
}

func TestClear(t *testing.T) {
	tb := New(2)
	tb.Insert(0, 1, 1)
	tb.Clear()
	assert.Nil(t, tb.Bucket(0, 1))
}

// TestRebuildReflectsCurrentKeysOnly covers the hash-table invariant: after
// Rebuild, every bucket contains exactly the neurons whose current keys
// map there, and nothing left over from a prior rebuild.
func TestRebuildReflectsCurrentKeysOnly(t *testing.T) {
	tb := New(2)
	gen := 0
	keyFn := func(n int) []int64 {
		if gen == 0 {
			return []int64{int64(n % 2), int64(n % 3)}
		}
		return []int64{int64(n % 5), int64(n % 7)}
	}
	ids := []int{0, 1, 2, 3, 4}
	tb.Rebuild(ids, keyFn)
	firstBucket0 := append([]int(nil), tb.Bucket(0, 0)...)
	assert.NotEmpty(t, firstBucket0)

	gen = 1
	tb.Rebuild(ids, keyFn)
	for _, n := range ids {
		ks := keyFn(n)
		for ell, k := range ks {
			assert.Contains(t, tb.Bucket(ell, k), n)
		}
	}
	// the stale key from gen 0 must not still map to everything it used to
	assert.NotEqual(t, firstBucket0, tb.Bucket(0, 0))
}
