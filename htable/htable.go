// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package htable provides the per-layer L hash tables mapping bucket key
// to neuron ids.
package htable

// Tables holds L independent bucket->[]neuron-id maps for one layer.
type Tables struct {
	l      int
	tables []map[int64][]int
}

// New allocates L empty tables.
func New(l int) *Tables {
	t := &Tables{l: l, tables: make([]map[int64][]int, l)}
	for i := range t.tables {
		t.tables[i] = make(map[int64][]int)
	}
	return t
}

// L returns the number of tables.
func (t *Tables) L() int { return t.l }

// Insert adds neuron id n into table ell's bucket key.
func (t *Tables) Insert(ell int, key int64, n int) {
	t.tables[ell][key] = append(t.tables[ell][key], n)
}

// Bucket returns the neuron ids in table ell's bucket key, or nil if
// empty. The returned slice must not be mutated by the caller.
func (t *Tables) Bucket(ell int, key int64) []int {
	return t.tables[ell][key]
}

// Clear empties all L tables without reallocating the outer slice.
func (t *Tables) Clear() {
	for i := range t.tables {
		t.tables[i] = make(map[int64][]int)
	}
}

// Rebuild clears all tables, then re-inserts every neuron according to
// keys(n), which must return exactly L keys for neuron n.
func (t *Tables) Rebuild(neuronIDs []int, keys func(n int) []int64) {
	t.Clear()
	for _, n := range neuronIDs {
		ks := keys(n)
		for ell, k := range ks {
			t.Insert(ell, k, n)
		}
	}
}
