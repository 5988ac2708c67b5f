// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slide

import "sync"

// errCollector gathers the first error raised by any worker in a
// parallel region, so the region can join and re-raise a single
// representative error to the caller, per spec's concurrency model.
type errCollector struct {
	mu  sync.Mutex
	err error
}

func (c *errCollector) set(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

func (c *errCollector) get() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
