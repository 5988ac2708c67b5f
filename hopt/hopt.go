// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hopt provides the SGD and Adam optimizers. Each parameter
// (weight or bias) owns its own State value inline rather than in a
// parallel parameter-to-state map, to keep the sparse update loop
// cache-local.
package hopt

import (
	"github.com/chewxy/math32"
	"github.com/ymd-h/HashDL/herr"
)

// State is the per-parameter optimizer state. Zero value is a valid
// starting state for both SGD (unused) and Adam (m, v, t all zero).
type State struct {
	M float32
	V float32
	T int
}

// Optimizer updates a single scalar parameter given its accumulated
// gradient and its State, which it mutates in place.
type Optimizer interface {
	Step(w float32, g float32, st *State) float32
}

// SGD is plain stochastic gradient descent: w <- w - lr*g.
type SGD struct {
	LR float32
}

// NewSGD constructs an SGD optimizer, validating lr > 0.
func NewSGD(lr float32) (*SGD, error) {
	if err := checkLR(lr); err != nil {
		return nil, err
	}
	return &SGD{LR: lr}, nil
}

func (o *SGD) Step(w, g float32, st *State) float32 {
	return w - o.LR*g
}

// Adam is the Adam optimizer (Kingma & Ba 2014).
type Adam struct {
	LR           float32
	Beta1, Beta2 float32
	Eps          float32
}

// NewAdam constructs an Adam optimizer with the given hyperparameters.
// Pass 0 for beta1/beta2/eps to use the documented defaults (0.9, 0.999, 1e-8).
func NewAdam(lr, beta1, beta2, eps float32) (*Adam, error) {
	if err := checkLR(lr); err != nil {
		return nil, err
	}
	if beta1 == 0 {
		beta1 = 0.9
	}
	if beta2 == 0 {
		beta2 = 0.999
	}
	if eps == 0 {
		eps = 1e-8
	}
	return &Adam{LR: lr, Beta1: beta1, Beta2: beta2, Eps: eps}, nil
}

func (o *Adam) Step(w, g float32, st *State) float32 {
	st.T++
	st.M = o.Beta1*st.M + (1-o.Beta1)*g
	st.V = o.Beta2*st.V + (1-o.Beta2)*g*g
	mh := st.M / (1 - math32.Pow(o.Beta1, float32(st.T)))
	vh := st.V / (1 - math32.Pow(o.Beta2, float32(st.T)))
	return w - o.LR*mh/(math32.Sqrt(vh)+o.Eps)
}

func checkLR(lr float32) error {
	if math32.IsNaN(lr) || math32.IsInf(lr, 0) {
		return herr.Wrap(herr.TypeMismatch, "learning rate must be a finite number, got %v", lr)
	}
	if lr <= 0 {
		return herr.Wrap(herr.InvalidArgument, "learning rate must be > 0, got %v", lr)
	}
	return nil
}
