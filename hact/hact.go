// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hact provides the Linear, ReLU and Sigmoid activation
// functions, each exposing a value and a derivative.
package hact

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/iancoleman/strcase"
)

// Func is an activation function: value and derivative in terms of the
// pre-activation z (derivative is NOT in terms of the post-activation,
// except where the function's own derivative is most naturally expressed
// that way, as with Sigmoid).
type Func interface {
	// Value returns f(z).
	Value(z float32) float32
	// Deriv returns f'(z).
	Deriv(z float32) float32
	// Name returns the canonical registry name.
	Name() string
}

// Linear is the identity activation: f(z) = z, f'(z) = 1.
type Linear struct{}

func (Linear) Value(z float32) float32 { return z }
func (Linear) Deriv(float32) float32   { return 1 }
func (Linear) Name() string            { return "Linear" }

// ReLU is the rectified-linear activation: f(z) = max(0, z).
type ReLU struct{}

func (ReLU) Value(z float32) float32 {
	if z > 0 {
		return z
	}
	return 0
}

func (ReLU) Deriv(z float32) float32 {
	if z > 0 {
		return 1
	}
	return 0
}

func (ReLU) Name() string { return "ReLU" }

// Sigmoid is the logistic activation: f(z) = 1/(1+exp(-z)), computed so
// it does not overflow for large negative z (branch on sign of z and
// evaluate exp of the non-positive argument in both branches).
type Sigmoid struct{}

func (Sigmoid) Value(z float32) float32 {
	if z >= 0 {
		return 1 / (1 + math32.Exp(-z))
	}
	e := math32.Exp(z)
	return e / (1 + e)
}

func (s Sigmoid) Deriv(z float32) float32 {
	f := s.Value(z)
	return f * (1 - f)
}

func (Sigmoid) Name() string { return "Sigmoid" }

// ByName resolves a Func by name, case- and separator-insensitive (so
// "relu", "ReLU" and "re_lu" all resolve to the same entry).
func ByName(name string) (Func, error) {
	switch strcase.ToSnake(name) {
	case "linear":
		return Linear{}, nil
	case "re_lu", "relu":
		return ReLU{}, nil
	case "sigmoid":
		return Sigmoid{}, nil
	}
	return nil, fmt.Errorf("hact: unknown activation %q", name)
}
