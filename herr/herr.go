// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package herr defines the error kinds surfaced across the HashDL API
// boundary: TypeMismatch, InvalidArgument, ShapeMismatch, InvalidState
// and NumericFault. Every exported error wraps one of these sentinels so
// callers can discriminate with errors.Is.
package herr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap these with fmt.Errorf("...: %w", Kind) at the call
// site rather than constructing new error values, so errors.Is keeps
// working through the wrap chain.
var (
	TypeMismatch    = errors.New("type mismatch")
	InvalidArgument = errors.New("invalid argument")
	ShapeMismatch   = errors.New("shape mismatch")
	InvalidState    = errors.New("invalid state")
	NumericFault    = errors.New("numeric fault")
)

// Wrap annotates kind with a formatted message, preserving errors.Is(err, kind).
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
