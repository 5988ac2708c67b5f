// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hashdl is the overall repository for HashDL, a hash-based sparse
deep learning engine implementing the SLIDE algorithm in Go (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* slide: defines the primary structural types, Network and Layer, and
the batch-level Forward/Backward orchestration that composes them. This
is where the sparse forward/backward passes, the per-batch gradient
accumulation, and the rebuild-scheduling trigger live.

* hhash implements the WTA and DWTA locality-sensitive hashers used to
select each layer's active neuron subset, and the Factory type that
defers hasher construction until a layer's fan-in is known.

* htable holds the per-layer hash tables (L independent bucket-to-neuron
maps) and their full-rebuild operation.

* hopt implements the SGD and Adam optimizers, each carrying its own
per-parameter state (hopt.State) and hyperparameter validation.

* hsched implements the rebuild schedulers, ConstantFrequency and
ExponentialDecay, that decide which training steps trigger a hash-table
rebuild.

* hact implements the pointwise activation functions (Linear, ReLU,
Sigmoid) shared by every layer.

* hinit implements the weight/bias initializers (Constant, Gauss) used
when a layer is built.

* harray is the dense boundary adapter: the row-major Matrix type that
batches of examples cross the sparse core's boundary as.

* hloss implements loss functions, currently softmax cross-entropy, along
with their output-layer gradients.

* hrand wraps a seeded random source for deterministic sampling of hash
permutations and initial weights.

* herr defines the typed sentinel errors (TypeMismatch, InvalidArgument,
ShapeMismatch, InvalidState, NumericFault) raised across the other
packages.

* timer is a simple interval timing struct, used by slide.Network to
report per-phase (forward, backward, update, rebuild) time.
*/
package hashdl
