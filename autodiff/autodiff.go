// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// A Backend wraps any compute backend and records operations on a gradient
// tape while recording is on:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y := backend.Sum(backend.Mul(x, x))
//	grads := autodiff.Backward(y, backend) // grads[x] == 2x
package autodiff

import (
	"github.com/born-ml/tabae/internal/autodiff"
	"github.com/born-ml/tabae/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// BackwardCapable is implemented by backends that own a gradient tape.
type BackwardCapable = autodiff.BackwardCapable

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// Backward computes the gradients of t with respect to every tensor that
// took part in recorded operations.
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.Tensor]*tensor.Tensor {
	return autodiff.Backward(t, backend)
}
