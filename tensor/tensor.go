// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensor the autoencoders consume
// and produce.
//
// Tensors are row-major. Datasets are matrices of shape [rows, features]:
//
//	x, err := tensor.FromRows([][]float64{
//	    {0.1, 0.4, 0.9},
//	    {0.3, 0.2, 0.5},
//	})
package tensor

import "github.com/born-ml/tabae/internal/tensor"

// Tensor is a dense, row-major float64 array.
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor. An empty Shape is a scalar.
type Shape = tensor.Shape

// Backend is the interface compute backends implement.
type Backend = tensor.Backend

// NormalSource produces standard normal variates. *rand.Rand satisfies it.
type NormalSource = tensor.NormalSource

// New allocates a zero-filled tensor.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor from a copy of data.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromRows creates a [len(rows), width] matrix from equally wide rows.
func FromRows(rows [][]float64) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// Zeros creates a tensor filled with zeros. Panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// Randn creates a tensor of independent N(0, 1) draws from src.
func Randn(shape Shape, src NormalSource) *Tensor {
	return tensor.Randn(shape, src)
}
