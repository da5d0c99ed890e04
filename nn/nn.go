// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers the autoencoders are assembled from.
//
// Layers are bound to a backend at construction. Built on an autodiff
// backend, their forward passes are differentiable:
//
//	backend := autodiff.New(cpu.New())
//	rng := rand.New(rand.NewSource(1))
//	hidden, err := nn.NewDense("hidden", 13, 64, "relu", backend, rng)
package nn

import (
	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// UniformSource produces uniform variates in [0, 1). *rand.Rand satisfies it.
type UniformSource = nn.UniformSource

// Loss computes a scalar training objective.
type Loss = nn.Loss

// ErrUnknownActivation is returned for unsupported activation names.
var ErrUnknownActivation = nn.ErrUnknownActivation

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Linear represents a fully connected layer with weight [out, in].
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
func NewLinear(inFeatures, outFeatures int, backend tensor.Backend, rng UniformSource) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, backend, rng)
}

// Dense is a Linear layer followed by a named activation.
type Dense = nn.Dense

// NewDense creates a Dense layer.
func NewDense(name string, in, out int, activation string, backend tensor.Backend, rng UniformSource) (*Dense, error) {
	return nn.NewDense(name, in, out, activation, backend, rng)
}

// Sequential chains modules in order.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// ActivationByName returns the activation module for name.
func ActivationByName(name string, backend tensor.Backend) (Module, error) {
	return nn.ActivationByName(name, backend)
}

// Activations lists the supported activation names.
func Activations() []string {
	return nn.Activations()
}

// MAELoss is the mean absolute error loss.
type MAELoss = nn.MAELoss

// NewMAELoss creates an MAE loss bound to backend.
func NewMAELoss(backend tensor.Backend) *MAELoss {
	return nn.NewMAELoss(backend)
}
