// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training.
//
// Optimizers are usually chosen before a model exists, as a Factory:
//
//	ae, _, _, err := vae.BuildSimpleAutoencoder(2, 13,
//	    vae.WithOptimizer(optim.AdamFactory(optim.AdamConfig{LR: 0.01})))
package optim

import (
	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Factory creates an optimizer over a parameter set.
type Factory = optim.Factory

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// SGDFactory returns a Factory building SGD optimizers.
func SGDFactory(config SGDConfig) Factory {
	return optim.SGDFactory(config)
}

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// AdamFactory returns a Factory building Adam optimizers.
func AdamFactory(config AdamConfig) Factory {
	return optim.AdamFactory(config)
}
