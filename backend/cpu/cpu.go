// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend. Matrix products go through
// gonum; elementwise kernels may be split across goroutines.
package cpu

import (
	internalcpu "github.com/born-ml/tabae/internal/backend/cpu"
	"github.com/born-ml/tabae/internal/parallel"
	"github.com/born-ml/tabae/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ParallelConfig controls how elementwise kernels are split.
type ParallelConfig = parallel.Config

// New creates a CPU backend with the default parallel configuration.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with a custom parallel configuration.
//
// Example:
//
//	backend := cpu.NewWithConfig(cpu.ParallelConfig{Enabled: false})
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultParallelConfig returns the configuration New uses.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
