// Package parallel splits index ranges across goroutines for the CPU backend.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on concurrently running chunks.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
//
// Tabular batches are small, so the chunk size is large enough that most
// kernels stay sequential and only wide hidden layers fan out.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 8192,
	}
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{MinChunkSize: 1}
}

// For executes f(start, end) over disjoint chunks covering [0, n).
// Falls back to a single call when parallelism is disabled or n is small.
func For(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	// The group only bounds concurrency; chunks cannot fail.
	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += chunk {
		s, e := start, min(start+chunk, n)
		g.Go(func() error {
			f(s, e)
			return nil
		})
	}
	_ = g.Wait()
}
