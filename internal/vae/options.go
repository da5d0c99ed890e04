package vae

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/born-ml/tabae/internal/autodiff"
	"github.com/born-ml/tabae/internal/backend/cpu"
	"github.com/born-ml/tabae/internal/optim"
	"github.com/born-ml/tabae/internal/parallel"
)

// Option configures a build.
type Option func(*options)

type options struct {
	rng       *rand.Rand
	noise     NoiseSource
	logger    *slog.Logger
	optimizer optim.Factory
	parallel  *parallel.Config
}

// WithRand sets the random source used for weight initialization, sampler
// noise and shuffling during Fit.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed is WithRand with a freshly seeded source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithNoiseSource overrides the source of the sampler's N(0, 1) draws.
// Weight initialization still uses the build's random source.
func WithNoiseSource(noise NoiseSource) Option {
	return func(o *options) { o.noise = noise }
}

// WithLogger sets the logger for build and training progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOptimizer replaces the default Adam(0.001) optimizer the builders
// compile with.
func WithOptimizer(factory optim.Factory) Option {
	return func(o *options) { o.optimizer = factory }
}

// WithParallel configures how the CPU backend splits elementwise kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) { o.parallel = &cfg }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.noise == nil {
		o.noise = o.rng
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.optimizer == nil {
		o.optimizer = DefaultOptimizer()
	}
	return o
}

// graph is the state one build owns: the autodiff backend whose tape
// records every forward pass, and the random sources. Encoders, decoders
// and autoencoders from the same build share it.
type graph struct {
	backend *autodiff.Backend[*cpu.Backend]
	rng     *rand.Rand
	noise   NoiseSource
	logger  *slog.Logger
}

func newGraph(o options) *graph {
	inner := cpu.New()
	if o.parallel != nil {
		inner = cpu.NewWithConfig(*o.parallel)
	}
	return &graph{
		backend: autodiff.New(inner),
		rng:     o.rng,
		noise:   o.noise,
		logger:  o.logger,
	}
}

// DefaultOptimizer returns the optimizer every builder compiles with:
// Adam with learning rate 0.001.
func DefaultOptimizer() optim.Factory {
	return optim.AdamFactory(optim.AdamConfig{LR: 0.001})
}
