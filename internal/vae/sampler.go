package vae

import (
	"fmt"

	"github.com/born-ml/tabae/internal/tensor"
)

// NoiseSource produces the standard normal draws the Sampler consumes.
// *rand.Rand satisfies it.
type NoiseSource = tensor.NormalSource

// Sampler implements the reparameterization trick:
//
//	z = mean + exp(0.5 * logVar) * eps,  eps ~ N(0, 1)
//
// eps enters the graph as a constant, so gradients flow to mean and logVar.
type Sampler struct {
	backend tensor.Backend
	noise   NoiseSource
}

// NewSampler creates a Sampler computing on backend with noise drawn from
// noise.
func NewSampler(backend tensor.Backend, noise NoiseSource) *Sampler {
	return &Sampler{backend: backend, noise: noise}
}

// Sample draws a fresh eps of mean's shape and returns the latent sample.
// Panics if mean and logVar differ in shape.
func (s *Sampler) Sample(mean, logVar *tensor.Tensor) *tensor.Tensor {
	return s.SampleWithNoise(mean, logVar, tensor.Randn(mean.Shape(), s.noise))
}

// SampleWithNoise applies the transform with a caller-supplied eps.
func (s *Sampler) SampleWithNoise(mean, logVar, eps *tensor.Tensor) *tensor.Tensor {
	if !mean.Shape().Equal(logVar.Shape()) || !mean.Shape().Equal(eps.Shape()) {
		panic(fmt.Sprintf("sampler: shape mismatch, mean %v, log variance %v, eps %v",
			mean.Shape(), logVar.Shape(), eps.Shape()))
	}
	b := s.backend
	std := b.Exp(b.MulScalar(logVar, 0.5))
	return b.Add(mean, b.Mul(std, eps))
}
