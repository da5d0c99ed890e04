package vae

import (
	"fmt"

	"github.com/born-ml/tabae/internal/tensor"
)

// VAELoss is the beta-weighted VAE objective:
//
//	recon_row = mean_cols |input - reconstruction|
//	kl_row    = 0.5 * sum_latent(exp(logVar) + mean² - 1 - logVar)
//	loss      = mean_rows(recon_row + beta * kl_row)
//
// The input, mean and log variance come from the ForwardState the loss is
// bound to, not from Forward's arguments. With beta = 0 the KL term is
// skipped and the loss equals the mean absolute error.
type VAELoss struct {
	backend tensor.Backend
	beta    float64
	state   *ForwardState
}

// NewVAELoss binds a VAE loss to an autoencoder's forward state. backend
// must be the autoencoder's Backend() for gradients to flow.
func NewVAELoss(backend tensor.Backend, beta float64, state *ForwardState) *VAELoss {
	return &VAELoss{backend: backend, beta: beta, state: state}
}

// Beta returns the KL weight.
func (l *VAELoss) Beta() float64 {
	return l.beta
}

// Forward returns the batch mean of PerSample as a scalar tensor.
func (l *VAELoss) Forward(target, prediction *tensor.Tensor) *tensor.Tensor {
	return l.backend.Mean(l.PerSample(target, prediction))
}

// PerSample returns the unreduced [batch] loss vector.
func (l *VAELoss) PerSample(target, prediction *tensor.Tensor) *tensor.Tensor {
	recon := l.Reconstruction(target, prediction)
	if l.beta == 0 {
		return recon
	}
	b := l.backend
	return b.Add(recon, b.MulScalar(l.KL(), l.beta))
}

// Reconstruction returns the per-row mean absolute error between the
// captured input and prediction. If no input was captured target is used.
func (l *VAELoss) Reconstruction(target, prediction *tensor.Tensor) *tensor.Tensor {
	input := l.state.Input
	if input == nil {
		input = target
	}
	if !input.Shape().Equal(prediction.Shape()) {
		panic(fmt.Sprintf("VAELoss: input %v and reconstruction %v differ in shape", input.Shape(), prediction.Shape()))
	}
	b := l.backend
	return b.MeanDim(b.Abs(b.Sub(input, prediction)), 1, false)
}

// KL returns the per-row KL divergence of the captured N(mean, exp(logVar))
// from N(0, I). Panics if no variational forward pass was captured.
func (l *VAELoss) KL() *tensor.Tensor {
	mean, logVar := l.state.Encoding.Mean, l.state.Encoding.LogVariance
	if mean == nil || logVar == nil {
		panic("VAELoss: no distribution parameters captured, run a variational forward pass first")
	}
	b := l.backend
	terms := b.Sub(b.Add(b.Exp(logVar), b.Mul(mean, mean)), b.AddScalar(logVar, 1))
	return b.MulScalar(b.SumDim(terms, 1, false), 0.5)
}
