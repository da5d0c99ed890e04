// Package optim implements optimization algorithms for training the
// autoencoders.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - Factory: an optimizer recipe that is bound to parameters later,
//     so a model can be compiled with an optimizer chosen up front
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	backend.Tape().StartRecording()
//	loss := lossFunc.Forward(targets, model.Forward(input))
//	grads := autodiff.Backward(loss, backend)
//
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
package optim

import (
	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters in place.
	// The gradient map is the one returned by autodiff.Backward.
	Step(grads map[*tensor.Tensor]*tensor.Tensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Factory creates an optimizer over a parameter set.
type Factory func(params []*nn.Parameter) Optimizer

// AdamFactory returns a Factory building Adam optimizers with config.
func AdamFactory(config AdamConfig) Factory {
	return func(params []*nn.Parameter) Optimizer {
		return NewAdam(params, config)
	}
}

// SGDFactory returns a Factory building SGD optimizers with config.
func SGDFactory(config SGDConfig) Factory {
	return func(params []*nn.Parameter) Optimizer {
		return NewSGD(params, config)
	}
}

// getGradient retrieves the gradient for a parameter and records it on the
// parameter. Returns nil if the parameter was not part of the graph.
func getGradient(param *nn.Parameter, grads map[*tensor.Tensor]*tensor.Tensor) *tensor.Tensor {
	if param == nil {
		return nil
	}
	grad := grads[param.Tensor()]
	if grad != nil {
		param.SetGrad(grad)
	}
	return grad
}
