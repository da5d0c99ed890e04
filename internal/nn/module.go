// Package nn implements the neural network building blocks the autoencoder
// builders compose:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable tensors with gradient tracking
//   - Linear and Dense: fully connected layers
//   - Activations: ReLU, Sigmoid, Tanh, SiLU, Softplus, Identity
//   - Sequential: container for stacking layers
//   - Loss interface and MAELoss
//
// Modules are bound to a tensor.Backend at construction. Built on an
// autodiff backend, every Forward call is recorded on that backend's tape.
package nn

import "github.com/born-ml/tabae/internal/tensor"

// Module is the base interface for all neural network components.
//
// Modules compose into larger networks:
//
//	model := nn.NewSequential(
//	    nn.NewDense(13, 256, "relu", backend, rng),
//	    nn.NewDense(256, 2, "relu", backend, rng),
//	)
type Module interface {
	// Forward computes the module output. Inputs are [batch, features];
	// shape violations panic, so boundary code validates first.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters, including those of
	// nested modules. Activations return nil.
	Parameters() []*Parameter
}

// CountParameters returns the number of scalar weights in params.
func CountParameters(params []*Parameter) int {
	n := 0
	for _, p := range params {
		n += p.Tensor().NumElements()
	}
	return n
}
