package cpu

import (
	"math"

	"github.com/born-ml/tabae/internal/tensor"
)

// ReLU computes max(0, x).
func (cpu *Backend) ReLU(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) in a form that does not overflow for
// large |x|.
func (cpu *Backend) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, Sigmoid)
}

// Tanh computes the hyperbolic tangent.
func (cpu *Backend) Tanh(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, math.Tanh)
}

// SiLU computes x * sigmoid(x).
func (cpu *Backend) SiLU(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, func(v float64) float64 { return v * Sigmoid(v) })
}

// Softplus computes log(1 + exp(x)).
func (cpu *Backend) Softplus(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, func(v float64) float64 {
		// log1p(exp(v)) overflows for large v; softplus(v) ≈ v there.
		if v > 30 {
			return v
		}
		return math.Log1p(math.Exp(v))
	})
}

// Sigmoid is the scalar logistic function shared with the autodiff ops.
func Sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}
