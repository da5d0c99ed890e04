package ops

import (
	"math"

	"github.com/born-ml/tabae/internal/tensor"
)

// ReLUOp represents a ReLU activation: output = max(0, x).
//
// Backward: d(ReLU(x))/dx = 1 if x > 0, else 0.
type ReLUOp struct{ unaryOp }

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.Tensor) *ReLUOp {
	return &ReLUOp{unaryOp{input: input, output: output}}
}

// Backward masks the gradient where the input was not positive.
func (op *ReLUOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{chainLocal(outputGrad, op.input, backend, func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})}
}

// SigmoidOp represents σ(x) = 1 / (1 + exp(-x)).
//
// dσ/dx = σ(x) * (1 - σ(x)), computed from the saved output.
type SigmoidOp struct{ unaryOp }

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.Tensor) *SigmoidOp {
	return &SigmoidOp{unaryOp{input: input, output: output}}
}

// Backward computes grad * σ(x)(1 - σ(x)).
func (op *SigmoidOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{chainLocal(outputGrad, op.output, backend, func(s float64) float64 {
		return s * (1 - s)
	})}
}

// TanhOp represents tanh(x). d tanh/dx = 1 - tanh²(x).
type TanhOp struct{ unaryOp }

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.Tensor) *TanhOp {
	return &TanhOp{unaryOp{input: input, output: output}}
}

// Backward computes grad * (1 - y²).
func (op *TanhOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{chainLocal(outputGrad, op.output, backend, func(y float64) float64 {
		return 1 - y*y
	})}
}

// SiLUOp represents x * σ(x).
//
// d/dx = σ(x) + x * σ(x) * (1 - σ(x)).
type SiLUOp struct{ unaryOp }

// NewSiLUOp creates a new SiLUOp.
func NewSiLUOp(input, output *tensor.Tensor) *SiLUOp {
	return &SiLUOp{unaryOp{input: input, output: output}}
}

// Backward computes the SiLU input gradient.
func (op *SiLUOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{chainLocal(outputGrad, op.input, backend, func(x float64) float64 {
		s := sigmoid(x)
		return s + x*s*(1-s)
	})}
}

// SoftplusOp represents log(1 + exp(x)); its derivative is σ(x).
type SoftplusOp struct{ unaryOp }

// NewSoftplusOp creates a new SoftplusOp.
func NewSoftplusOp(input, output *tensor.Tensor) *SoftplusOp {
	return &SoftplusOp{unaryOp{input: input, output: output}}
}

// Backward computes grad * σ(x).
func (op *SoftplusOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{chainLocal(outputGrad, op.input, backend, sigmoid)}
}

func sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}
