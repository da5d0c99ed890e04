package ops

import "github.com/born-ml/tabae/internal/tensor"

// ExpOp represents the exponential operation: y = exp(x).
//
// Since d(exp(x))/dx = exp(x) = y, the saved output is reused:
// grad_input = grad_output * output.
type ExpOp struct{ unaryOp }

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output *tensor.Tensor) *ExpOp {
	return &ExpOp{unaryOp{input: input, output: output}}
}

// Backward computes input gradient for exp.
func (op *ExpOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Mul(outputGrad, op.output)}
}

// AbsOp represents y = |x|.
//
// The subgradient at 0 is taken as 0.
type AbsOp struct{ unaryOp }

// NewAbsOp creates a new AbsOp.
func NewAbsOp(input, output *tensor.Tensor) *AbsOp {
	return &AbsOp{unaryOp{input: input, output: output}}
}

// Backward computes grad * sign(x).
func (op *AbsOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{chainLocal(outputGrad, op.input, backend, sign)}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
