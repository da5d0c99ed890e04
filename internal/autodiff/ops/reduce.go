package ops

import "github.com/born-ml/tabae/internal/tensor"

// SumOp represents a full reduction to a scalar: output = Σ x.
//
// Backward: every input element receives the scalar gradient.
type SumOp struct{ unaryOp }

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.Tensor) *SumOp {
	return &SumOp{unaryOp{input: input, output: output}}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Expand(outputGrad, op.input.Shape())}
}

// MeanOp represents output = mean(x) over all elements.
type MeanOp struct{ unaryOp }

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.Tensor) *MeanOp {
	return &MeanOp{unaryOp{input: input, output: output}}
}

// Backward broadcasts grad / N to the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	n := float64(op.input.NumElements())
	return []*tensor.Tensor{backend.Expand(backend.MulScalar(outputGrad, 1/n), op.input.Shape())}
}

// SumDimOp represents a sum along one dimension.
//
//	Forward:  x[B, D] --sum(dim=1)--> y[B] or y[B, 1]
//	Backward: grad_y expanded back to [B, D]
type SumDimOp struct {
	unaryOp
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(input, output *tensor.Tensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		unaryOp: unaryOp{input: input, output: output},
		dim:     normalizeDim(dim, len(input.Shape())),
		keepDim: keepDim,
	}
}

// Backward broadcasts the gradient over the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{expandReduced(outputGrad, op.input.Shape(), op.dim, op.keepDim, 1, backend)}
}

// MeanDimOp represents a mean along one dimension.
type MeanDimOp struct {
	unaryOp
	dim     int
	keepDim bool
}

// NewMeanDimOp creates a new MeanDimOp.
func NewMeanDimOp(input, output *tensor.Tensor, dim int, keepDim bool) *MeanDimOp {
	return &MeanDimOp{
		unaryOp: unaryOp{input: input, output: output},
		dim:     normalizeDim(dim, len(input.Shape())),
		keepDim: keepDim,
	}
}

// Backward broadcasts grad / size(dim) over the reduced dimension.
func (op *MeanDimOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	size := float64(op.input.Shape()[op.dim])
	return []*tensor.Tensor{expandReduced(outputGrad, op.input.Shape(), op.dim, op.keepDim, 1/size, backend)}
}

func expandReduced(grad *tensor.Tensor, inputShape tensor.Shape, dim int, keepDim bool, scale float64, backend tensor.Backend) *tensor.Tensor {
	if !keepDim {
		grad = backend.Reshape(grad, keepDimShape(inputShape, dim))
	}
	if scale != 1 {
		grad = backend.MulScalar(grad, scale)
	}
	return backend.Expand(grad, inputShape)
}
