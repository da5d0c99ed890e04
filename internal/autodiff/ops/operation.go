// Package ops defines the differentiable operations recorded on the gradient
// tape.
//
// Each operation keeps references to its inputs and output from the forward
// pass and computes input gradients in Backward:
//   - AddOp, SubOp, MulOp: element-wise with broadcast reduction
//   - MatMulOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - TransposeOp, ReshapeOp, ExpandOp: shape bookkeeping
//   - MulScalarOp, AddScalarOp, ExpOp, AbsOp: element-wise math
//   - ReLUOp, SigmoidOp, TanhOp, SiLUOp, SoftplusOp: activations
//   - SumOp, MeanOp, SumDimOp, MeanDimOp: reductions
package ops

import "github.com/born-ml/tabae/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// The returned slice is parallel to Inputs(); a nil entry means no
	// gradient flows to that input.
	Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Tensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Tensor
}

// unaryOp holds the common fields of single-input operations.
type unaryOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// Inputs returns the input tensor [x].
func (op *unaryOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the output tensor.
func (op *unaryOp) Output() *tensor.Tensor {
	return op.output
}

// binaryOp holds the common fields of two-input operations.
type binaryOp struct {
	inputs []*tensor.Tensor // [a, b]
	output *tensor.Tensor
}

// Inputs returns the input tensors [a, b].
func (op *binaryOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *binaryOp) Output() *tensor.Tensor {
	return op.output
}
