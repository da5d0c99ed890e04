package ops

import "github.com/born-ml/tabae/internal/tensor"

// MatMulOp represents a matrix multiplication operation: output = a @ b.
//
// Backward pass:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
type MatMulOp struct{ binaryOp }

// NewMatMulOp creates a new MatMulOp.
func NewMatMulOp(a, b, output *tensor.Tensor) *MatMulOp {
	return &MatMulOp{binaryOp{inputs: []*tensor.Tensor{a, b}, output: output}}
}

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := backend.MatMul(outputGrad, backend.Transpose(b))
	gradB := backend.MatMul(backend.Transpose(a), outputGrad)
	return []*tensor.Tensor{gradA, gradB}
}

// TransposeOp represents a 2D transpose.
//
// It must be recorded even though it is conceptually a view: the CPU
// backend materialises a new tensor, and without this op the gradient of a
// transposed weight would never reach the weight parameter itself.
type TransposeOp struct{ unaryOp }

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.Tensor) *TransposeOp {
	return &TransposeOp{unaryOp{input: input, output: output}}
}

// Backward transposes the gradient back.
func (op *TransposeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Transpose(outputGrad)}
}

// ReshapeOp represents a reshape. The gradient is reshaped back to the
// input shape.
type ReshapeOp struct{ unaryOp }

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{unaryOp{input: input, output: output}}
}

// Backward reshapes the gradient to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Reshape(outputGrad, op.input.Shape())}
}

// ExpandOp represents a broadcast to a larger shape.
type ExpandOp struct{ unaryOp }

// NewExpandOp creates a new ExpandOp.
func NewExpandOp(input, output *tensor.Tensor) *ExpandOp {
	return &ExpandOp{unaryOp{input: input, output: output}}
}

// Backward sums the gradient over the broadcast dimensions.
func (op *ExpandOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{reduceBroadcast(outputGrad, op.input.Shape(), backend)}
}
