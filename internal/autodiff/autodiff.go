// Package autodiff implements reverse-mode automatic differentiation using
// the decorator pattern.
//
// Backend wraps any tensor.Backend and records every operation on a
// GradientTape while recording is on. Each recorded ops.Operation knows how
// to turn an output gradient into input gradients; Backward walks the tape
// in reverse applying the chain rule.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := model.Forward(x) ...
//	grads := autodiff.Backward(loss, backend)
//	dW := grads[weight.Tensor()]
package autodiff

import (
	"github.com/born-ml/tabae/internal/autodiff/ops"
	"github.com/born-ml/tabae/internal/tensor"
)

// Backend wraps a Backend and adds automatic differentiation.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates a new autodiff Backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return &Backend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control: starting or stopping
// recording and clearing it between iterations.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Add(a, c)
	b.tape.Record(ops.NewAddOp(a, c, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sub(a, c)
	b.tape.Record(ops.NewSubOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Mul(a, c)
	b.tape.Record(ops.NewMulOp(a, c, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.MatMul(a, c)
	b.tape.Record(ops.NewMatMulOp(a, c, result))
	return result
}

// Transpose transposes a matrix and records the operation.
func (b *Backend[B]) Transpose(t *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Transpose(t)
	b.tape.Record(ops.NewTransposeOp(t, result))
	return result
}

// Reshape reshapes a tensor and records the operation.
//
// Recording matters for parameters: a bias [n] reshaped to [1, n] for
// broadcasting only receives its gradient through ReshapeOp.
func (b *Backend[B]) Reshape(t *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	result := b.inner.Reshape(t, shape)
	b.tape.Record(ops.NewReshapeOp(t, result))
	return result
}

// Expand broadcasts a tensor and records the operation.
func (b *Backend[B]) Expand(t *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	result := b.inner.Expand(t, shape)
	b.tape.Record(ops.NewExpandOp(t, result))
	return result
}

// MulScalar multiplies by a constant and records the operation.
func (b *Backend[B]) MulScalar(x *tensor.Tensor, s float64) *tensor.Tensor {
	result := b.inner.MulScalar(x, s)
	b.tape.Record(ops.NewMulScalarOp(x, result, s))
	return result
}

// AddScalar adds a constant and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.Tensor, s float64) *tensor.Tensor {
	result := b.inner.AddScalar(x, s)
	b.tape.Record(ops.NewAddScalarOp(x, result))
	return result
}

// Exp computes e^x and records the operation.
func (b *Backend[B]) Exp(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Exp(x)
	b.tape.Record(ops.NewExpOp(x, result))
	return result
}

// Abs computes |x| and records the operation.
func (b *Backend[B]) Abs(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Abs(x)
	b.tape.Record(ops.NewAbsOp(x, result))
	return result
}

// ReLU applies max(0, x) and records the operation.
func (b *Backend[B]) ReLU(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.ReLU(x)
	b.tape.Record(ops.NewReLUOp(x, result))
	return result
}

// Sigmoid applies the logistic function and records the operation.
func (b *Backend[B]) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sigmoid(x)
	b.tape.Record(ops.NewSigmoidOp(x, result))
	return result
}

// Tanh applies tanh and records the operation.
func (b *Backend[B]) Tanh(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Tanh(x)
	b.tape.Record(ops.NewTanhOp(x, result))
	return result
}

// SiLU applies x*σ(x) and records the operation.
func (b *Backend[B]) SiLU(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.SiLU(x)
	b.tape.Record(ops.NewSiLUOp(x, result))
	return result
}

// Softplus applies log(1+e^x) and records the operation.
func (b *Backend[B]) Softplus(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Softplus(x)
	b.tape.Record(ops.NewSoftplusOp(x, result))
	return result
}

// Sum reduces to a scalar and records the operation.
func (b *Backend[B]) Sum(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// Mean averages to a scalar and records the operation.
func (b *Backend[B]) Mean(x *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Mean(x)
	b.tape.Record(ops.NewMeanOp(x, result))
	return result
}

// SumDim sums along a dimension and records the operation.
func (b *Backend[B]) SumDim(x *tensor.Tensor, dim int, keepDim bool) *tensor.Tensor {
	result := b.inner.SumDim(x, dim, keepDim)
	b.tape.Record(ops.NewSumDimOp(x, result, dim, keepDim))
	return result
}

// MeanDim averages along a dimension and records the operation.
func (b *Backend[B]) MeanDim(x *tensor.Tensor, dim int, keepDim bool) *tensor.Tensor {
	result := b.inner.MeanDim(x, dim, keepDim)
	b.tape.Record(ops.NewMeanDimOp(x, result, dim, keepDim))
	return result
}
