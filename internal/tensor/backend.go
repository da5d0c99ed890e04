package tensor

// Backend defines the operations a compute implementation must provide.
//
// Binary elementwise operations broadcast NumPy-style. Backends never modify
// their inputs: the autodiff decorator relies on every recorded tensor
// staying intact until the backward pass.
//
// Implementations:
//   - cpu.Backend: pure Go loops plus gonum BLAS for matmul
//   - autodiff.Backend: decorator recording operations on a gradient tape
type Backend interface {
	// Element-wise binary operations
	Add(a, b *Tensor) *Tensor
	Sub(a, b *Tensor) *Tensor
	Mul(a, b *Tensor) *Tensor

	// Matrix operations
	MatMul(a, b *Tensor) *Tensor // [m,k] @ [k,n] -> [m,n]
	Transpose(t *Tensor) *Tensor // 2D only

	// Shape operations
	Reshape(t *Tensor, shape Shape) *Tensor
	Expand(t *Tensor, shape Shape) *Tensor // broadcast to shape

	// Scalar operations
	MulScalar(x *Tensor, s float64) *Tensor
	AddScalar(x *Tensor, s float64) *Tensor

	// Element-wise math
	Exp(x *Tensor) *Tensor
	Abs(x *Tensor) *Tensor

	// Activations
	ReLU(x *Tensor) *Tensor
	Sigmoid(x *Tensor) *Tensor
	Tanh(x *Tensor) *Tensor
	SiLU(x *Tensor) *Tensor
	Softplus(x *Tensor) *Tensor

	// Reductions
	Sum(x *Tensor) *Tensor                            // scalar
	Mean(x *Tensor) *Tensor                           // scalar
	SumDim(x *Tensor, dim int, keepDim bool) *Tensor  // sum along dim
	MeanDim(x *Tensor, dim int, keepDim bool) *Tensor // mean along dim

	// Name identifies the backend in logs and summaries.
	Name() string
}
