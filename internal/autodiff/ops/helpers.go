package ops

import "github.com/born-ml/tabae/internal/tensor"

// reduceBroadcast reduces a gradient to the shape of an input that was
// broadcast in the forward pass.
//
//	Forward:  a[1,4] + b[3,4] -> c[3,4]
//	Backward: grad_c[3,4] -> grad_a[1,4] (sum along dim 0)
func reduceBroadcast(grad *tensor.Tensor, target tensor.Shape, backend tensor.Backend) *tensor.Tensor {
	if grad.Shape().Equal(target) {
		return grad
	}
	if len(target) == 0 {
		return backend.Sum(grad)
	}

	result := grad
	// Sum away leading dimensions the target does not have.
	for len(result.Shape()) > len(target) {
		result = backend.SumDim(result, 0, false)
	}
	// Sum dimensions where the target is 1.
	for i, dim := range target {
		if dim == 1 && result.Shape()[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}

	if !result.Shape().Equal(target) {
		result = backend.Reshape(result, target)
	}
	return result
}

// keepDimShape returns shape with dim set to 1.
func keepDimShape(shape tensor.Shape, dim int) tensor.Shape {
	out := shape.Clone()
	out[dim] = 1
	return out
}

// normalizeDim resolves a negative dimension index.
func normalizeDim(dim, rank int) int {
	if dim < 0 {
		return dim + rank
	}
	return dim
}

// chainLocal returns outputGrad * f(src), where f is the local derivative
// evaluated element-wise on a tensor saved from the forward pass.
func chainLocal(outputGrad, src *tensor.Tensor, backend tensor.Backend, f func(v float64) float64) *tensor.Tensor {
	local := tensor.Zeros(src.Shape())
	dst := local.Data()
	for i, v := range src.Data() {
		dst[i] = f(v)
	}
	return backend.Mul(outputGrad, local)
}
