package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/tabae/internal/tensor"
)

// Sum adds all elements into a scalar.
func (cpu *Backend) Sum(x *tensor.Tensor) *tensor.Tensor {
	return tensor.Scalar(floats.Sum(x.Data()))
}

// Mean averages all elements into a scalar.
func (cpu *Backend) Mean(x *tensor.Tensor) *tensor.Tensor {
	return tensor.Scalar(floats.Sum(x.Data()) / float64(x.NumElements()))
}

// SumDim sums along dimension dim. With keepDim the reduced dimension stays
// as size 1, otherwise it is removed.
//
// Example: [4, 3] summed along dim 1 gives [4, 1] or [4].
func (cpu *Backend) SumDim(x *tensor.Tensor, dim int, keepDim bool) *tensor.Tensor {
	return reduceDim(x, dim, keepDim, 1)
}

// MeanDim averages along dimension dim.
func (cpu *Backend) MeanDim(x *tensor.Tensor, dim int, keepDim bool) *tensor.Tensor {
	shape := x.Shape()
	d := normalizeDim(dim, len(shape), "meandim")
	return reduceDim(x, d, keepDim, 1/float64(shape[d]))
}

func reduceDim(x *tensor.Tensor, dim int, keepDim bool, scale float64) *tensor.Tensor {
	shape := x.Shape()
	dim = normalizeDim(dim, len(shape), "reduce")

	// View x as [outer, size, inner] and reduce the middle axis.
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	size := shape[dim]

	outShape := make(tensor.Shape, 0, len(shape))
	for i, s := range shape {
		switch {
		case i != dim:
			outShape = append(outShape, s)
		case keepDim:
			outShape = append(outShape, 1)
		}
	}

	result := tensor.Zeros(outShape)
	src, dst := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var acc float64
			for s := 0; s < size; s++ {
				acc += src[(o*size+s)*inner+in]
			}
			dst[o*inner+in] = acc * scale
		}
	}
	return result
}

func normalizeDim(dim, rank int, op string) int {
	if dim < 0 {
		dim += rank
	}
	if dim < 0 || dim >= rank {
		panic(fmt.Sprintf("%s: dimension %d out of range for tensor of rank %d", op, dim, rank))
	}
	return dim
}
