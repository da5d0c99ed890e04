package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tabae/internal/tensor"
)

// MatMul computes a @ b for 2D tensors using gonum's BLAS-backed Dense.
//
// Shapes: [m, k] @ [k, n] -> [m, n].
func (cpu *Backend) MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v and %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", as, bs))
	}

	result := tensor.Zeros(tensor.Shape{as[0], bs[1]})

	// mat.NewDense wraps the slices without copying.
	am := mat.NewDense(as[0], as[1], a.Data())
	bm := mat.NewDense(bs[0], bs[1], b.Data())
	out := mat.NewDense(as[0], bs[1], result.Data())
	out.Mul(am, bm)

	return result
}

// Transpose swaps the two axes of a matrix.
func (cpu *Backend) Transpose(t *tensor.Tensor) *tensor.Tensor {
	s := t.Shape()
	if len(s) != 2 {
		panic(fmt.Sprintf("transpose: expected 2D tensor, got %v", s))
	}

	result := tensor.Zeros(tensor.Shape{s[1], s[0]})
	src := mat.NewDense(s[0], s[1], t.Data())
	dst := mat.NewDense(s[1], s[0], result.Data())
	dst.Copy(src.T())

	return result
}
