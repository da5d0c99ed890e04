package cpu

import (
	"fmt"

	"github.com/born-ml/tabae/internal/tensor"
)

// Reshape returns a copy of t with a new shape of the same size.
func (cpu *Backend) Reshape(t *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	if shape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v into %v", t.Shape(), shape))
	}
	return t.Clone().WithShape(shape)
}

// Expand broadcasts t to shape.
func (cpu *Backend) Expand(t *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	out, err := tensor.BroadcastShapes(t.Shape(), shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot broadcast %v to %v", t.Shape(), shape))
	}
	return cpu.Add(tensor.Zeros(shape), t)
}
