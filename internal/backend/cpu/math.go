package cpu

import (
	"math"

	"github.com/born-ml/tabae/internal/tensor"
)

// MulScalar multiplies every element by s.
func (cpu *Backend) MulScalar(x *tensor.Tensor, s float64) *tensor.Tensor {
	return cpu.unary(x, func(v float64) float64 { return v * s })
}

// AddScalar adds s to every element.
func (cpu *Backend) AddScalar(x *tensor.Tensor, s float64) *tensor.Tensor {
	return cpu.unary(x, func(v float64) float64 { return v + s })
}

// Exp computes e^x element-wise.
func (cpu *Backend) Exp(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, math.Exp)
}

// Abs computes |x| element-wise.
func (cpu *Backend) Abs(x *tensor.Tensor) *tensor.Tensor {
	return cpu.unary(x, math.Abs)
}
