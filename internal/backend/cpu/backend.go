// Package cpu implements the CPU backend: pure Go elementwise kernels and
// gonum BLAS for matrix products.
package cpu

import (
	"fmt"

	"github.com/born-ml/tabae/internal/parallel"
	"github.com/born-ml/tabae/internal/tensor"
)

// Backend implements tensor.Backend on the CPU.
type Backend struct {
	par parallel.Config
}

// New creates a CPU backend using the default parallel configuration.
func New() *Backend {
	return &Backend{par: parallel.DefaultConfig()}
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *Backend {
	return &Backend{par: cfg}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with broadcasting.
func (cpu *Backend) Add(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *Backend) Sub(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *Backend) Mul(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

func (cpu *Backend) binary(name string, a, b *tensor.Tensor, f func(x, y float64) float64) *tensor.Tensor {
	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	result := tensor.Zeros(outShape)
	dst, as, bs := result.Data(), a.Data(), b.Data()

	// Fast path: identical shapes
	if a.Shape().Equal(b.Shape()) {
		parallel.For(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = f(as[i], bs[i])
			}
		}, cpu.par)
		return result
	}

	// Slow path: walk the output index and map it onto each input
	aStrides := tensor.BroadcastStrides(a.Shape(), outShape)
	bStrides := tensor.BroadcastStrides(b.Shape(), outShape)
	outStrides := outShape.Strides()
	parallel.For(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			ai, bi := 0, 0
			rem := i
			for d, s := range outStrides {
				idx := rem / s
				rem %= s
				ai += idx * aStrides[d]
				bi += idx * bStrides[d]
			}
			dst[i] = f(as[ai], bs[bi])
		}
	}, cpu.par)
	return result
}

// unary applies f element-wise into a new tensor.
func (cpu *Backend) unary(x *tensor.Tensor, f func(v float64) float64) *tensor.Tensor {
	result := tensor.Zeros(x.Shape())
	dst, src := result.Data(), x.Data()
	parallel.For(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(src[i])
		}
	}, cpu.par)
	return result
}
