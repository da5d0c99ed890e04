package nn

import (
	"math"

	"github.com/born-ml/tabae/internal/tensor"
)

// UniformSource produces uniform variates in [0, 1). *rand.Rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// Xavier (Glorot) uniform initialization.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps activation variance roughly constant across layers.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng UniformSource) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}
	return t
}

// Zeros creates a zero-filled tensor, the bias initializer.
func Zeros(shape tensor.Shape) *tensor.Tensor {
	return tensor.Zeros(shape)
}
