package tensor

import "fmt"

// NormalSource produces standard normal variates. *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// Zeros creates a tensor filled with zeros.
// Panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Scalar creates a 0-D tensor.
func Scalar(value float64) *Tensor {
	return &Tensor{shape: Shape{}, data: []float64{value}}
}

// Randn creates a tensor of independent N(0, 1) draws from src.
func Randn(shape Shape, src NormalSource) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = src.NormFloat64()
	}
	return t
}
