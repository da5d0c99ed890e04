package autodiff

import (
	"fmt"

	"github.com/born-ml/tabae/internal/tensor"
)

// BackwardCapable is implemented by backends that own a gradient tape.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable).
func (b *Backend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of t using the backend's tape, seeding the
// pass with ones of t's shape (dL/dL = 1 for a scalar loss).
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y := backend.Mul(x, x) // y = x²
//	grads := autodiff.Backward(backend.Sum(y), backend)
//	dx := grads[x] // 2x
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.Tensor]*tensor.Tensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic(fmt.Sprintf("backward: no operations recorded for %v (did you forget to call Tape().StartRecording()?)", t))
	}
	return tape.Backward(t, tensor.Ones(t.Shape()), backend)
}
