package nn

import (
	"fmt"

	"github.com/born-ml/tabae/internal/tensor"
)

// Loss computes a scalar training objective.
//
// Forward returns a single-element tensor so it can seed backpropagation.
type Loss interface {
	Forward(target, prediction *tensor.Tensor) *tensor.Tensor
}

// MAELoss is the mean absolute error averaged over every element:
//
//	loss = mean(|prediction - target|)
//
// For [B, W] inputs this equals the batch mean of the per-row MAE.
type MAELoss struct {
	backend tensor.Backend
}

// NewMAELoss creates an MAE loss bound to backend.
func NewMAELoss(backend tensor.Backend) *MAELoss {
	return &MAELoss{backend: backend}
}

// Forward computes the mean absolute error. Panics on shape mismatch.
func (l *MAELoss) Forward(target, prediction *tensor.Tensor) *tensor.Tensor {
	if !target.Shape().Equal(prediction.Shape()) {
		panic(fmt.Sprintf("MAELoss: shape mismatch, target %v vs prediction %v", target.Shape(), prediction.Shape()))
	}
	b := l.backend
	return b.Mean(b.Abs(b.Sub(prediction, target)))
}
