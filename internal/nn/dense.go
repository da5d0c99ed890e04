package nn

import (
	"fmt"

	"github.com/born-ml/tabae/internal/tensor"
)

// Dense is a Linear layer followed by a named activation, the unit every
// encoder and decoder is built from.
type Dense struct {
	name       string
	linear     *Linear
	activation Module
	actName    string
}

// NewDense creates a Dense layer. The activation name must be one
// ActivationByName accepts.
func NewDense(name string, in, out int, activation string, backend tensor.Backend, rng UniformSource) (*Dense, error) {
	act, err := ActivationByName(activation, backend)
	if err != nil {
		return nil, fmt.Errorf("dense %q: %w", name, err)
	}
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("dense %q: sizes must be positive, got %d -> %d", name, in, out)
	}
	return &Dense{
		name:       name,
		linear:     NewLinear(in, out, backend, rng),
		activation: act,
		actName:    CanonicalActivation(activation),
	}, nil
}

// Forward applies the linear transform then the activation.
func (d *Dense) Forward(input *tensor.Tensor) *tensor.Tensor {
	return d.activation.Forward(d.linear.Forward(input))
}

// Parameters returns the linear layer's parameters.
func (d *Dense) Parameters() []*Parameter {
	return d.linear.Parameters()
}

// Name returns the layer name.
func (d *Dense) Name() string {
	return d.name
}

// Activation returns the canonical activation name.
func (d *Dense) Activation() string {
	return d.actName
}

// Linear returns the underlying linear layer.
func (d *Dense) Linear() *Linear {
	return d.linear
}

// InFeatures returns the input width.
func (d *Dense) InFeatures() int {
	return d.linear.InFeatures()
}

// OutFeatures returns the output width.
func (d *Dense) OutFeatures() int {
	return d.linear.OutFeatures()
}
