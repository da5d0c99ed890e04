package vae

import (
	"fmt"

	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/tensor"
)

// Decoder maps [batch, latent dim] codes back to [batch, input width]
// reconstructions in (0, 1).
type Decoder struct {
	g           *graph
	layers      []*nn.Dense
	body        *nn.Sequential
	latentDim   int
	outputWidth int
}

func newDecoder(g *graph, spec ModelSpec) (*Decoder, error) {
	d := &Decoder{
		g:           g,
		body:        nn.NewSequential(),
		latentDim:   spec.LatentDim,
		outputWidth: spec.InputWidth,
	}

	in := spec.LatentDim
	for i, width := range spec.DecoderWidths {
		if err := d.add(fmt.Sprintf("decoder_dense_%d", i+1), in, width, spec.Activation); err != nil {
			return nil, err
		}
		in = width
	}
	if err := d.add("reconstruction", in, spec.InputWidth, "sigmoid"); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Decoder) add(name string, in, out int, activation string) error {
	layer, err := nn.NewDense(name, in, out, activation, d.g.backend, d.g.rng)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	d.layers = append(d.layers, layer)
	d.body.Add(layer)
	return nil
}

// Forward decodes z. Panics if z is not [batch, LatentDim()].
func (d *Decoder) Forward(z *tensor.Tensor) *tensor.Tensor {
	return d.body.Forward(z)
}

// Predict validates z and decodes it.
func (d *Decoder) Predict(z *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkWidth("decoder input", z, d.latentDim); err != nil {
		return nil, err
	}
	return d.Forward(z), nil
}

// LatentDim returns the expected input width.
func (d *Decoder) LatentDim() int {
	return d.latentDim
}

// OutputWidth returns the reconstruction width.
func (d *Decoder) OutputWidth() int {
	return d.outputWidth
}

// Layers returns the Dense layers in forward order.
func (d *Decoder) Layers() []*nn.Dense {
	return append([]*nn.Dense(nil), d.layers...)
}

// Parameters returns every trainable parameter of the decoder.
func (d *Decoder) Parameters() []*nn.Parameter {
	return d.body.Parameters()
}
