package vae

import (
	"fmt"

	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/tensor"
)

// Encoding is an encoder's output for a batch.
//
// For variational encoders Mean and LogVariance are the unclamped outputs
// of the linear heads and Z is a fresh sample from N(Mean, exp(LogVariance)).
// For vanilla encoders Mean and LogVariance are nil and Z is the
// deterministic code.
type Encoding struct {
	Mean        *tensor.Tensor
	LogVariance *tensor.Tensor
	Z           *tensor.Tensor
}

// Encoder maps [batch, input width] rows to latent codes.
//
// A vanilla encoder ends in a relu Dense layer, so its codes are
// non-negative. A variational encoder ends in two linear heads feeding a
// Sampler.
type Encoder struct {
	g          *graph
	spec       ModelSpec
	hidden     []*nn.Dense
	body       *nn.Sequential
	latent     *nn.Dense
	mean       *nn.Dense
	logVar     *nn.Dense
	sampler    *Sampler
	inputWidth int
	latentDim  int
}

func newEncoder(g *graph, spec ModelSpec) (*Encoder, error) {
	e := &Encoder{
		g:          g,
		spec:       spec,
		body:       nn.NewSequential(),
		inputWidth: spec.InputWidth,
		latentDim:  spec.LatentDim,
	}

	in := spec.InputWidth
	for i, width := range spec.LayerWidths {
		layer, err := nn.NewDense(fmt.Sprintf("encoder_dense_%d", i+1), in, width, spec.Activation, g.backend, g.rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		e.hidden = append(e.hidden, layer)
		e.body.Add(layer)
		in = width
	}

	var err error
	if !spec.Variational {
		e.latent, err = nn.NewDense("latent", in, spec.LatentDim, "relu", g.backend, g.rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return e, nil
	}

	if e.mean, err = nn.NewDense("z_mean", in, spec.LatentDim, "linear", g.backend, g.rng); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if e.logVar, err = nn.NewDense("z_log_var", in, spec.LatentDim, "linear", g.backend, g.rng); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	e.sampler = NewSampler(g.backend, g.noise)
	return e, nil
}

// Forward encodes x. Panics if x is not [batch, InputWidth()].
func (e *Encoder) Forward(x *tensor.Tensor) Encoding {
	h := e.body.Forward(x)
	if e.latent != nil {
		return Encoding{Z: e.latent.Forward(h)}
	}
	mean := e.mean.Forward(h)
	logVar := e.logVar.Forward(h)
	return Encoding{
		Mean:        mean,
		LogVariance: logVar,
		Z:           e.sampler.Sample(mean, logVar),
	}
}

// Predict validates x and encodes it.
func (e *Encoder) Predict(x *tensor.Tensor) (Encoding, error) {
	if err := checkWidth("encoder input", x, e.inputWidth); err != nil {
		return Encoding{}, err
	}
	return e.Forward(x), nil
}

// Variational reports whether the encoder outputs a distribution.
func (e *Encoder) Variational() bool {
	return e.latent == nil
}

// InputWidth returns the expected input width.
func (e *Encoder) InputWidth() int {
	return e.inputWidth
}

// LatentDim returns the width of the latent code.
func (e *Encoder) LatentDim() int {
	return e.latentDim
}

// Sampler returns the encoder's sampler, or nil for vanilla encoders.
func (e *Encoder) Sampler() *Sampler {
	return e.sampler
}

// Layers returns the Dense layers in forward order. For variational
// encoders the mean head precedes the log-variance head.
func (e *Encoder) Layers() []*nn.Dense {
	layers := append([]*nn.Dense(nil), e.hidden...)
	if e.latent != nil {
		return append(layers, e.latent)
	}
	return append(layers, e.mean, e.logVar)
}

// Parameters returns every trainable parameter of the encoder.
func (e *Encoder) Parameters() []*nn.Parameter {
	var params []*nn.Parameter
	for _, l := range e.Layers() {
		params = append(params, l.Parameters()...)
	}
	return params
}

func checkWidth(what string, x *tensor.Tensor, width int) error {
	if x == nil {
		return fmt.Errorf("%w: %s is nil", ErrShapeMismatch, what)
	}
	if shape := x.Shape(); len(shape) != 2 || shape[1] != width {
		return fmt.Errorf("%w: %s has shape %v, want [batch %d]", ErrShapeMismatch, what, shape, width)
	}
	return nil
}
