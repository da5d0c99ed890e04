package vae

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/born-ml/tabae/internal/autodiff"
	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/optim"
	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/train"
)

// ForwardState holds what the most recent pipeline forward pass saw. The
// VAE loss reads it by reference instead of closing over build-time values.
type ForwardState struct {
	Input    *tensor.Tensor
	Encoding Encoding
}

// Autoencoder is the composed encoder → decoder pipeline.
//
// The encoder, the decoder and the pipeline share parameters: training the
// autoencoder is visible through the standalone Encoder and Decoder handles.
// An Autoencoder is not safe for concurrent use.
type Autoencoder struct {
	id      uuid.UUID
	g       *graph
	spec    ModelSpec
	encoder *Encoder
	decoder *Decoder
	state   *ForwardState

	optimizer optim.Optimizer
	loss      nn.Loss
}

// Compose joins an encoder and a decoder from the same build into an
// uncompiled Autoencoder. The decoder must accept the encoder's latent codes
// and reconstruct its input width.
func Compose(encoder *Encoder, decoder *Decoder) (*Autoencoder, error) {
	if encoder == nil || decoder == nil {
		return nil, fmt.Errorf("%w: compose needs both an encoder and a decoder", ErrInvalidConfig)
	}
	if encoder.LatentDim() != decoder.LatentDim() {
		return nil, fmt.Errorf("%w: encoder latent dim %d, decoder expects %d",
			ErrShapeMismatch, encoder.LatentDim(), decoder.LatentDim())
	}
	if encoder.InputWidth() != decoder.OutputWidth() {
		return nil, fmt.Errorf("%w: encoder input width %d, decoder reconstructs %d",
			ErrShapeMismatch, encoder.InputWidth(), decoder.OutputWidth())
	}
	if encoder.g != decoder.g {
		return nil, fmt.Errorf("%w: encoder and decoder come from different builds", ErrInvalidConfig)
	}
	return &Autoencoder{
		id:      uuid.New(),
		g:       encoder.g,
		spec:    encoder.spec,
		encoder: encoder,
		decoder: decoder,
		state:   &ForwardState{},
	}, nil
}

// ID identifies the autoencoder instance.
func (a *Autoencoder) ID() uuid.UUID { return a.id }

// Spec returns a copy of the architecture the autoencoder was built from.
func (a *Autoencoder) Spec() ModelSpec { return a.spec.normalized() }

// Encoder returns the shared encoder handle.
func (a *Autoencoder) Encoder() *Encoder { return a.encoder }

// Decoder returns the shared decoder handle.
func (a *Autoencoder) Decoder() *Decoder { return a.decoder }

// State returns the forward state a VAE loss should be bound to.
func (a *Autoencoder) State() *ForwardState { return a.state }

// Backend returns the recording backend the autoencoder computes on. Losses
// passed to Compile must compute on it.
func (a *Autoencoder) Backend() tensor.Backend { return a.g.backend }

// Variational reports whether the encoder outputs a distribution.
func (a *Autoencoder) Variational() bool { return a.encoder.Variational() }

// InputWidth returns the width of the rows the autoencoder reconstructs.
func (a *Autoencoder) InputWidth() int { return a.encoder.InputWidth() }

// Forward runs decoder(encoder(x)), decoding the sampled z for variational
// models, and records the pass in State(). Panics on a width mismatch.
func (a *Autoencoder) Forward(x *tensor.Tensor) *tensor.Tensor {
	enc := a.encoder.Forward(x)
	a.state.Input = x
	a.state.Encoding = enc
	return a.decoder.Forward(enc.Z)
}

// Predict validates x and reconstructs it.
func (a *Autoencoder) Predict(x *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkWidth("autoencoder input", x, a.InputWidth()); err != nil {
		return nil, err
	}
	return a.Forward(x), nil
}

// ReconstructMean reconstructs x from the latent mean instead of a sample,
// which makes variational reconstructions deterministic. For vanilla models
// it is Predict.
func (a *Autoencoder) ReconstructMean(x *tensor.Tensor) (*tensor.Tensor, error) {
	enc, err := a.encoder.Predict(x)
	if err != nil {
		return nil, err
	}
	if !a.Variational() {
		return a.decoder.Forward(enc.Z), nil
	}
	return a.decoder.Forward(enc.Mean), nil
}

// Compile binds an optimizer over the autoencoder's parameters and a loss.
// A nil factory selects DefaultOptimizer. Compiling again resets the
// optimizer state.
func (a *Autoencoder) Compile(optimizer optim.Factory, loss nn.Loss) error {
	if loss == nil {
		return fmt.Errorf("%w: compile needs a loss", ErrInvalidConfig)
	}
	if optimizer == nil {
		optimizer = DefaultOptimizer()
	}
	a.optimizer = optimizer(a.Parameters())
	a.loss = loss
	return nil
}

// Compiled reports whether Compile has been called.
func (a *Autoencoder) Compiled() bool {
	return a.optimizer != nil && a.loss != nil
}

// Loss returns the compiled loss, or nil.
func (a *Autoencoder) Loss() nn.Loss { return a.loss }

// Optimizer returns the compiled optimizer, or nil.
func (a *Autoencoder) Optimizer() optim.Optimizer { return a.optimizer }

// TrainStep runs one forward/backward/update pass on a batch and returns
// the batch loss. Panics if the autoencoder is not compiled.
func (a *Autoencoder) TrainStep(x, y *tensor.Tensor) float64 {
	a.mustBeCompiled()
	tape := a.g.backend.Tape()
	tape.Clear()
	tape.StartRecording()

	loss := a.loss.Forward(y, a.Forward(x))
	value := loss.Item()
	grads := autodiff.Backward(loss, a.g.backend)

	tape.StopRecording()
	tape.Clear()

	a.optimizer.Step(grads)
	a.optimizer.ZeroGrad()
	return value
}

// EvalStep returns the loss on a batch without updating parameters.
func (a *Autoencoder) EvalStep(x, y *tensor.Tensor) float64 {
	a.mustBeCompiled()
	return a.loss.Forward(y, a.Forward(x)).Item()
}

func (a *Autoencoder) mustBeCompiled() {
	if !a.Compiled() {
		panic(ErrNotCompiled)
	}
}

// Fit trains the autoencoder on (x, y). Targets only matter to losses that
// read them; the VAE loss reconstructs the captured input. Config fields
// left nil default to the build's random source and logger.
func (a *Autoencoder) Fit(x, y *tensor.Tensor, cfg train.Config) (*train.History, error) {
	if !a.Compiled() {
		return nil, ErrNotCompiled
	}
	if err := a.checkData("training", x, y); err != nil {
		return nil, err
	}
	if cfg.Validation != nil {
		if err := a.checkData("validation", cfg.Validation.X, cfg.Validation.Y); err != nil {
			return nil, err
		}
	}
	if cfg.Rand == nil {
		cfg.Rand = a.g.rng
	}
	if cfg.Logger == nil {
		cfg.Logger = a.g.logger
	}
	cfg.Logger = cfg.Logger.With(slog.String("model", a.id.String()))
	return train.Fit(a, x, y, cfg)
}

// Evaluate returns the compiled loss over (x, y) in batches of batchSize.
func (a *Autoencoder) Evaluate(x, y *tensor.Tensor, batchSize int) (float64, error) {
	if !a.Compiled() {
		return 0, ErrNotCompiled
	}
	if err := a.checkData("evaluation", x, y); err != nil {
		return 0, err
	}
	return train.Evaluate(a, x, y, batchSize), nil
}

func (a *Autoencoder) checkData(what string, x, y *tensor.Tensor) error {
	if err := checkWidth(what+" inputs", x, a.InputWidth()); err != nil {
		return err
	}
	if err := checkWidth(what+" targets", y, a.decoder.OutputWidth()); err != nil {
		return err
	}
	if x.Rows() != y.Rows() {
		return fmt.Errorf("%w: %s inputs have %d rows, targets %d", ErrShapeMismatch, what, x.Rows(), y.Rows())
	}
	return nil
}

// Parameters returns the encoder's then the decoder's parameters.
func (a *Autoencoder) Parameters() []*nn.Parameter {
	return append(a.encoder.Parameters(), a.decoder.Parameters()...)
}

// CountParameters returns the number of trainable scalars.
func (a *Autoencoder) CountParameters() int {
	return nn.CountParameters(a.Parameters())
}
