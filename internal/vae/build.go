// Package vae builds vanilla and variational autoencoders for tabular data.
//
// Every builder returns three handles over one set of parameters: the
// composed Autoencoder, its Encoder and its Decoder. Builders validate their
// configuration before allocating anything and always return a compiled
// autoencoder: vanilla variants with mean absolute error, variational
// variants with the beta-weighted VAELoss, both with Adam(0.001) unless
// WithOptimizer says otherwise.
//
//	ae, enc, dec, err := vae.BuildSingleLayerVariationalAutoencoder(2, 13, 0.001, vae.WithSeed(1))
//	if err != nil {
//	    return err
//	}
//	history, err := ae.Fit(x, x, train.Config{Epochs: 50, BatchSize: 8, Shuffle: true})
package vae

import (
	"context"
	"log/slog"

	"github.com/born-ml/tabae/internal/nn"
)

// New builds, composes and compiles the autoencoder described by spec.
func New(spec ModelSpec, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, nil, err
	}
	spec = spec.normalized()
	o := newOptions(opts)
	g := newGraph(o)

	encoder, err := newEncoder(g, spec)
	if err != nil {
		return nil, nil, nil, err
	}
	decoder, err := newDecoder(g, spec)
	if err != nil {
		return nil, nil, nil, err
	}
	ae, err := Compose(encoder, decoder)
	if err != nil {
		return nil, nil, nil, err
	}

	var loss nn.Loss = nn.NewMAELoss(g.backend)
	if spec.Variational {
		loss = NewVAELoss(g.backend, spec.Beta, ae.State())
	}
	if err := ae.Compile(o.optimizer, loss); err != nil {
		return nil, nil, nil, err
	}

	o.logger.Debug("built autoencoder",
		slog.String("model", ae.ID().String()),
		slog.Bool("variational", spec.Variational),
		slog.Int("latent_dim", spec.LatentDim),
		slog.Int("input_width", spec.InputWidth),
		slog.Any("layers", spec.LayerWidths),
		slog.Int("params", ae.CountParameters()))
	if o.logger.Enabled(context.Background(), slog.LevelDebug) {
		o.logger.Debug("model summary\n" + ae.Summary())
	}
	return ae, encoder, decoder, nil
}

// Build builds one of the preset variants.
func Build(v Variant, latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	spec, err := SpecFor(v, latentDim, inputWidth, beta)
	if err != nil {
		return nil, nil, nil, err
	}
	return New(spec, opts...)
}

// BuildSimpleAutoencoder builds input → Dense(latent, relu) →
// Dense(input, sigmoid).
func BuildSimpleAutoencoder(latentDim, inputWidth int, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return Build(Simple, latentDim, inputWidth, 0, opts...)
}

// BuildSingleLayerAutoencoder adds one 256-wide relu layer on each side of
// the latent code.
func BuildSingleLayerAutoencoder(latentDim, inputWidth int, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return Build(SingleLayer, latentDim, inputWidth, 0, opts...)
}

// BuildMultiLayerAutoencoder uses relu layers 13 → 9 → 6 → 2 in the encoder,
// mirrored in the decoder.
func BuildMultiLayerAutoencoder(latentDim, inputWidth int, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return Build(MultiLayer, latentDim, inputWidth, 0, opts...)
}

// BuildSimpleVariationalAutoencoder puts the mean and log-variance heads
// directly on the input and decodes with a single sigmoid layer.
func BuildSimpleVariationalAutoencoder(latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return Build(SimpleVariational, latentDim, inputWidth, beta, opts...)
}

// BuildSingleLayerVariationalAutoencoder uses one 1024-wide relu layer on
// each side of the latent distribution.
func BuildSingleLayerVariationalAutoencoder(latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return Build(SingleLayerVariational, latentDim, inputWidth, beta, opts...)
}

// BuildMultiLayerVariationalAutoencoder uses relu layers 128 → 64 → 32 in
// the encoder, mirrored in the decoder.
func BuildMultiLayerVariationalAutoencoder(latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return Build(MultiLayerVariational, latentDim, inputWidth, beta, opts...)
}
