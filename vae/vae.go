// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vae builds and trains vanilla and variational autoencoders for
// low-dimensional tabular data.
//
// Each builder returns a compiled Autoencoder together with its Encoder and
// Decoder. The three share parameters, so training the autoencoder updates
// what the standalone encoder and decoder compute.
//
//	ae, enc, dec, err := vae.BuildSingleLayerVariationalAutoencoder(2, 13, 0.001, vae.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	history, err := ae.Fit(x, x, vae.TrainConfig{Epochs: 50, BatchSize: 8, Shuffle: true})
//	codes, err := enc.Predict(x)
//	samples, err := dec.Predict(z)
package vae

import (
	"context"

	"github.com/born-ml/tabae/internal/train"
	"github.com/born-ml/tabae/internal/vae"
	"github.com/born-ml/tabae/tensor"
)

// Errors returned by builders and entry points.
var (
	ErrInvalidConfig = vae.ErrInvalidConfig
	ErrShapeMismatch = vae.ErrShapeMismatch
	ErrNotCompiled   = vae.ErrNotCompiled
	ErrStopTraining  = train.ErrStopTraining
	ErrEmptyDataset  = train.ErrEmptyDataset
)

// Model types.
type (
	Autoencoder  = vae.Autoencoder
	Encoder      = vae.Encoder
	Decoder      = vae.Decoder
	Encoding     = vae.Encoding
	ForwardState = vae.ForwardState
	ModelSpec    = vae.ModelSpec
	Variant      = vae.Variant
	Sampler      = vae.Sampler
	NoiseSource  = vae.NoiseSource
	VAELoss      = vae.VAELoss
	Option       = vae.Option
	TuneConfig   = vae.TuneConfig
)

// Training types.
type (
	TrainConfig = train.Config
	Validation  = train.Validation
	History     = train.History
)

// Preset variants.
const (
	Simple                 = vae.Simple
	SingleLayer            = vae.SingleLayer
	MultiLayer             = vae.MultiLayer
	SimpleVariational      = vae.SimpleVariational
	SingleLayerVariational = vae.SingleLayerVariational
	MultiLayerVariational  = vae.MultiLayerVariational
)

// Fixed settings of TuneSingleLayerVariational.
const (
	TuneLatentDim  = vae.TuneLatentDim
	TuneInputWidth = vae.TuneInputWidth
	TuneBeta       = vae.TuneBeta
	TuneBatchSize  = vae.TuneBatchSize
)

// Options.
var (
	WithRand        = vae.WithRand
	WithSeed        = vae.WithSeed
	WithNoiseSource = vae.WithNoiseSource
	WithLogger      = vae.WithLogger
	WithOptimizer   = vae.WithOptimizer
	WithParallel    = vae.WithParallel
)

// New builds, composes and compiles the autoencoder described by spec.
func New(spec ModelSpec, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.New(spec, opts...)
}

// Build builds one of the preset variants.
func Build(v Variant, latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.Build(v, latentDim, inputWidth, beta, opts...)
}

// Variants lists the preset architectures.
func Variants() []Variant {
	return vae.Variants()
}

// SpecFor returns the ModelSpec of a preset.
func SpecFor(v Variant, latentDim, inputWidth int, beta float64) (ModelSpec, error) {
	return vae.SpecFor(v, latentDim, inputWidth, beta)
}

// Compose joins an encoder and a decoder from the same build.
func Compose(encoder *Encoder, decoder *Decoder) (*Autoencoder, error) {
	return vae.Compose(encoder, decoder)
}

// BuildSimpleAutoencoder builds input → Dense(latent, relu) → Dense(input, sigmoid).
func BuildSimpleAutoencoder(latentDim, inputWidth int, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.BuildSimpleAutoencoder(latentDim, inputWidth, opts...)
}

// BuildSingleLayerAutoencoder adds a 256-wide relu layer on each side of the code.
func BuildSingleLayerAutoencoder(latentDim, inputWidth int, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.BuildSingleLayerAutoencoder(latentDim, inputWidth, opts...)
}

// BuildMultiLayerAutoencoder uses relu layers 13 → 9 → 6 → 2, mirrored.
func BuildMultiLayerAutoencoder(latentDim, inputWidth int, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.BuildMultiLayerAutoencoder(latentDim, inputWidth, opts...)
}

// BuildSimpleVariationalAutoencoder puts the distribution heads on the input.
func BuildSimpleVariationalAutoencoder(latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.BuildSimpleVariationalAutoencoder(latentDim, inputWidth, beta, opts...)
}

// BuildSingleLayerVariationalAutoencoder uses a 1024-wide relu layer on each side.
func BuildSingleLayerVariationalAutoencoder(latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.BuildSingleLayerVariationalAutoencoder(latentDim, inputWidth, beta, opts...)
}

// BuildMultiLayerVariationalAutoencoder uses relu layers 128 → 64 → 32, mirrored.
func BuildMultiLayerVariationalAutoencoder(latentDim, inputWidth int, beta float64, opts ...Option) (*Autoencoder, *Encoder, *Decoder, error) {
	return vae.BuildMultiLayerVariationalAutoencoder(latentDim, inputWidth, beta, opts...)
}

// NewSampler creates a reparameterization sampler.
func NewSampler(backend tensor.Backend, noise NoiseSource) *Sampler {
	return vae.NewSampler(backend, noise)
}

// NewVAELoss binds a VAE loss to an autoencoder's forward state.
func NewVAELoss(backend tensor.Backend, beta float64, state *ForwardState) *VAELoss {
	return vae.NewVAELoss(backend, beta, state)
}

// TuneSingleLayerVariational builds and trains a single-layer variational
// autoencoder with the hidden widths, activation and epochs of cfg.
func TuneSingleLayerVariational(trainX, trainY, valX, valY *tensor.Tensor, cfg TuneConfig, opts ...Option) (*History, *Autoencoder, error) {
	return vae.TuneSingleLayerVariational(trainX, trainY, valX, valY, cfg, opts...)
}

// ParseTuneConfig decodes a loosely typed parameter bundle into a TuneConfig.
func ParseTuneConfig(params map[string]any) (TuneConfig, error) {
	return vae.ParseTuneConfig(params)
}

// BestOf trains n independent models concurrently and keeps the one with the
// lowest final validation (else training) loss.
func BestOf(ctx context.Context, n int, run func(ctx context.Context, restart int) (*Autoencoder, *History, error)) (*Autoencoder, *History, error) {
	return train.BestOf(ctx, n, run)
}
