package vae

import (
	"bytes"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/train"
)

// Fixed settings of TuneSingleLayerVariational.
const (
	TuneLatentDim  = 2
	TuneInputWidth = 13
	TuneBeta       = 0.001
	TuneBatchSize  = 8
)

// TuneConfig holds the tunable settings of the single-layer variational
// autoencoder.
type TuneConfig struct {
	EncoderUnits int    `yaml:"encoder_units"`
	DecoderUnits int    `yaml:"decoder_units"`
	Activation   string `yaml:"activation"`
	Epochs       int    `yaml:"epochs"`
}

// Validate checks every field, wrapping failures in ErrInvalidConfig.
func (c TuneConfig) Validate() error {
	if c.EncoderUnits <= 0 {
		return fmt.Errorf("%w: encoder_units must be positive, got %d", ErrInvalidConfig, c.EncoderUnits)
	}
	if c.DecoderUnits <= 0 {
		return fmt.Errorf("%w: decoder_units must be positive, got %d", ErrInvalidConfig, c.DecoderUnits)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be positive, got %d", ErrInvalidConfig, c.Epochs)
	}
	return c.spec().Validate()
}

func (c TuneConfig) spec() ModelSpec {
	return ModelSpec{
		LatentDim:     TuneLatentDim,
		InputWidth:    TuneInputWidth,
		LayerWidths:   []int{c.EncoderUnits},
		DecoderWidths: []int{c.DecoderUnits},
		Activation:    c.Activation,
		Beta:          TuneBeta,
		Variational:   true,
	}
}

// ParseTuneConfig decodes a loosely typed parameter bundle, such as one
// produced by a hyperparameter search, into a TuneConfig. Unknown keys and
// non-integral unit or epoch counts are configuration errors.
func ParseTuneConfig(params map[string]any) (TuneConfig, error) {
	for key, v := range params {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		default:
			continue
		}
		if f != math.Trunc(f) {
			return TuneConfig{}, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidConfig, key, v)
		}
	}
	raw, err := yaml.Marshal(params)
	if err != nil {
		return TuneConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return DecodeTuneConfig(raw)
}

// DecodeTuneConfig reads a TuneConfig from YAML, rejecting unknown keys.
func DecodeTuneConfig(data []byte) (TuneConfig, error) {
	var cfg TuneConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return TuneConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return TuneConfig{}, err
	}
	return cfg, nil
}

// TuneSingleLayerVariational builds a single-layer variational autoencoder
// with cfg's hidden widths and activation and trains it.
//
// Latent dim 2, input width 13 and beta 0.001 are fixed. Training shuffles
// every epoch, uses batches of 8 and evaluates (valX, valY) after each
// epoch. Progress is only logged at debug level.
func TuneSingleLayerVariational(trainX, trainY, valX, valY *tensor.Tensor, cfg TuneConfig, opts ...Option) (*train.History, *Autoencoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	ae, _, _, err := New(cfg.spec(), opts...)
	if err != nil {
		return nil, nil, err
	}

	history, err := ae.Fit(trainX, trainY, train.Config{
		Epochs:     cfg.Epochs,
		BatchSize:  TuneBatchSize,
		Shuffle:    true,
		Validation: &train.Validation{X: valX, Y: valY},
	})
	if err != nil {
		return nil, nil, err
	}
	return history, ae, nil
}
