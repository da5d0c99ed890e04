// Package config holds the settings of the tabae CLI: a YAML file, the
// TABAE_* environment variables, and the defaults both fall back to.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tabae/internal/vae"
)

// ErrInvalid wraps every configuration problem this package reports.
var ErrInvalid = errors.New("invalid config")

// File is the on-disk configuration. Zero fields take the defaults of
// Default; the command line overrides both.
type File struct {
	Variant            string          `yaml:"variant"`
	LatentDim          int             `yaml:"latent_dim"`
	Beta               float64         `yaml:"beta"`
	Epochs             int             `yaml:"epochs"`
	BatchSize          int             `yaml:"batch_size"`
	Restarts           int             `yaml:"restarts"`
	Seed               *int64          `yaml:"seed"`
	ValidationFraction float64         `yaml:"validation_fraction"`
	Data               string          `yaml:"data"`
	Tune               *vae.TuneConfig `yaml:"tune"`
}

// Default returns the settings used when nothing else is configured.
func Default() File {
	return File{
		Variant:            string(vae.SingleLayerVariational),
		LatentDim:          2,
		Beta:               0.001,
		Epochs:             50,
		BatchSize:          8,
		Restarts:           1,
		ValidationFraction: 0.2,
	}
}

// Load reads a YAML config file. Unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks the ranges the model builders do not.
func (f File) Validate() error {
	if _, err := vae.SpecFor(vae.Variant(f.Variant), 1, 1, 0); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch {
	case f.LatentDim <= 0:
		return fmt.Errorf("%w: latent_dim must be positive, got %d", ErrInvalid, f.LatentDim)
	case f.Epochs <= 0:
		return fmt.Errorf("%w: epochs must be positive, got %d", ErrInvalid, f.Epochs)
	case f.BatchSize <= 0:
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalid, f.BatchSize)
	case f.Restarts <= 0:
		return fmt.Errorf("%w: restarts must be positive, got %d", ErrInvalid, f.Restarts)
	case f.ValidationFraction < 0 || f.ValidationFraction >= 1:
		return fmt.Errorf("%w: validation_fraction must be in [0, 1), got %v", ErrInvalid, f.ValidationFraction)
	case f.Beta < 0:
		return fmt.Errorf("%w: beta must be non-negative, got %v", ErrInvalid, f.Beta)
	}
	if f.Tune != nil {
		if err := f.Tune.Validate(); err != nil {
			return fmt.Errorf("%w: tune: %w", ErrInvalid, err)
		}
	}
	return nil
}
