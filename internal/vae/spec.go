package vae

import (
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/tabae/internal/nn"
)

// DefaultActivation is the hidden-layer activation when ModelSpec leaves it
// empty.
const DefaultActivation = "relu"

// ModelSpec describes one autoencoder architecture.
//
// LayerWidths are the encoder's hidden Dense widths, input side first.
// DecoderWidths are the decoder's hidden widths, latent side first; nil
// mirrors LayerWidths. Beta weights the KL term and only applies to
// variational models.
type ModelSpec struct {
	LatentDim     int
	InputWidth    int
	LayerWidths   []int
	DecoderWidths []int
	Activation    string
	Beta          float64
	Variational   bool
}

// Validate reports the first problem with s, wrapped in ErrInvalidConfig.
func (s ModelSpec) Validate() error {
	if s.LatentDim <= 0 {
		return fmt.Errorf("%w: latent dim must be positive, got %d", ErrInvalidConfig, s.LatentDim)
	}
	if s.InputWidth <= 0 {
		return fmt.Errorf("%w: input width must be positive, got %d", ErrInvalidConfig, s.InputWidth)
	}
	for i, w := range s.LayerWidths {
		if w <= 0 {
			return fmt.Errorf("%w: encoder layer %d width must be positive, got %d", ErrInvalidConfig, i, w)
		}
	}
	for i, w := range s.DecoderWidths {
		if w <= 0 {
			return fmt.Errorf("%w: decoder layer %d width must be positive, got %d", ErrInvalidConfig, i, w)
		}
	}
	if s.Activation != "" && !slices.Contains(nn.Activations(), nn.CanonicalActivation(s.Activation)) {
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, nn.ErrUnknownActivation, s.Activation)
	}
	if math.IsNaN(s.Beta) || math.IsInf(s.Beta, 0) || s.Beta < 0 {
		return fmt.Errorf("%w: beta must be finite and non-negative, got %v", ErrInvalidConfig, s.Beta)
	}
	if !s.Variational && s.Beta != 0 {
		return fmt.Errorf("%w: beta %v set on a vanilla autoencoder", ErrInvalidConfig, s.Beta)
	}
	return nil
}

// normalized returns a copy with defaults filled in and slices cloned, so
// later changes to the caller's spec do not reach a built model.
func (s ModelSpec) normalized() ModelSpec {
	out := s
	out.LayerWidths = slices.Clone(s.LayerWidths)
	if s.DecoderWidths == nil {
		out.DecoderWidths = slices.Clone(s.LayerWidths)
		slices.Reverse(out.DecoderWidths)
	} else {
		out.DecoderWidths = slices.Clone(s.DecoderWidths)
	}
	if out.Activation == "" {
		out.Activation = DefaultActivation
	}
	out.Activation = nn.CanonicalActivation(out.Activation)
	return out
}

// Variant names one of the six preset architectures.
type Variant string

const (
	Simple                 Variant = "simple"
	SingleLayer            Variant = "single"
	MultiLayer             Variant = "multi"
	SimpleVariational      Variant = "simple-vae"
	SingleLayerVariational Variant = "single-vae"
	MultiLayerVariational  Variant = "multi-vae"
)

// Variants lists the preset architectures.
func Variants() []Variant {
	return []Variant{Simple, SingleLayer, MultiLayer, SimpleVariational, SingleLayerVariational, MultiLayerVariational}
}

// Variational reports whether v is one of the variational presets.
func (v Variant) Variational() bool {
	switch v {
	case SimpleVariational, SingleLayerVariational, MultiLayerVariational:
		return true
	}
	return false
}

// SpecFor returns the ModelSpec of a preset. beta is ignored for vanilla
// presets.
func SpecFor(v Variant, latentDim, inputWidth int, beta float64) (ModelSpec, error) {
	spec := ModelSpec{LatentDim: latentDim, InputWidth: inputWidth, Activation: DefaultActivation}
	switch v {
	case Simple:
	case SingleLayer:
		spec.LayerWidths = []int{256}
	case MultiLayer:
		spec.LayerWidths = []int{13, 9, 6, 2}
	case SimpleVariational:
	case SingleLayerVariational:
		spec.LayerWidths = []int{1024}
	case MultiLayerVariational:
		spec.LayerWidths = []int{128, 64, 32}
	default:
		return ModelSpec{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, v)
	}
	if v.Variational() {
		spec.Variational = true
		spec.Beta = beta
	}
	return spec, nil
}
