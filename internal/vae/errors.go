package vae

import "errors"

var (
	// ErrInvalidConfig is returned when a ModelSpec, TuneConfig or option
	// is out of range. Nothing is allocated when it is returned.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrShapeMismatch is returned when data does not have the width a
	// model was built for, or when an encoder and decoder do not fit.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotCompiled is returned when training an autoencoder that has no
	// optimizer or loss bound.
	ErrNotCompiled = errors.New("autoencoder is not compiled")
)
