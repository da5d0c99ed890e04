package nn

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/tabae/internal/tensor"
)

// ErrUnknownActivation is wrapped by ActivationByName for unsupported names.
var ErrUnknownActivation = errors.New("unknown activation")

// ReLU applies max(0, x) element-wise.
type ReLU struct{ backend tensor.Backend }

// NewReLU creates a ReLU activation module.
func NewReLU(backend tensor.Backend) *ReLU { return &ReLU{backend: backend} }

// Forward applies ReLU.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor { return r.backend.ReLU(input) }

// Parameters returns nil.
func (r *ReLU) Parameters() []*Parameter { return nil }

// Sigmoid applies σ(x) = 1/(1+exp(-x)) element-wise. Output is in (0, 1).
type Sigmoid struct{ backend tensor.Backend }

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid(backend tensor.Backend) *Sigmoid { return &Sigmoid{backend: backend} }

// Forward applies sigmoid.
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor { return s.backend.Sigmoid(input) }

// Parameters returns nil.
func (s *Sigmoid) Parameters() []*Parameter { return nil }

// Tanh applies the hyperbolic tangent element-wise.
type Tanh struct{ backend tensor.Backend }

// NewTanh creates a Tanh activation module.
func NewTanh(backend tensor.Backend) *Tanh { return &Tanh{backend: backend} }

// Forward applies tanh.
func (t *Tanh) Forward(input *tensor.Tensor) *tensor.Tensor { return t.backend.Tanh(input) }

// Parameters returns nil.
func (t *Tanh) Parameters() []*Parameter { return nil }

// SiLU applies x * σ(x) element-wise (also known as swish).
type SiLU struct{ backend tensor.Backend }

// NewSiLU creates a SiLU activation module.
func NewSiLU(backend tensor.Backend) *SiLU { return &SiLU{backend: backend} }

// Forward applies SiLU.
func (s *SiLU) Forward(input *tensor.Tensor) *tensor.Tensor { return s.backend.SiLU(input) }

// Parameters returns nil.
func (s *SiLU) Parameters() []*Parameter { return nil }

// Softplus applies log(1 + exp(x)) element-wise.
type Softplus struct{ backend tensor.Backend }

// NewSoftplus creates a Softplus activation module.
func NewSoftplus(backend tensor.Backend) *Softplus { return &Softplus{backend: backend} }

// Forward applies softplus.
func (s *Softplus) Forward(input *tensor.Tensor) *tensor.Tensor { return s.backend.Softplus(input) }

// Parameters returns nil.
func (s *Softplus) Parameters() []*Parameter { return nil }

// Identity returns its input unchanged. Used for "linear" heads.
type Identity struct{}

// Forward returns input.
func (Identity) Forward(input *tensor.Tensor) *tensor.Tensor { return input }

// Parameters returns nil.
func (Identity) Parameters() []*Parameter { return nil }

var activations = map[string]func(tensor.Backend) Module{
	"relu":     func(b tensor.Backend) Module { return NewReLU(b) },
	"sigmoid":  func(b tensor.Backend) Module { return NewSigmoid(b) },
	"tanh":     func(b tensor.Backend) Module { return NewTanh(b) },
	"silu":     func(b tensor.Backend) Module { return NewSiLU(b) },
	"softplus": func(b tensor.Backend) Module { return NewSoftplus(b) },
	"linear":   func(tensor.Backend) Module { return Identity{} },
}

var activationAliases = map[string]string{
	"swish":    "silu",
	"identity": "linear",
	"":         "linear",
}

// CanonicalActivation lower-cases name and resolves aliases. The result is
// not guaranteed to be a supported activation.
func CanonicalActivation(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := activationAliases[n]; ok {
		return alias
	}
	return n
}

// ActivationByName returns the activation module for name (case-insensitive).
// An empty name means "linear".
func ActivationByName(name string, backend tensor.Backend) (Module, error) {
	ctor, ok := activations[CanonicalActivation(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownActivation, name, strings.Join(Activations(), ", "))
	}
	return ctor(backend), nil
}

// Activations lists the supported canonical activation names, sorted.
func Activations() []string {
	names := make([]string, 0, len(activations))
	for n := range activations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
