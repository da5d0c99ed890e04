package nn

import "github.com/born-ml/tabae/internal/tensor"

// Sequential is a container that chains modules in order.
//
// The output of each module is passed as input to the next one.
type Sequential struct {
	modules []Module
}

// NewSequential creates a Sequential container from modules.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward runs input through every module. An empty container returns the
// input unchanged.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters collects the parameters of every module, in order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Add appends a module.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the i-th module.
func (s *Sequential) Module(i int) Module {
	return s.modules[i]
}

// Modules returns a copy of the module list.
func (s *Sequential) Modules() []Module {
	return append([]Module(nil), s.modules...)
}
