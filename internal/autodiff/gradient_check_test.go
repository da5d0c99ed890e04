package autodiff_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/tabae/internal/autodiff"
	"github.com/born-ml/tabae/internal/tensor"
)

// graphFunc builds a scalar loss from its inputs on the given backend.
type graphFunc func(b tensor.Backend, inputs []*tensor.Tensor) *tensor.Tensor

// checkGradients compares autodiff gradients against central finite
// differences for every element of every input.
func checkGradients(t *testing.T, f graphFunc, inputs []*tensor.Tensor, tol float64) {
	t.Helper()
	const eps = 1e-6

	backend := newBackend()
	backend.Tape().StartRecording()
	loss := f(backend, inputs)
	grads := autodiff.Backward(loss, backend)
	backend.Tape().StopRecording()

	plain := backend.Inner()
	eval := func() float64 { return f(plain, inputs).Item() }

	for n, in := range inputs {
		grad := grads[in]
		require.NotNil(t, grad, "input %d has no gradient", n)
		data := in.Data()
		for i := range data {
			orig := data[i]
			data[i] = orig + eps
			up := eval()
			data[i] = orig - eps
			down := eval()
			data[i] = orig

			numeric := (up - down) / (2 * eps)
			analytic := grad.Data()[i]
			require.InDelta(t, numeric, analytic, tol*(1+math.Abs(numeric)),
				"input %d element %d: numeric %g analytic %g", n, i, numeric, analytic)
		}
	}
}

func randTensor(rng *rand.Rand, shape tensor.Shape) *tensor.Tensor {
	return tensor.Randn(shape, rng)
}

func TestGradientCheck_DenseSigmoidMAE(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := randTensor(rng, tensor.Shape{4, 3})
	w := randTensor(rng, tensor.Shape{2, 3})
	bias := randTensor(rng, tensor.Shape{2})
	target := randTensor(rng, tensor.Shape{4, 2})

	f := func(b tensor.Backend, in []*tensor.Tensor) *tensor.Tensor {
		h := b.MatMul(in[0], b.Transpose(in[1]))
		h = b.Add(h, b.Reshape(in[2], tensor.Shape{1, 2}))
		y := b.Sigmoid(h)
		return b.Mean(b.Abs(b.Sub(y, target)))
	}
	checkGradients(t, f, []*tensor.Tensor{x, w, bias}, 1e-4)
}

func TestGradientCheck_KLTerm(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	mu := randTensor(rng, tensor.Shape{3, 2})
	logVar := randTensor(rng, tensor.Shape{3, 2})

	f := func(b tensor.Backend, in []*tensor.Tensor) *tensor.Tensor {
		m, lv := in[0], in[1]
		inner := b.Sub(b.AddScalar(b.Add(b.Exp(lv), b.Mul(m, m)), -1), lv)
		kl := b.MulScalar(b.SumDim(inner, 1, false), 0.5)
		return b.Mean(kl)
	}
	checkGradients(t, f, []*tensor.Tensor{mu, logVar}, 1e-5)
}

func TestGradientCheck_Activations(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	acts := map[string]func(b tensor.Backend, x *tensor.Tensor) *tensor.Tensor{
		"relu":     func(b tensor.Backend, x *tensor.Tensor) *tensor.Tensor { return b.ReLU(x) },
		"tanh":     func(b tensor.Backend, x *tensor.Tensor) *tensor.Tensor { return b.Tanh(x) },
		"silu":     func(b tensor.Backend, x *tensor.Tensor) *tensor.Tensor { return b.SiLU(x) },
		"softplus": func(b tensor.Backend, x *tensor.Tensor) *tensor.Tensor { return b.Softplus(x) },
	}

	for name, act := range acts {
		t.Run(name, func(t *testing.T) {
			x := randTensor(rng, tensor.Shape{3, 4})
			// Keep ReLU inputs away from the kink at 0.
			for i, v := range x.Data() {
				if math.Abs(v) < 1e-2 {
					x.Data()[i] = 0.5
				}
			}
			f := func(b tensor.Backend, in []*tensor.Tensor) *tensor.Tensor {
				return b.Sum(b.MulScalar(act(b, in[0]), 0.3))
			}
			checkGradients(t, f, []*tensor.Tensor{x}, 1e-5)
		})
	}
}

func TestGradientCheck_MeanDimKeepDim(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	x := randTensor(rng, tensor.Shape{3, 5})
	weights := randTensor(rng, tensor.Shape{1, 5})

	f := func(b tensor.Backend, in []*tensor.Tensor) *tensor.Tensor {
		centred := b.Sub(in[0], b.MeanDim(in[0], 1, true))
		return b.Sum(b.Mul(b.Mul(centred, centred), b.Expand(weights, tensor.Shape{3, 5})))
	}
	checkGradients(t, f, []*tensor.Tensor{x}, 1e-5)
}
