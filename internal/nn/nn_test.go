package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tabae/internal/autodiff"
	"github.com/born-ml/tabae/internal/backend/cpu"
	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/tensor"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestParameter(t *testing.T) {
	data := tensor.Ones(tensor.Shape{3})
	param := nn.NewParameter("test_param", data)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.Nil(t, param.Grad())

	grad := tensor.Full(tensor.Shape{3}, 0.1)
	param.SetGrad(grad)
	assert.Same(t, grad, param.Grad())

	param.ZeroGrad()
	assert.Nil(t, param.Grad())
}

func TestXavierBounds(t *testing.T) {
	w := nn.Xavier(13, 256, tensor.Shape{256, 13}, newRand())
	bound := math.Sqrt(6.0 / float64(13+256))

	var nonZero int
	for _, v := range w.Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
		if v != 0 {
			nonZero++
		}
	}
	assert.Equal(t, 256*13, nonZero)
}

func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend, newRand())

	// Pin the weights so the expected output is easy to compute.
	copy(layer.Weight().Tensor().Data(), []float64{1, 0, 1, 0, 1, 0})
	copy(layer.Bias().Tensor().Data(), []float64{0.5, -1})

	x, err := tensor.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	out := layer.Forward(x)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.InDeltaSlice(t, []float64{4.5, 1, 10.5, 4}, out.Data(), 1e-12)

	assert.Len(t, layer.Parameters(), 2)
	assert.Equal(t, tensor.Shape{2, 3}, layer.Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{2}, layer.Bias().Tensor().Shape())
	assert.Equal(t, 8, nn.CountParameters(layer.Parameters()))
}

func TestLinear_Panics(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { nn.NewLinear(0, 2, backend, newRand()) })

	layer := nn.NewLinear(3, 2, backend, newRand())
	assert.Panics(t, func() { layer.Forward(tensor.Zeros(tensor.Shape{2, 4})) })
	assert.Panics(t, func() { layer.Forward(tensor.Zeros(tensor.Shape{3})) })
}

func TestLinear_GradientsReachParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(4, 3, backend, newRand())
	x := tensor.Randn(tensor.Shape{5, 4}, newRand())

	backend.Tape().StartRecording()
	loss := backend.Mean(layer.Forward(x))
	grads := autodiff.Backward(loss, backend)

	// d mean(xW^T + b) / d b_j = 1/out for every column j.
	gb := grads[layer.Bias().Tensor()]
	require.NotNil(t, gb)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, gb.Data(), 1e-12)

	gw := grads[layer.Weight().Tensor()]
	require.NotNil(t, gw)
	assert.Equal(t, tensor.Shape{3, 4}, gw.Shape())
}

func TestDense(t *testing.T) {
	backend := cpu.New()
	d, err := nn.NewDense("dense_1", 3, 4, "ReLU", backend, newRand())
	require.NoError(t, err)

	assert.Equal(t, "dense_1", d.Name())
	assert.Equal(t, "relu", d.Activation())
	assert.Equal(t, 3, d.InFeatures())
	assert.Equal(t, 4, d.OutFeatures())

	out := d.Forward(tensor.Randn(tensor.Shape{6, 3}, newRand()))
	for _, v := range out.Data() {
		assert.GreaterOrEqual(t, v, 0.0)
	}

	_, err = nn.NewDense("bad", 3, 4, "gelu", backend, newRand())
	require.ErrorIs(t, err, nn.ErrUnknownActivation)

	_, err = nn.NewDense("empty", 3, 0, "relu", backend, newRand())
	require.Error(t, err)
}

func TestActivationByName(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{-2, 0, 2}, tensor.Shape{1, 3})
	require.NoError(t, err)

	tests := []struct {
		name string
		want []float64
	}{
		{"relu", []float64{0, 0, 2}},
		{"sigmoid", []float64{1 / (1 + math.Exp(2)), 0.5, 1 / (1 + math.Exp(-2))}},
		{"tanh", []float64{math.Tanh(-2), 0, math.Tanh(2)}},
		{"linear", []float64{-2, 0, 2}},
		{"", []float64{-2, 0, 2}},
		{"swish", []float64{-2 / (1 + math.Exp(2)), 0, 2 / (1 + math.Exp(-2))}},
		{"softplus", []float64{math.Log1p(math.Exp(-2)), math.Log(2), math.Log1p(math.Exp(2))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := nn.ActivationByName(tt.name, backend)
			require.NoError(t, err)
			assert.Nil(t, act.Parameters())
			assert.InDeltaSlice(t, tt.want, act.Forward(x).Data(), 1e-9)
		})
	}

	_, err = nn.ActivationByName("leaky", backend)
	require.ErrorIs(t, err, nn.ErrUnknownActivation)
	assert.Equal(t, []string{"linear", "relu", "sigmoid", "silu", "softplus", "tanh"}, nn.Activations())
}

func TestSequential(t *testing.T) {
	backend := cpu.New()
	rng := newRand()
	first := nn.NewLinear(4, 3, backend, rng)
	second := nn.NewLinear(3, 2, backend, rng)

	model := nn.NewSequential(first, nn.NewReLU(backend))
	model.Add(second)

	assert.Equal(t, 3, model.Len())
	assert.Same(t, second, model.Module(2))
	assert.Len(t, model.Parameters(), 4)
	assert.Equal(t, 4*3+3+3*2+2, nn.CountParameters(model.Parameters()))

	x := tensor.Randn(tensor.Shape{5, 4}, rng)
	want := second.Forward(backend.ReLU(first.Forward(x)))
	assert.Equal(t, want.Data(), model.Forward(x).Data())

	empty := nn.NewSequential()
	assert.Same(t, x, empty.Forward(x))

	mods := model.Modules()
	mods[0] = nil
	assert.NotNil(t, model.Module(0), "Modules returns a copy")
}

func TestMAELoss(t *testing.T) {
	backend := cpu.New()
	loss := nn.NewMAELoss(backend)

	target, err := tensor.FromRows([][]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)
	pred, err := tensor.FromRows([][]float64{{0.5, -0.5}, {1, 3}})
	require.NoError(t, err)

	// Row MAEs are 0.5 and 1.0; batch mean is 0.75.
	got := loss.Forward(target, pred)
	assert.InDelta(t, 0.75, got.Item(), 1e-12)

	assert.Panics(t, func() { loss.Forward(target, tensor.Zeros(tensor.Shape{2, 3})) })
}
