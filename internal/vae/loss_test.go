package vae_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tabae/internal/backend/cpu"
	"github.com/born-ml/tabae/internal/nn"
	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/vae"
)

func mustRows(t *testing.T, rows [][]float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromRows(rows)
	require.NoError(t, err)
	return x
}

func TestVAELoss_KLZeroAtStandardNormal(t *testing.T) {
	state := &vae.ForwardState{Encoding: vae.Encoding{
		Mean:        tensor.Zeros(tensor.Shape{3, 2}),
		LogVariance: tensor.Zeros(tensor.Shape{3, 2}),
	}}
	loss := vae.NewVAELoss(cpu.New(), 1, state)
	assert.Equal(t, []float64{0, 0, 0}, loss.KL().Data())
}

func TestVAELoss_KLPositiveOtherwise(t *testing.T) {
	state := &vae.ForwardState{Encoding: vae.Encoding{
		Mean:        mustRows(t, [][]float64{{1, 0}, {0, 0}}),
		LogVariance: mustRows(t, [][]float64{{0, 0}, {math.Log(2), 0}}),
	}}
	loss := vae.NewVAELoss(cpu.New(), 1, state)

	// Row 0: 0.5 * (1 + 1 - 1 - 0) = 0.5
	// Row 1: 0.5 * (2 - 1 - ln 2)
	want := []float64{0.5, 0.5 * (1 - math.Log(2))}
	assert.InDeltaSlice(t, want, loss.KL().Data(), 1e-12)
}

func TestVAELoss_BetaZeroIsMAE(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	backend := cpu.New()
	for range 5 {
		input := tensor.Randn(tensor.Shape{6, 4}, rng)
		pred := tensor.Randn(tensor.Shape{6, 4}, rng)
		state := &vae.ForwardState{
			Input: input,
			Encoding: vae.Encoding{
				Mean:        tensor.Randn(tensor.Shape{6, 2}, rng),
				LogVariance: tensor.Randn(tensor.Shape{6, 2}, rng),
			},
		}

		got := vae.NewVAELoss(backend, 0, state).Forward(input, pred).Item()
		want := nn.NewMAELoss(backend).Forward(input, pred).Item()
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestVAELoss_CombinesTerms(t *testing.T) {
	input := mustRows(t, [][]float64{{0, 1}, {1, 1}})
	pred := mustRows(t, [][]float64{{0.5, 0.5}, {1, 0}})
	state := &vae.ForwardState{
		Input: input,
		Encoding: vae.Encoding{
			Mean:        mustRows(t, [][]float64{{2}, {0}}),
			LogVariance: mustRows(t, [][]float64{{0}, {0}}),
		},
	}
	loss := vae.NewVAELoss(cpu.New(), 0.5, state)

	// recon = [0.5, 0.5], kl = [2, 0], per sample = recon + 0.5*kl.
	perSample := loss.PerSample(input, pred)
	assert.Equal(t, tensor.Shape{2}, perSample.Shape())
	assert.InDeltaSlice(t, []float64{1.5, 0.5}, perSample.Data(), 1e-12)
	assert.InDelta(t, 1.0, loss.Forward(input, pred).Item(), 1e-12, "batch mean")
}

func TestVAELoss_ReconstructsCapturedInput(t *testing.T) {
	input := mustRows(t, [][]float64{{1, 1}})
	target := mustRows(t, [][]float64{{0, 0}})
	pred := mustRows(t, [][]float64{{1, 0}})

	state := &vae.ForwardState{Input: input}
	loss := vae.NewVAELoss(cpu.New(), 0, state)
	assert.InDelta(t, 0.5, loss.Forward(target, pred).Item(), 1e-12, "target is ignored when an input was captured")

	state.Input = nil
	assert.InDelta(t, 0.5, loss.Forward(target, pred).Item(), 1e-12)
	assert.InDelta(t, 0.5, loss.Forward(mustRows(t, [][]float64{{1, 1}}), pred).Item(), 1e-12)
}

func TestVAELoss_Panics(t *testing.T) {
	loss := vae.NewVAELoss(cpu.New(), 1, &vae.ForwardState{})
	x := tensor.Zeros(tensor.Shape{2, 3})
	assert.Panics(t, func() { loss.Forward(x, x) }, "no distribution captured")
	assert.Panics(t, func() { loss.Reconstruction(x, tensor.Zeros(tensor.Shape{2, 4})) })
}
