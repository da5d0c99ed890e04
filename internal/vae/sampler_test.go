package vae_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/tabae/internal/autodiff"
	"github.com/born-ml/tabae/internal/backend/cpu"
	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/vae"
)

func repeatRows(row []float64, n int) *tensor.Tensor {
	data := make([]float64, 0, n*len(row))
	for range n {
		data = append(data, row...)
	}
	t, _ := tensor.FromSlice(data, tensor.Shape{n, len(row)})
	return t
}

func column(t *tensor.Tensor, j int) []float64 {
	out := make([]float64, t.Rows())
	for i := range out {
		out[i] = t.At(i, j)
	}
	return out
}

func TestSampler_MomentsMatchDistribution(t *testing.T) {
	const n = 20000
	sampler := vae.NewSampler(cpu.New(), rand.New(rand.NewSource(11)))

	means := []float64{0.5, -1, 3}
	logVars := []float64{math.Log(4), 0, math.Log(0.25)}
	z := sampler.Sample(repeatRows(means, n), repeatRows(logVars, n))
	require.Equal(t, tensor.Shape{n, 3}, z.Shape())

	for j := range means {
		m, v := stat.MeanVariance(column(z, j), nil)
		wantVar := math.Exp(logVars[j])
		assert.InDelta(t, means[j], m, 4*math.Sqrt(wantVar/n)+1e-3, "mean of dim %d", j)
		assert.InEpsilon(t, wantVar, v, 0.05, "variance of dim %d", j)
	}
}

func TestSampler_RepeatedDrawsDiffer(t *testing.T) {
	sampler := vae.NewSampler(cpu.New(), rand.New(rand.NewSource(1)))
	mean := tensor.Zeros(tensor.Shape{4, 2})
	logVar := tensor.Zeros(tensor.Shape{4, 2})

	a := sampler.Sample(mean, logVar)
	b := sampler.Sample(mean, logVar)
	assert.NotEqual(t, a.Data(), b.Data())
}

func TestSampler_DeterministicWithNoise(t *testing.T) {
	sampler := vae.NewSampler(cpu.New(), nil)
	mean, _ := tensor.FromRows([][]float64{{1, 2}})
	logVar, _ := tensor.FromRows([][]float64{{0, math.Log(9)}})
	eps, _ := tensor.FromRows([][]float64{{0.5, -1}})

	z := sampler.SampleWithNoise(mean, logVar, eps)
	assert.InDeltaSlice(t, []float64{1.5, -1}, z.Data(), 1e-12)

	assert.Panics(t, func() { sampler.SampleWithNoise(mean, tensor.Zeros(tensor.Shape{1, 3}), eps) })
}

func TestSampler_Gradients(t *testing.T) {
	backend := autodiff.New(cpu.New())
	sampler := vae.NewSampler(backend, nil)

	mean, _ := tensor.FromRows([][]float64{{0.3, -0.7}, {1.2, 0}})
	logVar, _ := tensor.FromRows([][]float64{{0.4, -1.5}, {0, 2}})
	eps, _ := tensor.FromRows([][]float64{{1.1, -0.4}, {0.25, 2}})

	backend.Tape().StartRecording()
	loss := backend.Sum(sampler.SampleWithNoise(mean, logVar, eps))
	grads := autodiff.Backward(loss, backend)

	assert.InDeltaSlice(t, []float64{1, 1, 1, 1}, grads[mean].Data(), 1e-12)

	want := make([]float64, 4)
	for i, lv := range logVar.Data() {
		want[i] = 0.5 * math.Exp(0.5*lv) * eps.Data()[i]
	}
	assert.InDeltaSlice(t, want, grads[logVar].Data(), 1e-12)
}
