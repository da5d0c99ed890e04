package vae_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/vae"
)

func meanAbsError(a, b *tensor.Tensor) float64 {
	var sum float64
	for i, v := range a.Data() {
		sum += math.Abs(v - b.Data()[i])
	}
	return sum / float64(a.NumElements())
}

func TestTuneSingleLayerVariational(t *testing.T) {
	cfg, err := vae.ParseTuneConfig(map[string]any{
		"encoder_units": 8,
		"decoder_units": 8,
		"activation":    "relu",
		"epochs":        2,
	})
	require.NoError(t, err)

	trainX := skewedBatch(1, 1024, vae.TuneInputWidth)
	valX := skewedBatch(2, 64, vae.TuneInputWidth)

	// An untrained model with the same architecture and seed is the baseline.
	baseline, _, _, err := vae.New(vae.ModelSpec{
		LatentDim:     vae.TuneLatentDim,
		InputWidth:    vae.TuneInputWidth,
		LayerWidths:   []int{8},
		DecoderWidths: []int{8},
		Activation:    "relu",
		Beta:          vae.TuneBeta,
		Variational:   true,
	}, vae.WithSeed(17))
	require.NoError(t, err)
	before, err := baseline.ReconstructMean(trainX)
	require.NoError(t, err)

	history, ae, err := vae.TuneSingleLayerVariational(trainX, trainX, valX, valX, cfg, vae.WithSeed(17))
	require.NoError(t, err)
	require.NotNil(t, ae)

	assert.Len(t, history.Loss(), 2)
	assert.Len(t, history.ValLoss(), 2)
	assert.True(t, ae.Variational())
	assert.Equal(t, vae.TuneLatentDim, ae.Encoder().LatentDim())

	after, err := ae.ReconstructMean(trainX)
	require.NoError(t, err)
	assert.Less(t, meanAbsError(after, trainX), meanAbsError(before, trainX))
}

func TestTuneSingleLayerVariational_Errors(t *testing.T) {
	good := vae.TuneConfig{EncoderUnits: 4, DecoderUnits: 4, Activation: "tanh", Epochs: 1}
	x := skewedBatch(1, 16, vae.TuneInputWidth)

	_, _, err := vae.TuneSingleLayerVariational(x, x, x, x, vae.TuneConfig{EncoderUnits: 4, DecoderUnits: 4, Epochs: 0})
	require.ErrorIs(t, err, vae.ErrInvalidConfig)

	_, _, err = vae.TuneSingleLayerVariational(x, x, x, x, vae.TuneConfig{EncoderUnits: 4, DecoderUnits: 4, Activation: "gelu", Epochs: 1})
	require.ErrorIs(t, err, vae.ErrInvalidConfig)

	narrow := skewedBatch(1, 16, 12)
	_, _, err = vae.TuneSingleLayerVariational(narrow, narrow, x, x, good)
	require.ErrorIs(t, err, vae.ErrShapeMismatch)

	_, _, err = vae.TuneSingleLayerVariational(x, x, nil, nil, good)
	require.ErrorIs(t, err, vae.ErrShapeMismatch)
}

func TestParseTuneConfig(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		want    vae.TuneConfig
		wantErr bool
	}{
		{
			name:   "ints",
			params: map[string]any{"encoder_units": 16, "decoder_units": 32, "activation": "tanh", "epochs": 5},
			want:   vae.TuneConfig{EncoderUnits: 16, DecoderUnits: 32, Activation: "tanh", Epochs: 5},
		},
		{
			name:   "integral floats from json",
			params: map[string]any{"encoder_units": 16.0, "decoder_units": 8.0, "activation": "relu", "epochs": 3.0},
			want:   vae.TuneConfig{EncoderUnits: 16, DecoderUnits: 8, Activation: "relu", Epochs: 3},
		},
		{
			name:    "unknown key",
			params:  map[string]any{"encoder_units": 16, "decoder_units": 8, "epochs": 3, "dropout": 0.1},
			wantErr: true,
		},
		{
			name:    "fractional units",
			params:  map[string]any{"encoder_units": 16.5, "decoder_units": 8, "epochs": 3},
			wantErr: true,
		},
		{
			name:    "missing epochs",
			params:  map[string]any{"encoder_units": 16, "decoder_units": 8},
			wantErr: true,
		},
		{
			name:    "wrong type",
			params:  map[string]any{"encoder_units": "many", "decoder_units": 8, "epochs": 3},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vae.ParseTuneConfig(tt.params)
			if tt.wantErr {
				require.ErrorIs(t, err, vae.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTuneConfig(t *testing.T) {
	cfg, err := vae.DecodeTuneConfig([]byte("encoder_units: 64\ndecoder_units: 32\nactivation: silu\nepochs: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, vae.TuneConfig{EncoderUnits: 64, DecoderUnits: 32, Activation: "silu", Epochs: 10}, cfg)

	_, err = vae.DecodeTuneConfig([]byte("encoder_units: [1, 2]\n"))
	require.ErrorIs(t, err, vae.ErrInvalidConfig)
}
