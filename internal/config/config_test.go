package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tabae/internal/vae"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
variant: multi
latent_dim: 3
epochs: 10
seed: 42
tune:
  encoder_units: 16
  decoder_units: 16
  activation: tanh
  epochs: 4
`))
	require.NoError(t, err)

	assert.Equal(t, "multi", f.Variant)
	assert.Equal(t, 3, f.LatentDim)
	assert.Equal(t, 10, f.Epochs)
	assert.Equal(t, 8, f.BatchSize, "unset keys keep defaults")
	require.NotNil(t, f.Seed)
	assert.Equal(t, int64(42), *f.Seed)
	assert.Equal(t, &vae.TuneConfig{EncoderUnits: 16, DecoderUnits: 16, Activation: "tanh", Epochs: 4}, f.Tune)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "learning_rate: 0.1\n",
		"bad variant":    "variant: deep\n",
		"zero epochs":    "epochs: 0\n",
		"negative beta":  "beta: -1\n",
		"val fraction":   "validation_fraction: 1\n",
		"zero restarts":  "restarts: 0\n",
		"bad tune block": "tune:\n  encoder_units: 0\n  decoder_units: 1\n  epochs: 1\n",
		"not yaml":       "variant: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabae.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: simple\nrestarts: 4\n"), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "simple", f.Variant)
	assert.Equal(t, 4, f.Restarts)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSeed(t *testing.T) {
	t.Setenv("TABAE_SEED", "")
	_, ok := Seed()
	assert.False(t, ok)

	t.Setenv("TABAE_SEED", " \"123\" ")
	seed, ok := Seed()
	assert.True(t, ok)
	assert.Equal(t, int64(123), seed)
	assert.Equal(t, "123", AsMap()["TABAE_SEED"])

	t.Setenv("TABAE_SEED", "abc")
	_, ok = Seed()
	assert.False(t, ok)
}

func TestDebug(t *testing.T) {
	t.Setenv("TABAE_DEBUG", "")
	assert.False(t, Debug())
	t.Setenv("TABAE_DEBUG", "1")
	assert.True(t, Debug())
	t.Setenv("TABAE_DEBUG", "false")
	assert.False(t, Debug())
	t.Setenv("TABAE_DEBUG", "yes please")
	assert.True(t, Debug())
}
