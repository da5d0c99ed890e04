package dataset

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tabae/internal/tensor"
	"github.com/born-ml/tabae/internal/train"
)

func TestReadCSV(t *testing.T) {
	x, err := ReadCSV(strings.NewReader("a,b,c\n0,0.5,1\n0.25, 0.75 ,0\n"))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, []float64{0, 0.5, 1, 0.25, 0.75, 0}, x.Data())
}

func TestReadCSV_NoHeader(t *testing.T) {
	x, err := ReadCSV(strings.NewReader("0.1,0.2\n0.3,0.4\n"))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, x.Shape())
	assert.InDelta(t, 0.1, x.At(0, 0), 1e-12)
}

func TestReadCSV_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		require.ErrorIs(t, err, train.ErrEmptyDataset)
	})
	t.Run("header only", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("a,b\n"))
		require.ErrorIs(t, err, train.ErrEmptyDataset)
	})
	t.Run("out of range", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("0.1,2\n"))
		require.ErrorIs(t, err, ErrInvalidData)
		assert.Contains(t, err.Error(), "row 1, column 2")
	})
	t.Run("not a number", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("0.1,0.2\n0.3,x\n"))
		require.ErrorIs(t, err, ErrInvalidData)
	})
	t.Run("ragged", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("0.1,0.2\n0.3\n"))
		require.ErrorIs(t, err, ErrInvalidData)
	})
	t.Run("nan", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("NaN,0.2\n"))
		require.ErrorIs(t, err, ErrInvalidData)
	})
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n0,1\n1,0\n0.5,0.5\n"), 0o600))

	x, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, x.Shape())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	x, err := Synthetic(10, 3, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	trainX, valX, err := Split(x, 0.2, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Equal(t, 8, trainX.Rows())
	require.NotNil(t, valX)
	assert.Equal(t, 2, valX.Rows())

	seen := map[float64]bool{}
	for _, part := range []*tensor.Tensor{trainX, valX} {
		for i := 0; i < part.Rows(); i++ {
			seen[part.At(i, 0)] = true
		}
	}
	assert.Len(t, seen, 10, "every row lands in exactly one split")

	trainX, valX, err = Split(x, 0, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Equal(t, 10, trainX.Rows())
	assert.Nil(t, valX)

	one, err := tensor.FromRows([][]float64{{0.5}, {0.5}})
	require.NoError(t, err)
	trainX, valX, err = Split(one, 0.9, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Equal(t, 1, trainX.Rows())
	assert.Equal(t, 1, valX.Rows())

	_, _, err = Split(x, 1, rand.New(rand.NewSource(2)))
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestSynthetic(t *testing.T) {
	x, err := Synthetic(64, 13, 2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{64, 13}, x.Shape())
	for _, v := range x.Data() {
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	again, err := Synthetic(64, 13, 2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, x.Data(), again.Data(), "same seed, same data")

	_, err = Synthetic(0, 13, 2, rand.New(rand.NewSource(3)))
	require.ErrorIs(t, err, ErrInvalidData)
}
