package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	s := Shape{2, 3, 4}
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.Strides())
	assert.True(t, s.Equal(Shape{2, 3, 4}))
	assert.False(t, s.Equal(Shape{2, 3}))

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 2, s[0], "clone must not alias")

	assert.Equal(t, 1, Shape{}.NumElements(), "scalar shape has one element")
	require.NoError(t, Shape{1, 5}.Validate())
	require.Error(t, Shape{3, 0}.Validate())
	require.Error(t, Shape{-1}.Validate())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Shape
		want    Shape
		wantErr bool
	}{
		{"same", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{"row vector", Shape{5}, Shape{3, 5}, Shape{3, 5}, false},
		{"scalar", Shape{}, Shape{2, 2}, Shape{2, 2}, false},
		{"both expand", Shape{3, 1}, Shape{1, 4}, Shape{3, 4}, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 1}, BroadcastStrides(Shape{1, 4}, Shape{3, 4}))
	assert.Equal(t, []int{1, 0}, BroadcastStrides(Shape{3, 1}, Shape{3, 4}))
	assert.Equal(t, []int{0, 1}, BroadcastStrides(Shape{4}, Shape{3, 4}))
	assert.Equal(t, []int{0, 0}, BroadcastStrides(Shape{}, Shape{3, 4}))
}

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	x, err := FromSlice(data, Shape{2, 3})
	require.NoError(t, err)

	data[0] = 100
	assert.Equal(t, 1.0, x.At(0, 0), "FromSlice copies its input")
	assert.Equal(t, 6.0, x.At(1, 2))
	assert.Equal(t, 2, x.Rows())
	assert.Equal(t, 3, x.Cols())

	_, err = FromSlice(data, Shape{4, 2})
	require.Error(t, err)
}

func TestFromRows(t *testing.T) {
	x, err := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, x.Shape())
	assert.Equal(t, []float64{3, 4}, x.Row(1))
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, x.ToRows())

	_, err = FromRows(nil)
	require.Error(t, err)
	_, err = FromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	_, err = FromRows([][]float64{{}})
	require.Error(t, err, "zero-width rows are not a valid matrix")
}

func TestSetAndIndexing(t *testing.T) {
	x := Zeros(Shape{2, 2})
	x.Set(7, 1, 0)
	assert.Equal(t, []float64{0, 0, 7, 0}, x.Data())

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
	assert.Panics(t, func() { Scalar(1).Cols() })
	assert.Panics(t, func() { x.Item() })
	assert.Equal(t, 3.5, Scalar(3.5).Item())
}

func TestGather(t *testing.T) {
	x, err := FromRows([][]float64{{1, 1}, {2, 2}, {3, 3}})
	require.NoError(t, err)

	g := x.Gather([]int{2, 0, 2})
	assert.Equal(t, [][]float64{{3, 3}, {1, 1}, {3, 3}}, g.ToRows())

	g.Set(-1, 0, 0)
	assert.Equal(t, 3.0, x.At(2, 0), "gather copies")
	assert.Panics(t, func() { x.Gather([]int{3}) })
}

func TestCloneAndWithShape(t *testing.T) {
	x := Full(Shape{2, 3}, 2)
	c := x.Clone()
	c.Data()[0] = 0
	assert.Equal(t, 2.0, x.Data()[0])

	v := x.WithShape(Shape{3, 2})
	v.Data()[0] = 5
	assert.Equal(t, 5.0, x.Data()[0], "WithShape shares storage")
	assert.Panics(t, func() { x.WithShape(Shape{4}) })
}

func TestRandn(t *testing.T) {
	a := Randn(Shape{4, 3}, rand.New(rand.NewSource(1)))
	b := Randn(Shape{4, 3}, rand.New(rand.NewSource(1)))
	assert.Equal(t, a.Data(), b.Data(), "same seed, same draws")

	c := Randn(Shape{4, 3}, rand.New(rand.NewSource(2)))
	assert.NotEqual(t, a.Data(), c.Data())
}

func TestCreationHelpers(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, Ones(Shape{3}).Data())
	assert.Equal(t, []float64{0.5, 0.5}, Full(Shape{1, 2}, 0.5).Data())
	assert.Panics(t, func() { Zeros(Shape{0}) })
	assert.Contains(t, Scalar(1).String(), "Tensor[]")
}
