// Package tensor provides the dense float64 tensor used by every layer of
// the autoencoder stack, and the Backend interface compute implementations
// satisfy.
//
// Tensors are contiguous and row-major. Most tensors in this module are
// matrices of shape [batch, features]; reductions may produce vectors and
// scalars (an empty Shape).
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a dense, row-major float64 array.
//
// A Tensor's pointer identity matters: the gradient tape keys gradients by
// *Tensor, so parameters must keep the same Tensor for their lifetime and
// update its data in place.
type Tensor struct {
	shape Shape
	data  []float64
}

// New allocates a zero-filled tensor.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)
	return t, nil
}

// FromRows creates a [len(rows), width] matrix from row slices.
// Every row must have the same, non-zero width.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("from rows: no rows")
	}
	width := len(rows[0])
	t, err := New(Shape{len(rows), width})
	if err != nil {
		return nil, fmt.Errorf("from rows: %w", err)
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("from rows: row %d has %d values, want %d", i, len(row), width)
		}
		copy(t.data[i*width:], row)
	}
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying storage.
//
// WARNING: the slice aliases the tensor; writes modify it.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Rows returns the size of the leading dimension (1 for scalars).
func (t *Tensor) Rows() int {
	if len(t.shape) == 0 {
		return 1
	}
	return t.shape[0]
}

// Cols returns the size of the second dimension of a matrix.
// Panics if the tensor is not 2D.
func (t *Tensor) Cols() int {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Cols() requires a 2D tensor, got shape %v", t.shape))
	}
	return t.shape[1]
}

// Item returns the value of a single-element tensor.
func (t *Tensor) Item() float64 {
	if len(t.data) != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given indices.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set sets the element at the given indices.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}
	off := 0
	strides := t.shape.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		off += idx * strides[i]
	}
	return off
}

// Row returns a copy of row i of a matrix.
func (t *Tensor) Row(i int) []float64 {
	cols := t.Cols()
	row := make([]float64, cols)
	copy(row, t.data[i*cols:(i+1)*cols])
	return row
}

// ToRows copies a matrix into row slices.
func (t *Tensor) ToRows() [][]float64 {
	rows := make([][]float64, t.Rows())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Gather returns a new matrix made of the given rows, in order.
// Used to assemble shuffled mini-batches.
func (t *Tensor) Gather(rows []int) *Tensor {
	cols := t.Cols()
	out := &Tensor{
		shape: Shape{len(rows), cols},
		data:  make([]float64, len(rows)*cols),
	}
	for i, r := range rows {
		if r < 0 || r >= t.shape[0] {
			panic(fmt.Sprintf("gather: row %d out of bounds (rows=%d)", r, t.shape[0]))
		}
		copy(out.data[i*cols:(i+1)*cols], t.data[r*cols:(r+1)*cols])
	}
	return out
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// WithShape returns a tensor that shares t's data under a new shape with the
// same number of elements.
func (t *Tensor) WithShape(shape Shape) *Tensor {
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("reshape: cannot view %v as %v", t.shape, shape))
	}
	return &Tensor{shape: shape.Clone(), data: t.data}
}

// String returns a short human-readable description.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor%v", []int(t.shape))
	if len(t.data) <= 8 {
		fmt.Fprintf(&sb, " %v", t.data)
	}
	return sb.String()
}
