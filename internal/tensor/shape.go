package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// An empty Shape is a scalar.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes are identical.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Strides returns row-major strides: stride[i] is the product of all
// dimensions after i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// BroadcastShapes applies NumPy broadcasting rules to a and b.
//
// Shapes are aligned from the right; two dimensions are compatible when they
// are equal or one of them is 1. Missing leading dimensions count as 1.
//
//	(3, 1) + (3, 5) → (3, 5)
//	(5)    + (3, 5) → (3, 5)
//	(3, 4) + (3, 5) → error
func BroadcastShapes(a, b Shape) (Shape, error) {
	n := max(len(a), len(b))
	out := make(Shape, n)

	for i := 0; i < n; i++ {
		ad, bd := dimFromRight(a, i), dimFromRight(b, i)
		switch {
		case ad == bd, bd == 1:
			out[n-1-i] = ad
		case ad == 1:
			out[n-1-i] = bd
		default:
			return nil, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v", a, b)
		}
	}

	return out, nil
}

func dimFromRight(s Shape, i int) int {
	idx := len(s) - 1 - i
	if idx < 0 {
		return 1
	}
	return s[idx]
}

// BroadcastStrides returns strides that map an index in target onto a tensor
// of shape s, with stride 0 on broadcast dimensions.
// s must be broadcast-compatible with target.
func BroadcastStrides(s, target Shape) []int {
	own := s.Strides()
	out := make([]int, len(target))
	offset := len(target) - len(s)
	for i := range target {
		j := i - offset
		if j < 0 || s[j] == 1 {
			continue
		}
		out[i] = own[j]
	}
	return out
}
