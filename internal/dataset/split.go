package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/tabae/internal/tensor"
)

// Split shuffles the rows of x and holds out round(fraction * rows) of them
// for validation. A fraction that rounds to zero rows returns a nil
// validation tensor. At least one training row always remains.
func Split(x *tensor.Tensor, fraction float64, rng *rand.Rand) (trainX, valX *tensor.Tensor, err error) {
	if fraction < 0 || fraction >= 1 || math.IsNaN(fraction) {
		return nil, nil, fmt.Errorf("%w: validation fraction must be in [0, 1), got %v", ErrInvalidData, fraction)
	}
	n := x.Rows()
	nVal := int(math.Round(fraction * float64(n)))
	if nVal >= n {
		nVal = n - 1
	}
	perm := rng.Perm(n)
	if nVal <= 0 {
		return x.Gather(perm), nil, nil
	}
	return x.Gather(perm[nVal:]), x.Gather(perm[:nVal]), nil
}
