package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/tabae/internal/tensor"
)

// noiseScale is the standard deviation of the per-cell noise added before
// squashing.
const noiseScale = 0.1

// Synthetic generates rows that lie near a latent-dimensional manifold:
// each row is sigmoid(z·W + b + noise) with z ~ N(0, I) of width latent and
// a fixed random mixing matrix W. Values are strictly inside (0, 1).
func Synthetic(rows, width, latent int, rng *rand.Rand) (*tensor.Tensor, error) {
	if rows <= 0 || width <= 0 || latent <= 0 {
		return nil, fmt.Errorf("%w: rows, width and latent must be positive, got %d, %d, %d",
			ErrInvalidData, rows, width, latent)
	}

	mix := make([]float64, latent*width)
	for i := range mix {
		mix[i] = rng.NormFloat64()
	}
	bias := make([]float64, width)
	for i := range bias {
		bias[i] = 0.5 * rng.NormFloat64()
	}

	data := make([]float64, rows*width)
	z := make([]float64, latent)
	for r := 0; r < rows; r++ {
		for k := range z {
			z[k] = rng.NormFloat64()
		}
		for c := 0; c < width; c++ {
			v := bias[c] + noiseScale*rng.NormFloat64()
			for k, zk := range z {
				v += zk * mix[k*width+c]
			}
			data[r*width+c] = 1 / (1 + math.Exp(-v))
		}
	}
	return tensor.FromSlice(data, tensor.Shape{rows, width})
}
