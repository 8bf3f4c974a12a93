package pw

import (
	"fmt"
	"math/bits"
)

// MaxUniformGridPoints bounds the number of points UniformGrid will expand.
const MaxUniformGridPoints = 1 << 20

// CheckUniformGrid reports an *InputError of kind ErrorKindKPointGrid when nk
// has a zero dimension or expands to more than MaxUniformGridPoints points.
func CheckUniformGrid(nk [3]uint64) error {
	if err := uniformGridError(nk); err != nil {
		return err
	}
	return nil
}

func uniformGridError(nk [3]uint64) *InputError {
	if _, ok := uniformGridSize(nk); ok {
		return nil
	}
	return &InputError{
		Kind:  ErrorKindKPointGrid,
		Label: fmt.Sprintf("%dx%dx%d", nk[0], nk[1], nk[2]),
	}
}

func uniformGridSize(nk [3]uint64) (uint64, bool) {
	hi, total := bits.Mul64(nk[0], nk[1])
	if hi != 0 {
		return 0, false
	}
	hi, total = bits.Mul64(total, nk[2])
	if hi != 0 || total == 0 || total > MaxUniformGridPoints {
		return 0, false
	}
	return total, true
}

// UniformGrid expands an n0 x n1 x n2 grid into an explicit list of
// (k1, k2, k3, weight) in crystal coordinates. Component i of each point is
// index_i / n_i, so coordinates lie in [0, 1). The first index varies slowest
// and the third fastest. Every point has weight 1/N for N = n0*n1*n2.
//
// It returns nil for any grid CheckUniformGrid rejects.
func UniformGrid(nk [3]uint64) [][4]float64 {
	total, ok := uniformGridSize(nk)
	if !ok {
		return nil
	}

	weight := 1 / float64(total)
	points := make([][4]float64, 0, total)

	for i0 := uint64(0); i0 < nk[0]; i0++ {
		for i1 := uint64(0); i1 < nk[1]; i1++ {
			for i2 := uint64(0); i2 < nk[2]; i2++ {
				points = append(points, [4]float64{
					float64(i0) / float64(nk[0]),
					float64(i1) / float64(nk[1]),
					float64(i2) / float64(nk[2]),
					weight,
				})
			}
		}
	}

	return points
}
