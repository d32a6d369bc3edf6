// axpy.go - AXPY-Kernel: y += alpha * x
package kernels

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/ollama/aggregates/types/errtypes"
)

// Axpy computes y[i] += alpha*x[i] in place. x is read only. y is left
// untouched when the lengths differ. NaN and Inf follow IEEE arithmetic.
func Axpy(alpha float32, x, y []float32) error {
	if len(x) != len(y) {
		return fmt.Errorf("axpy: len(x)=%d len(y)=%d: %w", len(x), len(y), errtypes.ErrLengthMismatch)
	}

	if len(y) == 0 {
		return nil
	}

	// blas32 returns early for alpha == 0, which would drop 0*Inf and 0*NaN
	if alpha == 0 {
		for i, v := range x {
			y[i] += alpha * v
		}
		return nil
	}

	blas32.Axpy(alpha, vec(x), vec(y))
	return nil
}
