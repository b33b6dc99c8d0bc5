// Package indicator implements the rolling and exponential statistics the
// signal generators are built on. Every function is pure: it reads its input
// slices, allocates its result, and never touches shared state, so multiple
// strategies can compute indicators over the same series concurrently.
//
// Positions where a rolling computation lacks enough trailing history carry
// math.NaN(). Callers translate NaN into a hold signal, never into a trade.
package indicator

import (
	"math"

	"github.com/quantlab/backtest/pkg/errors"
)

func validateWindow(name string, window int) error {
	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidWindow,
			"%s window must be a positive integer, got %d", name, window)
	}

	return nil
}

// Defined reports whether an indicator value is defined at a position.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}
