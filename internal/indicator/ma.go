package indicator

import "math"

// SMA computes the simple moving average of values over a trailing window.
// The first window-1 positions are undefined.
func SMA(values []float64, window int) ([]float64, error) {
	if err := validateWindow("SMA", window); err != nil {
		return nil, err
	}

	out := nanSlice(len(values))

	var sum float64

	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}

	return out, nil
}

// RollingStd computes the population standard deviation of values over a
// trailing window. The first window-1 positions are undefined.
func RollingStd(values []float64, window int) ([]float64, error) {
	if err := validateWindow("RollingStd", window); err != nil {
		return nil, err
	}

	out := nanSlice(len(values))

	for i := window - 1; i < len(values); i++ {
		var mean float64
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}

		mean /= float64(window)

		var sq float64

		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			sq += d * d
		}

		out[i] = math.Sqrt(sq / float64(window))
	}

	return out, nil
}
