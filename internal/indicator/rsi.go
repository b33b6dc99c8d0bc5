package indicator

import "math"

// RSI computes the relative strength index over a rolling window of
// day-over-day close deltas. Gains and losses are averaged with a plain
// rolling mean. The first window positions are undefined because the delta
// at position 0 does not exist. When the average loss is zero the index
// saturates at 100; when both averages are zero the value is undefined.
func RSI(values []float64, window int) ([]float64, error) {
	if err := validateWindow("RSI", window); err != nil {
		return nil, err
	}

	out := nanSlice(len(values))
	if len(values) < window+1 {
		return out, nil
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	for i := window; i < len(values); i++ {
		var gainSum, lossSum float64
		for j := i - window + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}

		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)

		switch {
		case avgLoss == 0 && avgGain == 0:
			out[i] = math.NaN()
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}

	return out, nil
}
