package indicator

import (
	"math"

	"github.com/quantlab/backtest/pkg/errors"
)

// VWAP computes the rolling volume-weighted average of close prices:
// the trailing-window sum of close*volume divided by the trailing-window sum
// of volume. The first window-1 positions are undefined, as is any position
// whose window carries zero total volume.
func VWAP(closes, volumes []float64, window int) ([]float64, error) {
	if err := validateWindow("VWAP", window); err != nil {
		return nil, err
	}

	if len(closes) != len(volumes) {
		return nil, errors.Newf(errors.ErrCodeMalformedSeries,
			"close and volume series lengths differ: %d vs %d", len(closes), len(volumes))
	}

	out := nanSlice(len(closes))

	var weightedSum, volumeSum float64

	for i := range closes {
		weightedSum += closes[i] * volumes[i]
		volumeSum += volumes[i]

		if i >= window {
			weightedSum -= closes[i-window] * volumes[i-window]
			volumeSum -= volumes[i-window]
		}

		if i >= window-1 {
			if volumeSum == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = weightedSum / volumeSum
			}
		}
	}

	return out, nil
}
