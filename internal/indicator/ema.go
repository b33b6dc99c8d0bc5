package indicator

// EMA computes the exponential moving average of values with the given span.
// The smoothing factor is 2/(span+1) and the series is seeded by the first
// observation, so every position is defined.
func EMA(values []float64, span int) ([]float64, error) {
	if err := validateWindow("EMA", span); err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out, nil
}
