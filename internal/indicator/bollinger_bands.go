package indicator

// Bands holds the three Bollinger band series. All three share the same
// undefined prefix of window-1 positions.
type Bands struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// BollingerBands computes the moving average band plus/minus stdDevs
// population standard deviations, both over the same trailing window.
func BollingerBands(values []float64, window int, stdDevs float64) (Bands, error) {
	middle, err := SMA(values, window)
	if err != nil {
		return Bands{}, err
	}

	std, err := RollingStd(values, window)
	if err != nil {
		return Bands{}, err
	}

	upper := make([]float64, len(values))
	lower := make([]float64, len(values))

	for i := range values {
		upper[i] = middle[i] + stdDevs*std[i]
		lower[i] = middle[i] - stdDevs*std[i]
	}

	return Bands{Middle: middle, Upper: upper, Lower: lower}, nil
}
