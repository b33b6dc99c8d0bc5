package indicator

import "github.com/quantlab/backtest/pkg/errors"

// MACDResult holds the MACD line and its signal line. Both are defined from
// the first bar onward since they are built from seeded EMAs.
type MACDResult struct {
	MACD       []float64
	SignalLine []float64
}

// MACD computes EMA(shortSpan) - EMA(longSpan) and smooths the difference
// with EMA(signalSpan) to produce the signal line.
func MACD(values []float64, shortSpan, longSpan, signalSpan int) (MACDResult, error) {
	if shortSpan >= longSpan {
		return MACDResult{}, errors.Newf(errors.ErrCodeInvalidWindow,
			"MACD short span %d must be smaller than long span %d", shortSpan, longSpan)
	}

	emaShort, err := EMA(values, shortSpan)
	if err != nil {
		return MACDResult{}, err
	}

	emaLong, err := EMA(values, longSpan)
	if err != nil {
		return MACDResult{}, err
	}

	macd := make([]float64, len(values))
	for i := range values {
		macd[i] = emaShort[i] - emaLong[i]
	}

	signalLine, err := EMA(macd, signalSpan)
	if err != nil {
		return MACDResult{}, err
	}

	return MACDResult{MACD: macd, SignalLine: signalLine}, nil
}
