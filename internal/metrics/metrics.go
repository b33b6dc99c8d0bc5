// Package metrics derives scalar performance figures from a finished
// simulation: final valuation, the passive buy-and-hold benchmark, return on
// investment, and the Sharpe ratio.
package metrics

import "math"

// FinalValue is the portfolio valuation at the last bar: cash plus holdings
// marked at the final close.
func FinalValue(cash float64, holdings int64, lastClose float64) float64 {
	return cash + float64(holdings)*lastClose
}

// BuyAndHold is the benchmark value of spending the whole initial capital on
// the first bar and holding to the last. Integer share rounding is
// deliberately ignored.
func BuyAndHold(initialCapital, firstClose, lastClose float64) float64 {
	return initialCapital / firstClose * lastClose
}

// ROI is the fractional return on the initial capital.
func ROI(initialCapital, finalValue float64) float64 {
	return (finalValue - initialCapital) / initialCapital
}

// Returns computes the bar-over-bar simple returns of a close series. The
// result has one fewer element than the input.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}

	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}

	return returns
}

// SharpeRatio is the mean excess return over the risk-free rate divided by
// the sample standard deviation of the excess returns. It is NaN when fewer
// than two returns are available or when the returns have zero variance;
// callers treat NaN as "undefined", not as an error.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}

	var mean float64
	for _, r := range returns {
		mean += r - riskFreeRate
	}

	mean /= float64(len(returns))

	var sq float64

	for _, r := range returns {
		d := (r - riskFreeRate) - mean
		sq += d * d
	}

	std := math.Sqrt(sq / float64(len(returns)-1))
	if std == 0 {
		return math.NaN()
	}

	return mean / std
}
