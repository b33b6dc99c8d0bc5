package strategy

import (
	"github.com/quantlab/backtest/internal/indicator"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
)

const NameRSI = "rsi"

const (
	rsiOversold   = 30
	rsiOverbought = 70
)

var rsiWindowByStyle = map[types.InvestmentStyle]int{
	types.StyleAggressive: 7,
	types.StyleModerate:   14,
	types.StylePassive:    21,
}

// RSI buys when the index drops into oversold territory and sells when it
// climbs into overbought territory.
type RSI struct {
	window int
}

// NewRSI derives the lookback window from the style.
func NewRSI(opts Options) (*RSI, error) {
	window, ok := rsiWindowByStyle[opts.Style]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidStyle,
			"unknown investment style %q for %s strategy", opts.Style, NameRSI)
	}

	return &RSI{window: window}, nil
}

// Name implements Strategy.
func (s *RSI) Name() string {
	return NameRSI
}

// GenerateSignals implements Strategy.
func (s *RSI) GenerateSignals(series types.TimeSeries) (types.SignalSeries, error) {
	rsi, err := indicator.RSI(series.Closes(), s.window)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "rsi calculation failed", err)
	}

	signals := make(types.SignalSeries, len(series))

	for i := range series {
		switch {
		case !indicator.Defined(rsi[i]):
			signals[i] = types.SignalHold
		case rsi[i] < rsiOversold:
			signals[i] = types.SignalBuy
		case rsi[i] > rsiOverbought:
			signals[i] = types.SignalSell
		default:
			signals[i] = types.SignalHold
		}
	}

	return signals, nil
}
