package strategy

import (
	"github.com/quantlab/backtest/internal/indicator"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
)

const NameVWAP = "vwap"

var vwapWindowByStyle = map[types.InvestmentStyle]int{
	types.StyleAggressive: 30,
	types.StyleModerate:   50,
	types.StylePassive:    100,
}

// VWAP buys while the close trades above the rolling volume-weighted average
// price and sells while it trades below.
type VWAP struct {
	window int
}

// NewVWAP derives the rolling window from the style.
func NewVWAP(opts Options) (*VWAP, error) {
	window, ok := vwapWindowByStyle[opts.Style]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidStyle,
			"unknown investment style %q for %s strategy", opts.Style, NameVWAP)
	}

	return &VWAP{window: window}, nil
}

// Name implements Strategy.
func (s *VWAP) Name() string {
	return NameVWAP
}

// GenerateSignals implements Strategy.
func (s *VWAP) GenerateSignals(series types.TimeSeries) (types.SignalSeries, error) {
	vwap, err := indicator.VWAP(series.Closes(), series.Volumes(), s.window)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "vwap calculation failed", err)
	}

	signals := make(types.SignalSeries, len(series))

	for i, bar := range series {
		switch {
		case !indicator.Defined(vwap[i]):
			signals[i] = types.SignalHold
		case bar.Close > vwap[i]:
			signals[i] = types.SignalBuy
		case bar.Close < vwap[i]:
			signals[i] = types.SignalSell
		default:
			signals[i] = types.SignalHold
		}
	}

	return signals, nil
}
