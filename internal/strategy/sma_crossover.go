package strategy

import (
	"github.com/quantlab/backtest/internal/indicator"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
)

const NameSMACrossover = "sma_crossover"

type smaWindows struct {
	short int
	long  int
}

var smaWindowsByStyle = map[types.InvestmentStyle]smaWindows{
	types.StyleAggressive: {short: 20, long: 50},
	types.StyleModerate:   {short: 50, long: 200},
	types.StylePassive:    {short: 100, long: 300},
}

// SMACrossover buys while the short moving average sits above the long one
// and sells while it sits below.
type SMACrossover struct {
	name        string
	shortWindow int
	longWindow  int
}

// NewSMACrossover derives the window pair from the style.
func NewSMACrossover(opts Options) (*SMACrossover, error) {
	windows, ok := smaWindowsByStyle[opts.Style]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidStyle,
			"unknown investment style %q for %s strategy", opts.Style, NameSMACrossover)
	}

	return &SMACrossover{
		name:        NameSMACrossover,
		shortWindow: windows.short,
		longWindow:  windows.long,
	}, nil
}

// Name implements Strategy.
func (s *SMACrossover) Name() string {
	return s.name
}

// GenerateSignals implements Strategy.
func (s *SMACrossover) GenerateSignals(series types.TimeSeries) (types.SignalSeries, error) {
	closes := series.Closes()

	short, err := indicator.SMA(closes, s.shortWindow)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "short moving average failed", err)
	}

	long, err := indicator.SMA(closes, s.longWindow)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "long moving average failed", err)
	}

	signals := make(types.SignalSeries, len(series))

	for i := range series {
		switch {
		case !indicator.Defined(short[i]) || !indicator.Defined(long[i]):
			signals[i] = types.SignalHold
		case short[i] > long[i]:
			signals[i] = types.SignalBuy
		case short[i] < long[i]:
			signals[i] = types.SignalSell
		default:
			signals[i] = types.SignalHold
		}
	}

	return signals, nil
}
