package strategy

import (
	"github.com/quantlab/backtest/internal/indicator"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
)

const NameMACD = "macd"

type macdParams struct {
	shortSpan  int
	longSpan   int
	signalSpan int
}

var macdParamsByStyle = map[types.InvestmentStyle]macdParams{
	types.StyleAggressive: {shortSpan: 12, longSpan: 26, signalSpan: 9},
	types.StyleModerate:   {shortSpan: 12, longSpan: 26, signalSpan: 9},
	types.StylePassive:    {shortSpan: 24, longSpan: 52, signalSpan: 18},
}

// MACD buys while the MACD line sits above its signal line and sells while
// it sits below.
type MACD struct {
	shortSpan  int
	longSpan   int
	signalSpan int
}

// NewMACD derives the EMA spans from the style. Aggressive and moderate
// share the conventional 12/26/9 spans; passive doubles them.
func NewMACD(opts Options) (*MACD, error) {
	params, ok := macdParamsByStyle[opts.Style]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidStyle,
			"unknown investment style %q for %s strategy", opts.Style, NameMACD)
	}

	return &MACD{
		shortSpan:  params.shortSpan,
		longSpan:   params.longSpan,
		signalSpan: params.signalSpan,
	}, nil
}

// Name implements Strategy.
func (s *MACD) Name() string {
	return NameMACD
}

// GenerateSignals implements Strategy.
func (s *MACD) GenerateSignals(series types.TimeSeries) (types.SignalSeries, error) {
	result, err := indicator.MACD(series.Closes(), s.shortSpan, s.longSpan, s.signalSpan)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "macd calculation failed", err)
	}

	signals := make(types.SignalSeries, len(series))

	for i := range series {
		switch {
		// The seeded EMAs are numerically defined from the first bar, but the
		// lines carry no information until the long span has elapsed.
		case i < s.longSpan:
			signals[i] = types.SignalHold
		case !indicator.Defined(result.MACD[i]) || !indicator.Defined(result.SignalLine[i]):
			signals[i] = types.SignalHold
		case result.MACD[i] > result.SignalLine[i]:
			signals[i] = types.SignalBuy
		case result.MACD[i] < result.SignalLine[i]:
			signals[i] = types.SignalSell
		default:
			signals[i] = types.SignalHold
		}
	}

	return signals, nil
}
