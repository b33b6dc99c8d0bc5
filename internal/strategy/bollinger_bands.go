package strategy

import (
	"github.com/quantlab/backtest/internal/indicator"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
)

const NameBollingerBands = "bollinger"

type bollingerParams struct {
	window  int
	stdDevs float64
}

var bollingerParamsByStyle = map[types.InvestmentStyle]bollingerParams{
	types.StyleAggressive: {window: 14, stdDevs: 1.5},
	types.StyleModerate:   {window: 20, stdDevs: 2},
	types.StylePassive:    {window: 30, stdDevs: 2.5},
}

// BollingerBands buys when the close drops below the lower band and sells
// when it rises above the upper band.
type BollingerBands struct {
	window  int
	stdDevs float64
}

// NewBollingerBands derives the band window and width from the style.
func NewBollingerBands(opts Options) (*BollingerBands, error) {
	params, ok := bollingerParamsByStyle[opts.Style]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidStyle,
			"unknown investment style %q for %s strategy", opts.Style, NameBollingerBands)
	}

	return &BollingerBands{
		window:  params.window,
		stdDevs: params.stdDevs,
	}, nil
}

// Name implements Strategy.
func (s *BollingerBands) Name() string {
	return NameBollingerBands
}

// GenerateSignals implements Strategy.
func (s *BollingerBands) GenerateSignals(series types.TimeSeries) (types.SignalSeries, error) {
	bands, err := indicator.BollingerBands(series.Closes(), s.window, s.stdDevs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "bollinger bands calculation failed", err)
	}

	signals := make(types.SignalSeries, len(series))

	for i, bar := range series {
		switch {
		case !indicator.Defined(bands.Lower[i]) || !indicator.Defined(bands.Upper[i]):
			signals[i] = types.SignalHold
		case bar.Close < bands.Lower[i]:
			signals[i] = types.SignalBuy
		case bar.Close > bands.Upper[i]:
			signals[i] = types.SignalSell
		default:
			signals[i] = types.SignalHold
		}
	}

	return signals, nil
}
