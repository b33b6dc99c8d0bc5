package types

import "github.com/quantlab/backtest/pkg/errors"

// InvestmentStyle is a named risk profile. It controls both indicator
// sensitivity (each strategy derives its windows from it) and position
// sizing (the trading parameters consumed by the simulator).
type InvestmentStyle string

const (
	StyleAggressive InvestmentStyle = "aggressive"
	StyleModerate   InvestmentStyle = "moderate"
	StylePassive    InvestmentStyle = "passive"
)

// AllStyles lists every recognized investment style.
var AllStyles = []InvestmentStyle{
	StyleAggressive,
	StyleModerate,
	StylePassive,
}

// TradingParams is the position-sizing half of an investment style.
type TradingParams struct {
	// TradeFraction is the proportion of available cash committed to a
	// single buy.
	TradeFraction float64 `yaml:"trade_fraction" json:"trade_fraction"`
	// MinSignalStrength is the threshold a buy signal must meet before the
	// simulator acts on it.
	MinSignalStrength float64 `yaml:"min_signal_strength" json:"min_signal_strength"`
}

var tradingParamsByStyle = map[InvestmentStyle]TradingParams{
	StyleAggressive: {TradeFraction: 1.0, MinSignalStrength: 0},
	StyleModerate:   {TradeFraction: 0.5, MinSignalStrength: 0.5},
	StylePassive:    {TradeFraction: 0.25, MinSignalStrength: 1.0},
}

// TradingParamsFor resolves the trading parameters of a style. A style
// outside the enumerated set is a configuration error, never a silently
// defaulted value.
func TradingParamsFor(style InvestmentStyle) (TradingParams, error) {
	params, ok := tradingParamsByStyle[style]
	if !ok {
		return TradingParams{}, errors.Newf(errors.ErrCodeInvalidStyle,
			"unknown investment style %q, expected one of %v", style, AllStyles)
	}

	return params, nil
}
