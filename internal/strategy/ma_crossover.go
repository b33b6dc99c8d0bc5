package strategy

import (
	"github.com/quantlab/backtest/pkg/errors"
)

const NameMACrossover = "ma_crossover"

const (
	defaultShortWindow = 50
	defaultLongWindow  = 200
)

// NewMACrossover builds a crossover strategy with fixed windows, independent
// of the investment style. The windows default to 50/200 and can be
// overridden through the options.
func NewMACrossover(opts Options) (*SMACrossover, error) {
	shortWindow := opts.ShortWindow.TakeOr(defaultShortWindow)
	longWindow := opts.LongWindow.TakeOr(defaultLongWindow)

	if shortWindow <= 0 || longWindow <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow,
			"crossover windows must be positive, got %d/%d", shortWindow, longWindow)
	}

	if shortWindow >= longWindow {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow,
			"short window %d must be smaller than long window %d", shortWindow, longWindow)
	}

	return &SMACrossover{
		name:        NameMACrossover,
		shortWindow: shortWindow,
		longWindow:  longWindow,
	}, nil
}
