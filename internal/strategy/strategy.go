// Package strategy implements the signal generators. A strategy is anything
// that can turn a price series into an aligned signal series; no further
// contract is required. Each shipped variant derives its indicator windows
// from the configured investment style at construction time, so an invalid
// style fails before any signal is generated.
package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/internal/types"
)

// Strategy is the capability interface every signal generator implements.
// GenerateSignals must be total and must not mutate the input series: it
// returns a newly allocated signal series of the same length, where
// positions with insufficient indicator history are holds.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string
	// GenerateSignals computes one signal per bar of the series.
	GenerateSignals(series types.TimeSeries) (types.SignalSeries, error)
}

// Options carries the per-run strategy configuration: the investment style
// the windows are derived from, and optional explicit window overrides for
// the variants that accept them.
type Options struct {
	Style       types.InvestmentStyle
	ShortWindow optional.Option[int]
	LongWindow  optional.Option[int]
}
