package types

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/pkg/errors"
)

// PriceBar is a single OHLCV observation of the historical price record.
type PriceBar struct {
	Time   time.Time `csv:"time" yaml:"time" json:"time"`
	Open   float64   `csv:"open" yaml:"open" json:"open"`
	High   float64   `csv:"high" yaml:"high" json:"high"`
	Low    float64   `csv:"low" yaml:"low" json:"low"`
	Close  float64   `csv:"close" yaml:"close" json:"close"`
	Volume float64   `csv:"volume" yaml:"volume" json:"volume"`
}

// TimeSeries is an ordered sequence of price bars, sorted ascending by
// timestamp with no duplicates. It is constructed once by a data source and
// only read afterwards; strategies and the simulator never mutate it.
type TimeSeries []PriceBar

// Closes returns the close price of every bar as a new slice.
func (s TimeSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}

	return closes
}

// Volumes returns the volume of every bar as a new slice.
func (s TimeSeries) Volumes() []float64 {
	volumes := make([]float64, len(s))
	for i, bar := range s {
		volumes[i] = bar.Volume
	}

	return volumes
}

// Validate checks the structural invariants of the series: timestamps are
// strictly increasing and prices/volume are non-negative.
func (s TimeSeries) Validate() error {
	for i, bar := range s {
		if bar.Open < 0 || bar.High < 0 || bar.Low < 0 || bar.Close < 0 || bar.Volume < 0 {
			return errors.Newf(errors.ErrCodeMalformedSeries,
				"bar %d at %s has a negative price or volume", i, bar.Time.Format(time.RFC3339))
		}

		if i > 0 && !s[i-1].Time.Before(bar.Time) {
			return errors.Newf(errors.ErrCodeMalformedSeries,
				"bar %d at %s is not strictly after its predecessor %s",
				i, bar.Time.Format(time.RFC3339), s[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

// FilterRange returns the bars whose timestamp falls inside the closed
// interval [start, end]. Either bound may be None. The receiver is left
// untouched; the result shares no backing storage with it.
func (s TimeSeries) FilterRange(start, end optional.Option[time.Time]) TimeSeries {
	filtered := make(TimeSeries, 0, len(s))

	for _, bar := range s {
		if start.IsSome() && bar.Time.Before(start.Unwrap()) {
			continue
		}

		if end.IsSome() && bar.Time.After(end.Unwrap()) {
			continue
		}

		filtered = append(filtered, bar)
	}

	return filtered
}
