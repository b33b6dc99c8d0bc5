package types

import "math"

// Signal is a per-bar trading intent. The sign carries the direction and the
// magnitude carries the strength: +1 is a full-conviction buy, -1 a
// full-conviction sell, 0 a hold. Strategies may emit fractional strengths;
// the simulator compares them against the style's minimum signal strength.
type Signal float64

const (
	// SignalBuy is a full-strength buy signal.
	SignalBuy Signal = 1
	// SignalHold is a no-action signal.
	SignalHold Signal = 0
	// SignalSell is a full-strength sell signal.
	SignalSell Signal = -1
)

// IsBuy reports whether the signal points in the buy direction.
func (s Signal) IsBuy() bool {
	return s > 0
}

// IsSell reports whether the signal points in the sell direction.
func (s Signal) IsSell() bool {
	return s < 0
}

// Strength returns the magnitude of the signal regardless of direction.
func (s Signal) Strength() float64 {
	return math.Abs(float64(s))
}

// SignalSeries is a sequence of signals index-aligned one-to-one with the
// TimeSeries it was generated from.
type SignalSeries []Signal
