package marketdata

import "github.com/polygon-io/client-go/rest/models"

// Timespan is the bar resolution of a download.
type Timespan string

const (
	TimespanOneMinute      Timespan = "1m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanOneDay         Timespan = "1d"
	TimespanOneWeek        Timespan = "1w"
)

// AllTimespans lists every supported bar resolution.
var AllTimespans = []Timespan{
	TimespanOneMinute,
	TimespanFiveMinutes,
	TimespanFifteenMinutes,
	TimespanThirtyMinutes,
	TimespanOneHour,
	TimespanOneDay,
	TimespanOneWeek,
}

// Valid reports whether the timespan is one of the supported resolutions.
func (t Timespan) Valid() bool {
	for _, known := range AllTimespans {
		if t == known {
			return true
		}
	}

	return false
}

// Multiplier returns the aggregate multiplier for the provider request.
func (t Timespan) Multiplier() int {
	switch t {
	case TimespanFiveMinutes:
		return 5
	case TimespanFifteenMinutes:
		return 15
	case TimespanThirtyMinutes:
		return 30
	default:
		return 1
	}
}

// Timespan returns the provider-level unit of the resolution.
func (t Timespan) Timespan() models.Timespan {
	switch t {
	case TimespanOneMinute, TimespanFiveMinutes, TimespanFifteenMinutes, TimespanThirtyMinutes:
		return models.Minute
	case TimespanOneHour:
		return models.Hour
	case TimespanOneWeek:
		return models.Week
	default:
		return models.Day
	}
}
