// Package datasource loads historical price series from disk. The DuckDB
// implementation exposes CSV and Parquet files through a single SQL view so
// that both formats share one read path.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/internal/types"
)

// DataSource provides ordered access to a historical price record.
type DataSource interface {
	// Initialize points the data source at a market data file. It must be
	// called before any read.
	Initialize(path string) error
	// ReadRange returns the bars inside the optional closed time range,
	// ordered ascending by timestamp.
	ReadRange(start, end optional.Option[time.Time]) (types.TimeSeries, error)
	// ReadAll streams bars inside the optional closed time range in
	// timestamp order, yielding each bar to the caller.
	ReadAll(start, end optional.Option[time.Time]) func(yield func(types.PriceBar, error) bool)
	// Count returns the number of bars inside the optional closed time range.
	Count(start, end optional.Option[time.Time]) (int, error)
	// Close releases the underlying resources.
	Close() error
}
