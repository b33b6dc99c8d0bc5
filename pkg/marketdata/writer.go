package marketdata

import "github.com/quantlab/backtest/internal/types"

// MarketDataWriter persists downloaded price bars to a destination the
// backtester can read back.
type MarketDataWriter interface {
	// Initialize sets up the writer, creating tables or files as needed.
	Initialize() error
	// Write persists a single price bar.
	Write(bar types.PriceBar) error
	// Finalize completes the writing process and returns the output path.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
