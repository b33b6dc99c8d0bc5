// Package marketdata downloads historical price bars from external
// providers and persists them in the formats the backtester reads.
package marketdata

import (
	"context"
	"time"

	"github.com/quantlab/backtest/pkg/errors"
)

// ProviderType identifies a market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
)

// AllProviders lists every supported provider.
var AllProviders = []ProviderType{ProviderPolygon}

// OnDownloadProgress reports download progress to the caller.
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider downloads historical bars for a ticker and hands them to a
// configured writer.
type Provider interface {
	// ConfigWriter sets the destination the downloaded bars are written to.
	ConfigWriter(writer MarketDataWriter)
	// Download fetches bars for the ticker between startDate and endDate at
	// the given resolution and returns the path the writer produced.
	Download(ctx context.Context, ticker string, startDate, endDate time.Time, timespan Timespan, onProgress OnDownloadProgress) (path string, err error)
}

// NewProvider creates a provider of the given type.
func NewProvider(providerType ProviderType, apiKey string) (Provider, error) {
	switch providerType {
	case ProviderPolygon:
		return NewPolygonProvider(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider,
			"unsupported market data provider %q, expected one of %v", providerType, AllProviders)
	}
}
