package marketdata

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

type PolygonProvider struct {
	client *polygon.Client
	writer MarketDataWriter
}

// NewPolygonProvider creates a provider backed by the Polygon.io REST API.
func NewPolygonProvider(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon provider requires an API key")
	}

	return &PolygonProvider{
		client: polygon.New(apiKey),
		writer: nil,
	}, nil
}

// ConfigWriter implements Provider.
func (p *PolygonProvider) ConfigWriter(writer MarketDataWriter) {
	p.writer = writer
}

// Download implements Provider.
func (p *PolygonProvider) Download(ctx context.Context, ticker string, startDate, endDate time.Time, timespan Timespan, onProgress OnDownloadProgress) (path string, err error) {
	if p.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataFetchFailed, "no writer configured, call ConfigWriter first")
	}
	if !timespan.Valid() {
		return "", errors.Newf(errors.ErrCodeMarketDataFetchFailed,
			"unsupported timespan %q, expected one of %v", timespan, AllTimespans)
	}
	if endDate.Before(startDate) {
		return "", errors.New(errors.ErrCodeInvalidDateRange, "end date is before start date")
	}

	if err = p.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	defer func() {
		if cerr := p.writer.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close writer", cerr)
		}
	}()

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", ticker)),
		progressbar.OptionShowCount())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: timespan.Multiplier(),
		Timespan:   timespan.Timespan(),
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(50000)

	iter := p.client.ListAggs(ctx, params)

	written := 0
	for iter.Next() {
		agg := iter.Item()
		priceBar := types.PriceBar{
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		}

		if err = p.writer.Write(priceBar); err != nil {
			return "", err
		}

		written++
		if written%1000 == 0 {
			daysElapsed := int(time.Time(agg.Timestamp).Sub(startDate).Hours() / 24)
			bar.Set(daysElapsed)

			if onProgress != nil {
				onProgress(float64(daysElapsed), float64(totalDays), fmt.Sprintf("Downloading %s", ticker))
			}
		}
	}

	if iter.Err() != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to iterate polygon aggregates", iter.Err())
	}

	bar.Finish()

	outputPath, err := p.writer.Finalize()
	if err != nil {
		return "", err
	}

	return outputPath, nil
}
