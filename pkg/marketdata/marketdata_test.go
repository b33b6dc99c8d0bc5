package marketdata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/quantlab/backtest/internal/datasource"
	"github.com/quantlab/backtest/internal/logger"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/quantlab/backtest/pkg/marketdata"
	"github.com/stretchr/testify/suite"
)

type MarketDataTestSuite struct {
	suite.Suite
}

func TestMarketDataSuite(t *testing.T) {
	suite.Run(t, new(MarketDataTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func (suite *MarketDataTestSuite) TestNewProvider() {
	provider, err := marketdata.NewProvider(marketdata.ProviderPolygon, "test-key")
	suite.NoError(err)
	suite.NotNil(provider)
}

func (suite *MarketDataTestSuite) TestNewProviderUnknownType() {
	_, err := marketdata.NewProvider("yahoo", "test-key")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func (suite *MarketDataTestSuite) TestNewPolygonProviderRequiresKey() {
	_, err := marketdata.NewPolygonProvider("")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func (suite *MarketDataTestSuite) TestDownloadWithoutWriter() {
	provider, err := marketdata.NewPolygonProvider("test-key")
	suite.Require().NoError(err)

	_, err = provider.Download(context.Background(), "SPY", day(1), day(2), marketdata.TimespanOneDay, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}

func (suite *MarketDataTestSuite) TestDownloadRejectsUnknownTimespan() {
	provider, err := marketdata.NewPolygonProvider("test-key")
	suite.Require().NoError(err)

	writer, err := marketdata.NewDuckDBWriter(filepath.Join(suite.T().TempDir(), "out.csv"))
	suite.Require().NoError(err)
	provider.ConfigWriter(writer)

	_, err = provider.Download(context.Background(), "SPY", day(1), day(2), "3d", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}

func (suite *MarketDataTestSuite) TestDownloadRejectsInvertedDateRange() {
	provider, err := marketdata.NewPolygonProvider("test-key")
	suite.Require().NoError(err)

	writer, err := marketdata.NewDuckDBWriter(filepath.Join(suite.T().TempDir(), "out.csv"))
	suite.Require().NoError(err)
	provider.ConfigWriter(writer)

	_, err = provider.Download(context.Background(), "SPY", day(2), day(1), marketdata.TimespanOneDay, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidDateRange))
}

func (suite *MarketDataTestSuite) TestTimespans() {
	suite.True(marketdata.TimespanOneDay.Valid())
	suite.False(marketdata.Timespan("3d").Valid())

	suite.Equal(5, marketdata.TimespanFiveMinutes.Multiplier())
	suite.Equal(1, marketdata.TimespanOneDay.Multiplier())
	suite.Equal(models.Minute, marketdata.TimespanFiveMinutes.Timespan())
	suite.Equal(models.Day, marketdata.TimespanOneDay.Timespan())
	suite.Equal(models.Week, marketdata.TimespanOneWeek.Timespan())
}

func (suite *MarketDataTestSuite) TestDuckDBWriterRejectsUnknownFormat() {
	_, err := marketdata.NewDuckDBWriter("out.json")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
}

func (suite *MarketDataTestSuite) TestDuckDBWriterRoundTrip() {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")

	writer, err := marketdata.NewDuckDBWriter(path)
	suite.Require().NoError(err)
	suite.Equal(path, writer.GetOutputPath())
	suite.Require().NoError(writer.Initialize())

	bars := []types.PriceBar{
		{Time: day(1), Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
		{Time: day(2), Open: 100.5, High: 103, Low: 100, Close: 102, Volume: 1500},
	}
	for _, bar := range bars {
		suite.Require().NoError(writer.Write(bar))
	}

	outputPath, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(path, outputPath)
	suite.Require().NoError(writer.Close())

	// The exported file must be readable by the backtester's data source.
	source, err := datasource.NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer source.Close()

	suite.Require().NoError(source.Initialize(outputPath))

	series, err := source.ReadRange(optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(series, 2)
	suite.Equal(100.5, series[0].Close)
	suite.Equal(102.0, series[1].Close)
	suite.Equal(1500.0, series[1].Volume)
}

func (suite *MarketDataTestSuite) TestWriteBeforeInitialize() {
	writer, err := marketdata.NewDuckDBWriter(filepath.Join(suite.T().TempDir(), "bars.csv"))
	suite.Require().NoError(err)

	err = writer.Write(types.PriceBar{Time: day(1), Close: 100})
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
}

func (suite *MarketDataTestSuite) TestParseDownloadConfig() {
	config, err := marketdata.ParseDownloadConfig([]byte(`
ticker: SPY
start_date: 2024-01-01T00:00:00Z
end_date: 2024-06-30T00:00:00Z
timespan: 1d
output: data/SPY.csv
api_key: secret
`))
	suite.Require().NoError(err)
	suite.Equal("SPY", config.Ticker)

	start, end, err := config.DateRange()
	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	suite.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), end)
}

func (suite *MarketDataTestSuite) TestParseDownloadConfigErrors() {
	tests := []struct {
		name string
		yaml string
		code errors.ErrorCode
	}{
		{
			name: "missing ticker",
			yaml: "start_date: 2024-01-01T00:00:00Z\nend_date: 2024-06-30T00:00:00Z\ntimespan: 1d\noutput: out.csv\napi_key: secret\n",
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "bad timespan",
			yaml: "ticker: SPY\nstart_date: 2024-01-01T00:00:00Z\nend_date: 2024-06-30T00:00:00Z\ntimespan: 3d\noutput: out.csv\napi_key: secret\n",
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "bad date",
			yaml: "ticker: SPY\nstart_date: January 1st\nend_date: 2024-06-30T00:00:00Z\ntimespan: 1d\noutput: out.csv\napi_key: secret\n",
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "zero start date",
			yaml: "ticker: SPY\nstart_date: 0001-01-01T00:00:00Z\nend_date: 2024-06-30T00:00:00Z\ntimespan: 1d\noutput: out.csv\napi_key: secret\n",
			code: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "inverted range",
			yaml: "ticker: SPY\nstart_date: 2024-06-30T00:00:00Z\nend_date: 2024-01-01T00:00:00Z\ntimespan: 1d\noutput: out.csv\napi_key: secret\n",
			code: errors.ErrCodeInvalidDateRange,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := marketdata.ParseDownloadConfig([]byte(tc.yaml))
			suite.Error(err)
			suite.True(errors.HasCode(err, tc.code))
		})
	}
}

func (suite *MarketDataTestSuite) TestWriterCloseWithoutFinalizeDiscards() {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")

	writer, err := marketdata.NewDuckDBWriter(path)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(types.PriceBar{Time: day(1), Open: 1, High: 1, Low: 1, Close: 1, Volume: 1}))
	suite.Require().NoError(writer.Close())

	_, err = os.Stat(path)
	suite.True(os.IsNotExist(err))
}
