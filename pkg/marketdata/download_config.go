package marketdata

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quantlab/backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DownloadConfig describes a single download job.
type DownloadConfig struct {
	Ticker    string `yaml:"ticker" json:"ticker" jsonschema:"title=Ticker,description=The trading symbol to download data for (e.g. SPY),required" validate:"required"`
	StartDate string `yaml:"start_date" json:"start_date" jsonschema:"title=Start Date,description=Start date in RFC3339 format,format=date-time,required" validate:"required"`
	EndDate   string `yaml:"end_date" json:"end_date" jsonschema:"title=End Date,description=End date in RFC3339 format,format=date-time,required" validate:"required"`
	Timespan  string `yaml:"timespan" json:"timespan" jsonschema:"title=Timespan,description=Bar resolution,required,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=1d,enum=1w" validate:"required,oneof=1m 5m 15m 30m 1h 1d 1w"`
	Output    string `yaml:"output" json:"output" jsonschema:"title=Output,description=Destination file with a .csv or .parquet extension,required" validate:"required"`
	ApiKey    string `yaml:"api_key" json:"api_key" jsonschema:"title=API Key,description=Polygon.io API key for authentication,required" validate:"required"`
}

// Validate checks field constraints and date formats.
func (c *DownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid download configuration", err)
	}

	start, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid start_date, expected RFC3339", err)
	}

	// An unset timestamp flag formats as the zero time and would otherwise
	// slip past the required check.
	if start.IsZero() {
		return errors.New(errors.ErrCodeInvalidConfiguration, "start_date is not set")
	}

	end, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid end_date, expected RFC3339", err)
	}

	if end.Before(start) {
		return errors.New(errors.ErrCodeInvalidDateRange, "end_date is before start_date")
	}

	return nil
}

// DateRange returns the parsed start and end dates. Validate must have
// succeeded beforehand.
func (c *DownloadConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid start_date", err)
	}

	end, err = time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid end_date", err)
	}

	return start, end, nil
}

// ParseDownloadConfig decodes and validates a YAML download config.
func ParseDownloadConfig(data []byte) (DownloadConfig, error) {
	var config DownloadConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return DownloadConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse download configuration", err)
	}

	if err := config.Validate(); err != nil {
		return DownloadConfig{}, err
	}

	return config, nil
}
