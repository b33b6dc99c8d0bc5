package backtest

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes a single backtest run.
type Config struct {
	InitialCapital   float64                    `yaml:"initial_capital" json:"initial_capital" validate:"required,gt=0" jsonschema:"title=Initial Capital,description=Starting cash for the simulation in USD,minimum=0"`
	Style            types.InvestmentStyle      `yaml:"style" json:"style" validate:"required" jsonschema:"title=Investment Style,description=Risk profile controlling strategy windows and trade sizing"`
	Strategy         string                     `yaml:"strategy" json:"strategy" validate:"required" jsonschema:"title=Strategy,description=Registered strategy name to generate signals with"`
	ShortWindow      optional.Option[int]       `yaml:"short_window" json:"short_window" jsonschema:"title=Short Window,description=Optional short moving average window override"`
	LongWindow       optional.Option[int]       `yaml:"long_window" json:"long_window" jsonschema:"title=Long Window,description=Optional long moving average window override"`
	StartTime        optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional inclusive start of the simulated period"`
	EndTime          optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional inclusive end of the simulated period"`
	ComputeBenchmark bool                       `yaml:"compute_benchmark" json:"compute_benchmark" jsonschema:"title=Compute Benchmark,description=Whether to compute the buy-and-hold benchmark value"`
	RiskFreeRate     float64                    `yaml:"risk_free_rate" json:"risk_free_rate" validate:"gte=0" jsonschema:"title=Risk Free Rate,description=Per-period risk free rate used by the Sharpe ratio"`
}

// UnmarshalYAML implements custom unmarshaling so that absent optional
// fields decode to None rather than zero values.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		InitialCapital   float64               `yaml:"initial_capital"`
		Style            types.InvestmentStyle `yaml:"style"`
		Strategy         string                `yaml:"strategy"`
		ShortWindow      *int                  `yaml:"short_window"`
		LongWindow       *int                  `yaml:"long_window"`
		StartTime        *time.Time            `yaml:"start_time"`
		EndTime          *time.Time            `yaml:"end_time"`
		ComputeBenchmark *bool                 `yaml:"compute_benchmark"`
		RiskFreeRate     float64               `yaml:"risk_free_rate"`
	}

	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}

	c.InitialCapital = p.InitialCapital
	c.Style = p.Style
	c.Strategy = p.Strategy
	c.RiskFreeRate = p.RiskFreeRate

	c.ShortWindow = optional.None[int]()
	if p.ShortWindow != nil {
		c.ShortWindow = optional.Some(*p.ShortWindow)
	}
	c.LongWindow = optional.None[int]()
	if p.LongWindow != nil {
		c.LongWindow = optional.Some(*p.LongWindow)
	}
	c.StartTime = optional.None[time.Time]()
	if p.StartTime != nil {
		c.StartTime = optional.Some(*p.StartTime)
	}
	c.EndTime = optional.None[time.Time]()
	if p.EndTime != nil {
		c.EndTime = optional.Some(*p.EndTime)
	}

	// Benchmark defaults to on when the key is absent.
	c.ComputeBenchmark = true
	if p.ComputeBenchmark != nil {
		c.ComputeBenchmark = *p.ComputeBenchmark
	}

	return nil
}

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest configuration", err)
	}

	if _, err := types.TradingParamsFor(c.Style); err != nil {
		return err
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidDateRange, "end_time is before start_time")
	}

	return nil
}

// ParseConfig decodes and validates a YAML config document.
func ParseConfig(data []byte) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest configuration", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads a YAML config from disk.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read backtest configuration", err)
	}

	return ParseConfig(data)
}

// EmptyConfig returns a Config with every optional field unset.
func EmptyConfig() Config {
	return Config{
		ShortWindow:      optional.None[int](),
		LongWindow:       optional.None[int](),
		StartTime:        optional.None[time.Time](),
		EndTime:          optional.None[time.Time](),
		ComputeBenchmark: true,
	}
}

// GenerateSchema builds the JSON schema describing Config documents.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t.String() {
			case "optional.Option[time.Time]":
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			case "optional.Option[int]":
				return &jsonschema.Schema{
					Type: "integer",
				}
			case "types.InvestmentStyle":
				enum := make([]any, 0, len(types.AllStyles))
				for _, style := range types.AllStyles {
					enum = append(enum, string(style))
				}
				return &jsonschema.Schema{
					Type: "string",
					Enum: enum,
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-config"
	schema.Description = "Configuration schema for a backtest run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON renders the config schema as indented JSON.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal config schema", err)
	}

	return string(schemaBytes), nil
}
