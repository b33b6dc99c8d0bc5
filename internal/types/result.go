package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BacktestResult is the summary produced by one simulation run.
type BacktestResult struct {
	// ID is the unique identifier for this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Strategy is the name of the signal generator that drove the run.
	Strategy string `yaml:"strategy" json:"strategy"`
	// Style is the investment style the run was configured with.
	Style InvestmentStyle `yaml:"style" json:"style"`
	// InitialCapital is the cash the portfolio started with.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	// FinalValue is cash plus holdings at the last close.
	FinalValue float64 `yaml:"final_value" json:"final_value"`
	// BenchmarkValue is the buy-and-hold outcome over the same bars.
	// Zero when benchmark computation was disabled.
	BenchmarkValue float64 `yaml:"benchmark_value" json:"benchmark_value"`
	// ROI is (final - initial) / initial.
	ROI float64 `yaml:"roi" json:"roi"`
	// SharpeRatio is the risk-adjusted return of the price series.
	// NaN when the return series has zero variance.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// NumberOfTrades is the length of the trade log.
	NumberOfTrades int `yaml:"number_of_trades" json:"number_of_trades"`
	// DataPath is the market data file the run used, when known.
	DataPath string `yaml:"data_path,omitempty" json:"data_path,omitempty"`
	// Trades is the chronological trade log.
	Trades []TradeRecord `yaml:"trades" json:"trades"`
}

// WriteResult serializes results to a YAML file at the given path.
func WriteResult(path string, results []BacktestResult) error {
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest results to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest results to file: %w", err)
	}

	return nil
}
