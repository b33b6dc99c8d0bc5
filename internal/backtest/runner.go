package backtest

import (
	"context"

	"github.com/quantlab/backtest/internal/datasource"
	"github.com/quantlab/backtest/internal/types"
)

// RunFromSource reads the configured period from the data source and
// simulates it. The source decides how the bars are stored; the simulator
// only sees an ordered series.
func (s *Simulator) RunFromSource(ctx context.Context, config Config, source datasource.DataSource) (types.BacktestResult, error) {
	if err := config.Validate(); err != nil {
		return types.BacktestResult{}, err
	}

	series, err := source.ReadRange(config.StartTime, config.EndTime)
	if err != nil {
		return types.BacktestResult{}, err
	}

	return s.Run(ctx, config, series)
}
