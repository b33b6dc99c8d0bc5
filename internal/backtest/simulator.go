// Package backtest runs trading strategies against historical price series.
// It wires together the strategy registry, the portfolio state machine and
// the metrics calculator into a single deterministic simulation: same data,
// same config, same result.
package backtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quantlab/backtest/internal/logger"
	"github.com/quantlab/backtest/internal/metrics"
	"github.com/quantlab/backtest/internal/strategy"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"go.uber.org/zap"
)

// ProgressCallback is invoked after each processed bar with the number of
// bars consumed so far and the total.
type ProgressCallback func(current, total int)

// Simulator executes backtest runs.
type Simulator struct {
	registry   *strategy.Registry
	log        *logger.Logger
	onProgress ProgressCallback
	dataPath   string
}

// NewSimulator creates a simulator backed by the given strategy registry.
func NewSimulator(registry *strategy.Registry, log *logger.Logger) *Simulator {
	return &Simulator{
		registry: registry,
		log:      log,
	}
}

// SetProgressCallback registers a callback reporting per-bar progress.
func (s *Simulator) SetProgressCallback(callback ProgressCallback) {
	s.onProgress = callback
}

// SetDataPath records the origin of the market data for the result summary.
func (s *Simulator) SetDataPath(path string) {
	s.dataPath = path
}

// Run simulates a single strategy over the series and returns the result
// summary. The input series is never mutated.
func (s *Simulator) Run(ctx context.Context, config Config, series types.TimeSeries) (types.BacktestResult, error) {
	if err := config.Validate(); err != nil {
		return types.BacktestResult{}, err
	}
	if err := series.Validate(); err != nil {
		return types.BacktestResult{}, err
	}

	bars := series.FilterRange(config.StartTime, config.EndTime)
	if len(bars) == 0 {
		return types.BacktestResult{}, errors.New(errors.ErrCodeEmptyDataset, "no price bars in the configured period")
	}

	params, err := types.TradingParamsFor(config.Style)
	if err != nil {
		return types.BacktestResult{}, err
	}

	strat, err := s.registry.Create(config.Strategy, strategy.Options{
		Style:       config.Style,
		ShortWindow: config.ShortWindow,
		LongWindow:  config.LongWindow,
	})
	if err != nil {
		return types.BacktestResult{}, err
	}

	s.log.Info("starting backtest run",
		zap.String("strategy", strat.Name()),
		zap.String("style", string(config.Style)),
		zap.Float64("initial_capital", config.InitialCapital),
		zap.Int("bars", len(bars)))

	signals, err := strat.GenerateSignals(bars)
	if err != nil {
		return types.BacktestResult{}, err
	}
	if len(signals) != len(bars) {
		return types.BacktestResult{}, errors.Newf(errors.ErrCodeSignalGeneration,
			"strategy %s produced %d signals for %d bars", strat.Name(), len(signals), len(bars))
	}

	portfolio := NewPortfolio(config.InitialCapital)
	for i, bar := range bars {
		select {
		case <-ctx.Done():
			return types.BacktestResult{}, errors.Wrap(errors.ErrCodeSimulationFailed, "backtest cancelled", ctx.Err())
		default:
		}

		signal := signals[i]
		switch {
		case signal.IsBuy() && signal.Strength() >= params.MinSignalStrength:
			if _, err := portfolio.Buy(bar.Time, bar.Close, params.TradeFraction); err != nil {
				return types.BacktestResult{}, err
			}
		case signal.IsSell():
			if _, err := portfolio.Liquidate(bar.Time, bar.Close); err != nil {
				return types.BacktestResult{}, err
			}
		}

		if s.onProgress != nil {
			s.onProgress(i+1, len(bars))
		}
	}

	result := s.summarize(config, bars, portfolio)

	s.log.Info("backtest run finished",
		zap.String("id", result.ID),
		zap.Float64("final_value", result.FinalValue),
		zap.Float64("roi", result.ROI),
		zap.Int("trades", result.NumberOfTrades))

	return result, nil
}

func (s *Simulator) summarize(config Config, bars types.TimeSeries, portfolio *Portfolio) types.BacktestResult {
	closes := bars.Closes()
	lastClose := closes[len(closes)-1]

	finalValue := metrics.FinalValue(portfolio.Cash(), portfolio.Holdings(), lastClose)

	var benchmark float64
	if config.ComputeBenchmark {
		benchmark = metrics.BuyAndHold(config.InitialCapital, closes[0], lastClose)
	}

	trades := portfolio.Trades()

	return types.BacktestResult{
		ID:             uuid.New().String(),
		Timestamp:      time.Now().UTC(),
		Strategy:       config.Strategy,
		Style:          config.Style,
		InitialCapital: config.InitialCapital,
		FinalValue:     finalValue,
		BenchmarkValue: benchmark,
		ROI:            metrics.ROI(config.InitialCapital, finalValue),
		SharpeRatio:    metrics.SharpeRatio(metrics.Returns(closes), config.RiskFreeRate),
		NumberOfTrades: len(trades),
		DataPath:       s.dataPath,
		Trades:         trades,
	}
}
