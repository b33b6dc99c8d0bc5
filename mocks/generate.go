package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/quantlab/backtest/internal/datasource DataSource
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/quantlab/backtest/internal/strategy Strategy
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/quantlab/backtest/pkg/marketdata MarketDataWriter
