package backtest

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/quantlab/backtest/internal/logger"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"go.uber.org/zap"
)

// TradeStore persists run summaries and their trade logs in DuckDB so that
// finished runs can be queried and compared after the fact.
type TradeStore struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewTradeStore opens a DuckDB database at path for run persistence; use
// ":memory:" for an ephemeral store.
func NewTradeStore(path string, log *logger.Logger) (*TradeStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to open trade store database", err)
	}

	return &TradeStore{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the runs and trades tables.
func (s *TradeStore) Initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			executed_at TIMESTAMP,
			strategy TEXT,
			style TEXT,
			initial_capital DOUBLE,
			final_value DOUBLE,
			benchmark_value DOUBLE,
			roi DOUBLE,
			sharpe_ratio DOUBLE,
			number_of_trades INTEGER,
			data_path TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to create runs table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			trade_id TEXT PRIMARY KEY,
			run_id TEXT,
			executed_at TIMESTAMP,
			side TEXT,
			quantity BIGINT,
			price DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to create trades table", err)
	}

	return nil
}

// RecordRun stores a run summary together with its trade log in a single
// transaction.
func (s *TradeStore) RecordRun(result types.BacktestResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to begin transaction", err)
	}

	insertRun := s.sq.
		Insert("runs").
		Columns(
			"run_id", "executed_at", "strategy", "style", "initial_capital",
			"final_value", "benchmark_value", "roi", "sharpe_ratio",
			"number_of_trades", "data_path",
		).
		Values(
			result.ID, result.Timestamp, result.Strategy, string(result.Style),
			result.InitialCapital, result.FinalValue, result.BenchmarkValue,
			result.ROI, result.SharpeRatio, result.NumberOfTrades, result.DataPath,
		).
		RunWith(tx)

	if _, err := insertRun.Exec(); err != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to insert run", err)
	}

	for _, trade := range result.Trades {
		insertTrade := s.sq.
			Insert("trades").
			Columns("trade_id", "run_id", "executed_at", "side", "quantity", "price").
			Values(trade.ID, result.ID, trade.Time, string(trade.Side), trade.Quantity, trade.Price).
			RunWith(tx)

		if _, err := insertTrade.Exec(); err != nil {
			tx.Rollback()
			return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to insert trade", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to commit run", err)
	}

	s.log.Debug("recorded run",
		zap.String("run_id", result.ID),
		zap.Int("trades", result.NumberOfTrades))

	return nil
}

// GetRun returns the summary of a stored run, without its trade log.
func (s *TradeStore) GetRun(runID string) (types.BacktestResult, error) {
	query := s.sq.
		Select(
			"run_id", "executed_at", "strategy", "style", "initial_capital",
			"final_value", "benchmark_value", "roi", "sharpe_ratio",
			"number_of_trades", "data_path",
		).
		From("runs").
		Where(squirrel.Eq{"run_id": runID}).
		RunWith(s.db)

	var (
		result types.BacktestResult
		style  string
	)
	err := query.QueryRow().Scan(
		&result.ID, &result.Timestamp, &result.Strategy, &style,
		&result.InitialCapital, &result.FinalValue, &result.BenchmarkValue,
		&result.ROI, &result.SharpeRatio, &result.NumberOfTrades, &result.DataPath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return types.BacktestResult{}, errors.Newf(errors.ErrCodeDataNotFound, "run %s not found", runID)
	}
	if err != nil {
		return types.BacktestResult{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query run", err)
	}
	result.Style = types.InvestmentStyle(style)

	return result, nil
}

// GetTrades returns the trade log of a stored run in execution order.
func (s *TradeStore) GetTrades(runID string) ([]types.TradeRecord, error) {
	query := s.sq.
		Select("trade_id", "executed_at", "side", "quantity", "price").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("executed_at ASC").
		RunWith(s.db)

	rows, err := query.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.TradeRecord
	for rows.Next() {
		var (
			trade types.TradeRecord
			side  string
			at    time.Time
		)
		if err := rows.Scan(&trade.ID, &at, &side, &trade.Quantity, &trade.Price); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}
		trade.Time = at
		trade.Side = types.PurchaseType(side)
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read trades", err)
	}

	return trades, nil
}

// RunStats are aggregates computed over a stored trade log.
type RunStats struct {
	BuyCount     int     `yaml:"buy_count" json:"buy_count"`
	SellCount    int     `yaml:"sell_count" json:"sell_count"`
	SharesBought int64   `yaml:"shares_bought" json:"shares_bought"`
	SharesSold   int64   `yaml:"shares_sold" json:"shares_sold"`
	AvgBuyPrice  float64 `yaml:"avg_buy_price" json:"avg_buy_price"`
	AvgSellPrice float64 `yaml:"avg_sell_price" json:"avg_sell_price"`
}

// GetRunStats aggregates the trade log of a stored run.
func (s *TradeStore) GetRunStats(runID string) (RunStats, error) {
	query := s.sq.
		Select(
			"COUNT(*) FILTER (WHERE side = 'BUY')",
			"COUNT(*) FILTER (WHERE side = 'SELL')",
			"COALESCE(SUM(quantity) FILTER (WHERE side = 'BUY'), 0)",
			"COALESCE(SUM(quantity) FILTER (WHERE side = 'SELL'), 0)",
			"COALESCE(AVG(price) FILTER (WHERE side = 'BUY'), 0)",
			"COALESCE(AVG(price) FILTER (WHERE side = 'SELL'), 0)",
		).
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		RunWith(s.db)

	var stats RunStats
	err := query.QueryRow().Scan(
		&stats.BuyCount, &stats.SellCount,
		&stats.SharesBought, &stats.SharesSold,
		&stats.AvgBuyPrice, &stats.AvgSellPrice,
	)
	if err != nil {
		return RunStats{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to aggregate trades", err)
	}

	return stats, nil
}

// Close releases the underlying database.
func (s *TradeStore) Close() error {
	return s.db.Close()
}
