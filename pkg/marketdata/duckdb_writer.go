package marketdata

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
)

// DuckDBWriter buffers bars in an in-memory DuckDB table and exports them on
// Finalize. The output format follows the path extension: .csv produces a
// headered CSV file, .parquet a Parquet file; both are readable by the
// backtester's data source.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a writer exporting to outputPath.
func NewDuckDBWriter(outputPath string) (MarketDataWriter, error) {
	name := strings.ToLower(outputPath)
	if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".parquet") {
		return nil, errors.Newf(errors.ErrCodeMarketDataWriteFailed,
			"unsupported output format for %q, expected .csv or .parquet", outputPath)
	}

	return &DuckDBWriter{outputPath: outputPath}, nil
}

// Initialize implements MarketDataWriter.
func (w *DuckDBWriter) Initialize() error {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open writer database", err)
	}
	w.db = db

	if _, err := w.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_bars (
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`); err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create price_bars table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO price_bars (time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare insert statement", err)
	}

	return nil
}

// Write implements MarketDataWriter.
func (w *DuckDBWriter) Write(bar types.PriceBar) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(bar.Time, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert price bar", err)
	}

	return nil
}

// Finalize implements MarketDataWriter. It commits the buffered bars and
// exports them ordered by timestamp.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit price bars", err)
	}
	w.tx = nil
	w.stmt = nil

	format := "FORMAT PARQUET"
	if strings.HasSuffix(strings.ToLower(w.outputPath), ".csv") {
		format = "FORMAT CSV, HEADER"
	}

	// COPY has no placeholder support, so the path is inlined.
	query := fmt.Sprintf(`
		COPY (SELECT time, open, high, low, close, volume FROM price_bars ORDER BY time ASC)
		TO '%s' (%s)
	`, strings.ReplaceAll(w.outputPath, "'", "''"), format)

	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to export price bars", err)
	}

	return w.outputPath, nil
}

// Close implements MarketDataWriter.
func (w *DuckDBWriter) Close() error {
	if w.stmt != nil {
		w.stmt.Close()
		w.stmt = nil
	}
	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}
	if w.db != nil {
		err := w.db.Close()
		w.db = nil

		return err
	}

	return nil
}

// GetOutputPath implements MarketDataWriter.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
