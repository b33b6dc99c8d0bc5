package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/internal/logger"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"go.uber.org/zap"
)

// requiredColumns are the fields every market data file must provide.
var requiredColumns = []string{"time", "open", "high", "low", "close", "volume"}

type DuckDBDataSource struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewDataSource opens a DuckDB database at path; use ":memory:" for an
// ephemeral one. Initialize must be called afterwards to attach a data file.
func NewDataSource(path string, log *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open database", err)
	}

	return &DuckDBDataSource{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. The file format is inferred from the
// extension: .csv and .csv.gz go through read_csv_auto, .parquet through
// read_parquet.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.log.Debug("initializing data source", zap.String("path", path))

	reader, err := readerFunction(path)
	if err != nil {
		return err
	}

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS price_bars;`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// CREATE VIEW has no placeholder support, so the path is inlined.
	query := fmt.Sprintf(`CREATE VIEW price_bars AS SELECT * FROM %s('%s');`, reader, strings.ReplaceAll(path, "'", "''"))
	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrap(errors.ErrCodeDataNotFound, fmt.Sprintf("failed to read market data from %s", path), err)
	}

	return d.checkColumns()
}

func readerFunction(path string) (string, error) {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".csv"), strings.HasSuffix(name, ".csv.gz"):
		return "read_csv_auto", nil
	case strings.HasSuffix(name, ".parquet"):
		return "read_parquet", nil
	default:
		return "", errors.Newf(errors.ErrCodeDataNotFound,
			"unsupported market data format %q, expected .csv, .csv.gz or .parquet", filepath.Ext(path))
	}
}

// checkColumns verifies the view exposes every required field.
func (d *DuckDBDataSource) checkColumns() error {
	rows, err := d.db.Query(`SELECT column_name FROM (DESCRIBE price_bars)`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to describe price_bars", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan column name", err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to list columns", err)
	}

	for _, column := range requiredColumns {
		if !present[column] {
			return errors.Newf(errors.ErrCodeMissingField, "market data is missing required column %q", column)
		}
	}

	return nil
}

func (d *DuckDBDataSource) rangeQuery(start, end optional.Option[time.Time]) squirrel.SelectBuilder {
	query := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("price_bars").
		OrderBy("time ASC")

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}
	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	return query
}

// ReadRange implements DataSource.
func (d *DuckDBDataSource) ReadRange(start, end optional.Option[time.Time]) (types.TimeSeries, error) {
	rows, err := d.rangeQuery(start, end).RunWith(d.db).Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price bars", err)
	}
	defer rows.Close()

	var series types.TimeSeries
	for rows.Next() {
		bar, err := scanBar(rows)
		if err != nil {
			return nil, err
		}
		series = append(series, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read price bars", err)
	}

	return series, nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start, end optional.Option[time.Time]) func(yield func(types.PriceBar, error) bool) {
	return func(yield func(types.PriceBar, error) bool) {
		rows, err := d.rangeQuery(start, end).RunWith(d.db).Query()
		if err != nil {
			yield(types.PriceBar{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price bars", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			bar, err := scanBar(rows)
			if !yield(bar, err) || err != nil {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(types.PriceBar{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read price bars", err))
		}
	}
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start, end optional.Option[time.Time]) (int, error) {
	query := d.sq.
		Select("COUNT(*)").
		From("price_bars")

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}
	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	var count int
	if err := query.RunWith(d.db).QueryRow().Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count price bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func scanBar(rows *sql.Rows) (types.PriceBar, error) {
	var bar types.PriceBar
	err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume)
	if err != nil {
		return types.PriceBar{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan price bar", err)
	}

	return bar, nil
}
