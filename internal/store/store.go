// Package store persists cleaned bars and generated signals in DuckDB.
//
// Bars are truly idempotent: the table is keyed by (symbol, trade_date) and
// writes replace on conflict, so re-ingesting an identical batch leaves the
// table unchanged. Signals only look idempotent: every insert key mixes in
// a wall-clock timestamp, so the conflict clause never fires and re-runs
// accumulate duplicate rows. See SignalStoreV1.
package store

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// DB wraps the DuckDB handle shared by the stores.
type DB struct {
	conn   *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// Open opens (or creates) the DuckDB database at path. Use ":memory:" for
// an ephemeral database.
func Open(path string, log *logger.Logger) (*DB, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreInitFailed, err, "opening duckdb at %s failed", path)
	}

	return &DB{
		conn:   conn,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the tables if they do not exist.
func (d *DB) Initialize() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			symbol TEXT NOT NULL,
			trade_date DATE NOT NULL,
			open_price DOUBLE NOT NULL,
			high_price DOUBLE NOT NULL,
			low_price DOUBLE NOT NULL,
			close_price DOUBLE NOT NULL,
			adjusted_close DOUBLE NOT NULL,
			volume BIGINT NOT NULL,
			data_source TEXT,
			PRIMARY KEY (symbol, trade_date)
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "creating market_data table failed", err)
	}

	_, err = d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS trading_signals (
			signal_id TEXT PRIMARY KEY,
			insert_id TEXT UNIQUE NOT NULL,
			strategy_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			signal_date DATE NOT NULL,
			signal_type TEXT NOT NULL,
			price_at_signal DOUBLE NOT NULL,
			signal_strength DOUBLE NOT NULL,
			metadata TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "creating trading_signals table failed", err)
	}

	return nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if err := d.conn.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreClosed, "closing duckdb failed", err)
	}

	return nil
}
