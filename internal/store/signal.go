package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

var signalColumns = []string{
	"signal_id",
	"insert_id",
	"strategy_id",
	"symbol",
	"signal_date",
	"signal_type",
	"price_at_signal",
	"signal_strength",
	"metadata",
}

// SignalStore reads and writes trading signals.
type SignalStore interface {
	// InsertSignals writes the signals and returns the number of rows
	// written. Each row carries an insert key of the form
	// symbol_date_strategyID_millis; because the millisecond suffix changes
	// on every call, re-inserting the same signals produces new rows rather
	// than conflicts. A partial failure reports the failed rows through
	// errors.RowErrors.
	InsertSignals(ctx context.Context, signals []types.Signal) (int, error)
	// QuerySignals returns the signals for symbol within dateRange, ordered
	// by signal date ascending. An empty strategyID matches all strategies.
	QuerySignals(ctx context.Context, symbol string, strategyID string, dateRange types.DateRange) ([]types.Signal, error)
	// Summary counts the stored signals for symbol by type. An empty
	// strategyID matches all strategies.
	Summary(ctx context.Context, symbol string, strategyID string) (map[types.SignalType]int, error)
}

// SignalStoreV1 implements SignalStore on DuckDB.
type SignalStoreV1 struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
	now    func() time.Time
}

// NewSignalStore creates a SignalStore backed by db.
func NewSignalStore(db *DB) *SignalStoreV1 {
	return NewSignalStoreWithClock(db, time.Now)
}

// NewSignalStoreWithClock creates a SignalStore whose insert keys derive
// their millisecond suffix from now. Intended for tests.
func NewSignalStoreWithClock(db *DB, now func() time.Time) *SignalStoreV1 {
	return &SignalStoreV1{
		db:     db.conn,
		logger: db.logger,
		sq:     db.sq,
		now:    now,
	}
}

func (s *SignalStoreV1) InsertSignals(ctx context.Context, signals []types.Signal) (int, error) {
	if len(signals) == 0 {
		s.logger.Warn("no signals to persist")
		return 0, nil
	}

	written := 0
	skipped := 0
	rowErrors := errors.RowErrors{}
	for _, signal := range signals {
		metadata, err := json.Marshal(signal.Metadata)
		if err != nil {
			rowErrors[signal.Key()] = err
			continue
		}

		insertID := fmt.Sprintf("%s_%d", signal.Key(), s.now().UnixMilli())
		res, err := s.sq.Insert("trading_signals").
			Columns(signalColumns...).
			Values(
				uuid.New().String(),
				insertID,
				signal.StrategyID,
				signal.Symbol,
				signal.Date,
				string(signal.Type),
				signal.PriceAtSignal.InexactFloat64(),
				signal.Strength.InexactFloat64(),
				string(metadata),
			).
			Suffix("ON CONFLICT (insert_id) DO NOTHING").
			RunWith(s.db).
			ExecContext(ctx)
		if err != nil {
			rowErrors[signal.Key()] = err
			continue
		}

		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			skipped++
			continue
		}
		written++
	}

	if len(rowErrors) > 0 {
		return written, errors.Wrapf(errors.ErrCodeStoreWriteFailed, rowErrors,
			"inserting %d of %d signals failed", len(rowErrors), len(signals))
	}

	s.logger.Debug("inserted signals",
		zap.Int("written", written),
		zap.Int("skipped", skipped),
	)

	return written, nil
}

func (s *SignalStoreV1) QuerySignals(ctx context.Context, symbol string, strategyID string, dateRange types.DateRange) ([]types.Signal, error) {
	builder := s.sq.Select(
		"strategy_id",
		"symbol",
		"signal_date",
		"signal_type",
		"price_at_signal",
		"signal_strength",
		"metadata",
	).
		From("trading_signals").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("signal_date ASC")
	if strategyID != "" {
		builder = builder.Where(squirrel.Eq{"strategy_id": strategyID})
	}
	if dateRange.Start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"signal_date": dateRange.Start.Unwrap()})
	}
	if dateRange.End.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"signal_date": dateRange.End.Unwrap()})
	}

	rows, err := builder.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "querying signals for %s failed", symbol)
	}
	defer rows.Close()

	signals := []types.Signal{}
	for rows.Next() {
		var (
			signal     types.Signal
			date       time.Time
			signalType string
			price      float64
			strength   float64
			metadata   sql.NullString
		)
		if err := rows.Scan(&signal.StrategyID, &signal.Symbol, &date, &signalType, &price, &strength, &metadata); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "scanning signal for %s failed", symbol)
		}
		signal.Date = types.DateOnly(date.UTC())
		signal.Type = types.SignalType(signalType)
		signal.PriceAtSignal = decimal.NewFromFloat(price)
		signal.Strength = decimal.NewFromFloat(strength)
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &signal.Metadata); err != nil {
				return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "decoding signal metadata for %s failed", symbol)
			}
		}
		signals = append(signals, signal)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "reading signals for %s failed", symbol)
	}

	return signals, nil
}

func (s *SignalStoreV1) Summary(ctx context.Context, symbol string, strategyID string) (map[types.SignalType]int, error) {
	builder := s.sq.Select("signal_type", "COUNT(*)").
		From("trading_signals").
		Where(squirrel.Eq{"symbol": symbol}).
		GroupBy("signal_type")
	if strategyID != "" {
		builder = builder.Where(squirrel.Eq{"strategy_id": strategyID})
	}

	rows, err := builder.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "summarizing signals for %s failed", symbol)
	}
	defer rows.Close()

	summary := map[types.SignalType]int{}
	for rows.Next() {
		var (
			signalType string
			count      int
		)
		if err := rows.Scan(&signalType, &count); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "scanning signal summary for %s failed", symbol)
		}
		summary[types.SignalType(signalType)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "reading signal summary for %s failed", symbol)
	}

	return summary, nil
}
