package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

var barColumns = []string{
	"symbol",
	"trade_date",
	"open_price",
	"high_price",
	"low_price",
	"close_price",
	"adjusted_close",
	"volume",
	"data_source",
}

// MarketDataStore reads and writes daily bars.
type MarketDataStore interface {
	// UpsertBars writes the bars, replacing any existing row with the same
	// (symbol, trade_date). It returns the number of rows written. A partial
	// failure reports the failed rows through errors.RowErrors.
	UpsertBars(ctx context.Context, bars []types.Bar) (int, error)
	// QueryBars returns the bars for symbol within dateRange, ordered by
	// trade date ascending.
	QueryBars(ctx context.Context, symbol string, dateRange types.DateRange) ([]types.Bar, error)
	// HasBars reports whether any bar exists for symbol.
	HasBars(ctx context.Context, symbol string) (bool, error)
	// LatestBarDate returns the most recent trade date stored for symbol,
	// or None when the symbol has no bars.
	LatestBarDate(ctx context.Context, symbol string) (optional.Option[time.Time], error)
	// Symbols returns the distinct symbols with stored bars, sorted.
	Symbols(ctx context.Context) ([]string, error)
}

// MarketDataStoreV1 implements MarketDataStore on DuckDB.
type MarketDataStoreV1 struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewMarketDataStore creates a MarketDataStore backed by db.
func NewMarketDataStore(db *DB) *MarketDataStoreV1 {
	return &MarketDataStoreV1{
		db:     db.conn,
		logger: db.logger,
		sq:     db.sq,
	}
}

func (s *MarketDataStoreV1) UpsertBars(ctx context.Context, bars []types.Bar) (int, error) {
	if len(bars) == 0 {
		s.logger.Warn("no bars to persist")
		return 0, nil
	}

	written := 0
	rowErrors := errors.RowErrors{}
	for _, bar := range bars {
		_, err := s.sq.Insert("market_data").
			Options("OR REPLACE").
			Columns(barColumns...).
			Values(
				bar.Symbol,
				bar.Date,
				bar.Open.InexactFloat64(),
				bar.High.InexactFloat64(),
				bar.Low.InexactFloat64(),
				bar.Close.InexactFloat64(),
				bar.AdjustedClose.InexactFloat64(),
				bar.Volume,
				bar.Source,
			).
			RunWith(s.db).
			ExecContext(ctx)
		if err != nil {
			rowErrors[bar.Key()] = err
			continue
		}
		written++
	}

	if len(rowErrors) > 0 {
		return written, errors.Wrapf(errors.ErrCodeStoreWriteFailed, rowErrors,
			"upserting %d of %d bars failed", len(rowErrors), len(bars))
	}

	s.logger.Debug("upserted bars",
		zap.Int("count", written),
		zap.String("symbol", bars[0].Symbol),
	)

	return written, nil
}

func (s *MarketDataStoreV1) QueryBars(ctx context.Context, symbol string, dateRange types.DateRange) ([]types.Bar, error) {
	builder := s.sq.Select(barColumns...).
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("trade_date ASC")
	if dateRange.Start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"trade_date": dateRange.Start.Unwrap()})
	}
	if dateRange.End.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"trade_date": dateRange.End.Unwrap()})
	}

	rows, err := builder.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "querying bars for %s failed", symbol)
	}
	defer rows.Close()

	bars := []types.Bar{}
	for rows.Next() {
		var (
			bar        types.Bar
			date       time.Time
			open       float64
			high       float64
			low        float64
			closePrice float64
			adjusted   float64
			source     sql.NullString
		)
		if err := rows.Scan(&bar.Symbol, &date, &open, &high, &low, &closePrice, &adjusted, &bar.Volume, &source); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "scanning bar for %s failed", symbol)
		}
		bar.Date = types.DateOnly(date.UTC())
		bar.Open = decimal.NewFromFloat(open)
		bar.High = decimal.NewFromFloat(high)
		bar.Low = decimal.NewFromFloat(low)
		bar.Close = decimal.NewFromFloat(closePrice)
		bar.AdjustedClose = decimal.NewFromFloat(adjusted)
		bar.Source = source.String
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "reading bars for %s failed", symbol)
	}

	return bars, nil
}

func (s *MarketDataStoreV1) HasBars(ctx context.Context, symbol string) (bool, error) {
	var count int64
	err := s.sq.Select("COUNT(*)").
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "counting bars for %s failed", symbol)
	}

	return count > 0, nil
}

func (s *MarketDataStoreV1) LatestBarDate(ctx context.Context, symbol string) (optional.Option[time.Time], error) {
	var latest sql.NullTime
	err := s.sq.Select("MAX(trade_date)").
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&latest)
	if err != nil {
		return optional.None[time.Time](), errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "querying latest bar date for %s failed", symbol)
	}
	if !latest.Valid {
		return optional.None[time.Time](), nil
	}

	return optional.Some(types.DateOnly(latest.Time.UTC())), nil
}

func (s *MarketDataStoreV1) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.sq.Select("DISTINCT symbol").
		From("market_data").
		OrderBy("symbol ASC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "listing symbols failed", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "scanning symbol failed", err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "reading symbols failed", err)
	}

	return symbols, nil
}
