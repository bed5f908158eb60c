// Package service exposes signal generation over bars already persisted to
// the market data store. The REST layer and the signals CLI both sit on it.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/strategy"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// SignalService runs a strategy over stored bars and persists the result.
type SignalService struct {
	bars    store.MarketDataStore
	signals store.SignalStore
	logger  *logger.Logger
}

// NewSignalService creates a SignalService over the two stores.
func NewSignalService(bars store.MarketDataStore, signals store.SignalStore, log *logger.Logger) *SignalService {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &SignalService{
		bars:    bars,
		signals: signals,
		logger:  log,
	}
}

// GenerateSignals evaluates strat over the stored bars for symbol within
// dateRange and persists the generated signals. It returns the number of
// signals persisted. Symbols are matched in their stored, uppercased form.
//
// An empty series, a series the strategy cannot validate, and a series
// without crossings all yield zero without an error; only store failures
// surface.
func (s *SignalService) GenerateSignals(ctx context.Context, symbol string, strat strategy.Strategy, dateRange types.DateRange) (int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	bars, err := s.bars.QueryBars(ctx, symbol, dateRange)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "loading bars for %s failed", symbol)
	}
	if len(bars) == 0 {
		s.logger.Info("no stored bars, nothing to evaluate", zap.String("symbol", symbol))
		return 0, nil
	}

	if err := strat.ValidateData(bars); err != nil {
		s.logger.Warn("series not eligible for signal generation",
			zap.String("symbol", symbol),
			zap.String("strategy", strat.ID()),
			zap.Error(err),
		)

		return 0, nil
	}

	signals, err := strat.GenerateSignals(bars)
	if err != nil {
		s.logger.Error("signal generation failed",
			zap.String("symbol", symbol),
			zap.String("strategy", strat.ID()),
			zap.Error(err),
		)

		return 0, nil
	}
	if len(signals) == 0 {
		s.logger.Info("no crossings found",
			zap.String("symbol", symbol),
			zap.String("strategy", strat.ID()),
			zap.Int("bars", len(bars)),
		)

		return 0, nil
	}

	written, err := s.signals.InsertSignals(ctx, signals)
	if err != nil {
		return written, errors.Wrapf(errors.ErrCodeStoreWriteFailed, err, "persisting signals for %s failed", symbol)
	}

	s.logger.Info("signals generated",
		zap.String("symbol", symbol),
		zap.String("strategy", strat.ID()),
		zap.Int("count", written),
	)

	return written, nil
}

// GenerateSignalsBulk runs GenerateSignals for each symbol in order and
// returns the total persisted. Store failures stop the loop and surface
// with the total accumulated so far; any other per-symbol failure counts
// as zero for that symbol.
func (s *SignalService) GenerateSignalsBulk(ctx context.Context, symbols []string, strat strategy.Strategy, dateRange types.DateRange) (int, error) {
	total := 0
	for _, symbol := range symbols {
		count, err := s.GenerateSignals(ctx, symbol, strat, dateRange)
		total += count
		if err != nil {
			if errors.IsPersistence(err) {
				return total, err
			}
			s.logger.Warn("skipping symbol",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
	}

	return total, nil
}

// SignalSummary counts the stored signals for symbol by type. An empty
// strategyID matches all strategies.
func (s *SignalService) SignalSummary(ctx context.Context, symbol string, strategyID string) (map[types.SignalType]int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	return s.signals.Summary(ctx, symbol, strategyID)
}
