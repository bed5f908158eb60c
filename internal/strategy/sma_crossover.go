package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/indicator"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// Config holds the moving-average crossover parameters.
type Config struct {
	// ShortWindow is the short moving-average window in trading days.
	ShortWindow int `json:"short_window" yaml:"short_window"`
	// LongWindow is the long moving-average window in trading days. Must be
	// greater than ShortWindow.
	LongWindow int `json:"long_window" yaml:"long_window"`
	// Threshold is the minimum relative separation of the two averages for
	// a cross to fire, as a fraction (0.01 = 1%).
	Threshold decimal.Decimal `json:"threshold" yaml:"threshold"`
}

// DefaultConfig returns the stock 20/50 crossover with a 1% threshold.
func DefaultConfig() Config {
	return Config{
		ShortWindow: 20,
		LongWindow:  50,
		Threshold:   decimal.RequireFromString("0.01"),
	}
}

// SMACrossover detects golden and death crosses between a short and a long
// simple moving average over daily closes.
//
// Strategy logic:
//   - Compute the short-window and long-window SMA series. Both end at the
//     final bar; the short series' extra leading entries are dropped so
//     entry i of each series is the average ending at bar i+longWindow-1.
//   - A golden cross (Buy) fires at index i when the short average was at or
//     below the long average at i-1, is strictly above it at i, and the
//     relative separation meets the threshold.
//   - A death cross (Sell) is the mirror image. The two checks are an
//     if/else-if pair, so at most one signal fires per index.
//   - The signal is attributed to the bar both averages end at.
type SMACrossover struct {
	config Config
}

// NewSMACrossover creates the crossover strategy, rejecting non-positive
// windows, short >= long, and negative thresholds.
func NewSMACrossover(config Config) (*SMACrossover, error) {
	if config.ShortWindow <= 0 || config.LongWindow <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"windows must be positive integers, got short=%d long=%d", config.ShortWindow, config.LongWindow)
	}

	if config.ShortWindow >= config.LongWindow {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"short window must be less than long window, got short=%d long=%d", config.ShortWindow, config.LongWindow)
	}

	if config.Threshold.IsNegative() {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold,
			"threshold must be non-negative, got %s", config.Threshold)
	}

	return &SMACrossover{config: config}, nil
}

// ID returns the strategy identifier, e.g. "sma_crossover_20_50".
func (s *SMACrossover) ID() string {
	return fmt.Sprintf("sma_crossover_%d_%d", s.config.ShortWindow, s.config.LongWindow)
}

// Name returns the human-readable strategy name.
func (s *SMACrossover) Name() string {
	return fmt.Sprintf("Simple Moving Average Crossover (%d/%d)", s.config.ShortWindow, s.config.LongWindow)
}

// Describe returns the strategy's documentation surface.
func (s *SMACrossover) Describe() Info {
	thresholdPct := s.config.Threshold.Mul(decimal.NewFromInt(100))

	return Info{
		ID:   s.ID(),
		Name: s.Name(),
		Description: fmt.Sprintf(
			"Simple Moving Average Crossover strategy using %d-day and %d-day moving averages. "+
				"Generates BUY signals when the %d-day MA crosses above the %d-day MA (golden cross), "+
				"and SELL signals when it crosses below (death cross). "+
				"Minimum signal threshold: %s%%",
			s.config.ShortWindow, s.config.LongWindow,
			s.config.ShortWindow, s.config.LongWindow,
			thresholdPct),
		Parameters: map[string]any{
			"short_window": s.config.ShortWindow,
			"long_window":  s.config.LongWindow,
			"threshold":    s.config.Threshold.InexactFloat64(),
		},
		MinimumDataPoints: s.MinimumDataPoints(),
	}
}

// MinimumDataPoints returns the long window: the series must cover at least
// one long average.
func (s *SMACrossover) MinimumDataPoints() int {
	return s.config.LongWindow
}

// ValidateData checks that the series is evaluable. Ordering compares each
// bar only against its immediate predecessor and fails on a strict
// decrease; equal consecutive dates pass.
func (s *SMACrossover) ValidateData(bars []types.Bar) error {
	if len(bars) == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "bar series is empty")
	}

	if len(bars) < s.MinimumDataPoints() {
		symbol := bars[0].Symbol

		return errors.NewInsufficientDataErrorf(s.MinimumDataPoints(), len(bars), symbol,
			"strategy %s needs at least %d bars, got %d", s.ID(), s.MinimumDataPoints(), len(bars))
	}

	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			return errors.Newf(errors.ErrCodeStrategyDataOrder,
				"bars not sorted ascending by date: %s follows %s",
				bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}

	return nil
}

// GenerateSignals evaluates the crossover over the series, oldest first.
func (s *SMACrossover) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.ValidateData(bars); err != nil {
		return nil, err
	}

	shortMA, err := indicator.SMA(bars, s.config.ShortWindow)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSignalGeneration, err, "short moving average failed for %s", s.ID())
	}

	longMA, err := indicator.SMA(bars, s.config.LongWindow)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSignalGeneration, err, "long moving average failed for %s", s.ID())
	}

	// Align the series on their shared tail. shortMA is longer by
	// longWindow-shortWindow entries, so after trimming, entry i of both
	// series is the average ending at bar i+longWindow-1.
	shortMA = shortMA[len(shortMA)-len(longMA):]

	signals := make([]types.Signal, 0)

	for i := 1; i < len(longMA); i++ {
		bar := bars[i+s.config.LongWindow-1]

		previousShortMA := shortMA[i-1]
		currentShortMA := shortMA[i]
		previousLongMA := longMA[i-1]
		currentLongMA := longMA[i]

		if s.isGoldenCross(previousShortMA, previousLongMA, currentShortMA, currentLongMA) {
			signals = append(signals, s.newSignal(types.SignalTypeBuy, bar, currentShortMA, currentLongMA))
		} else if s.isDeathCross(previousShortMA, previousLongMA, currentShortMA, currentLongMA) {
			signals = append(signals, s.newSignal(types.SignalTypeSell, bar, currentShortMA, currentLongMA))
		}
	}

	return signals, nil
}

// isGoldenCross reports a short MA crossing above the long MA. The "before"
// side is non-strict and the "now" side strict, so a bar where the two
// averages are exactly equal never fires on its own but the following
// strict departure does.
func (s *SMACrossover) isGoldenCross(prevShort, prevLong, currShort, currLong decimal.Decimal) bool {
	wasAtOrBelowBefore := prevShort.LessThanOrEqual(prevLong)
	isAboveNow := currShort.GreaterThan(currLong)

	if !wasAtOrBelowBefore || !isAboveNow {
		return false
	}

	percentageDiff := currShort.Sub(currLong).DivRound(currLong, 4)

	return percentageDiff.GreaterThanOrEqual(s.config.Threshold)
}

// isDeathCross reports a short MA crossing below the long MA, the mirror of
// isGoldenCross.
func (s *SMACrossover) isDeathCross(prevShort, prevLong, currShort, currLong decimal.Decimal) bool {
	wasAtOrAboveBefore := prevShort.GreaterThanOrEqual(prevLong)
	isBelowNow := currShort.LessThan(currLong)

	if !wasAtOrAboveBefore || !isBelowNow {
		return false
	}

	percentageDiff := currLong.Sub(currShort).DivRound(currLong, 4)

	return percentageDiff.GreaterThanOrEqual(s.config.Threshold)
}

// newSignal builds the signal attributed to the given bar.
func (s *SMACrossover) newSignal(signalType types.SignalType, bar types.Bar, shortMA, longMA decimal.Decimal) types.Signal {
	strength := shortMA.Sub(longMA).Abs().DivRound(longMA, 4)

	return types.Signal{
		StrategyID:    s.ID(),
		Symbol:        bar.Symbol,
		Date:          bar.Date,
		Type:          signalType,
		PriceAtSignal: bar.Close,
		Strength:      strength,
		Metadata: types.SignalMetadata{
			ShortWindow: s.config.ShortWindow,
			LongWindow:  s.config.LongWindow,
			ShortMA:     shortMA,
			LongMA:      longMA,
			Close:       bar.Close,
		},
	}
}
