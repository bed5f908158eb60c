package types

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SignalType string

const (
	// SignalTypeBuy marks a golden cross: the short moving average crossed
	// above the long moving average.
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell marks a death cross: the short moving average crossed
	// below the long moving average.
	SignalTypeSell SignalType = "SELL"
)

// SignalMetadata carries the strategy context captured at the signal bar.
// It is serialized into the store's metadata column and is never part of
// the signal's identity.
type SignalMetadata struct {
	ShortWindow int             `json:"short_window"`
	LongWindow  int             `json:"long_window"`
	ShortMA     decimal.Decimal `json:"short_ma"`
	LongMA      decimal.Decimal `json:"long_ma"`
	Close       decimal.Decimal `json:"close"`
}

// Signal is one strategy output for one symbol and day. Signals are produced
// from an immutable bar series and never mutated after creation.
type Signal struct {
	// StrategyID identifies the strategy variant and its parameters,
	// e.g. "sma_crossover_20_50"
	StrategyID string
	// Symbol is the ticker symbol the signal applies to
	Symbol string
	// Date is the trading day of the bar the signal is attributed to
	Date time.Time
	// Type is Buy or Sell
	Type SignalType
	// PriceAtSignal is the closing price at the signal bar
	PriceAtSignal decimal.Decimal
	// Strength is the relative separation of the two moving averages,
	// abs(short-long)/long rounded to 4 decimal places
	Strength decimal.Decimal
	// Metadata is free-form strategy context
	Metadata SignalMetadata
}

// Key returns the signal's intended identity, SYMBOL_yyyy-mm-dd_strategyId.
// The store's insert key additionally mixes in a wall-clock timestamp, which
// defeats deduplication across runs; see the signal store.
func (s Signal) Key() string {
	return fmt.Sprintf("%s_%s_%s", s.Symbol, s.Date.Format(time.DateOnly), s.StrategyID)
}
