package types

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one trading day of price data for a single symbol as delivered by a
// quote source and, after cleaning, persisted to the market data store.
// Identity is (Symbol, Date); everything else is payload.
type Bar struct {
	// Symbol is the ticker symbol, e.g. "AAPL"
	Symbol string
	// Date is the trading day. Only the calendar date is meaningful.
	Date time.Time
	// Open is the opening price
	Open decimal.Decimal
	// High is the highest price of the day
	High decimal.Decimal
	// Low is the lowest price of the day
	Low decimal.Decimal
	// Close is the closing price
	Close decimal.Decimal
	// AdjustedClose is the split/dividend adjusted closing price. Sources
	// without an adjusted series set it equal to Close.
	AdjustedClose decimal.Decimal
	// Volume is the number of shares traded
	Volume int64
	// Source names the quote source that produced the bar, e.g. "alpha_vantage"
	Source string
}

// Key returns the bar's storage identity, SYMBOL_yyyy-mm-dd. Re-upserting a
// bar with the same key replaces the stored row instead of duplicating it.
func (b Bar) Key() string {
	return fmt.Sprintf("%s_%s", b.Symbol, b.Date.Format(time.DateOnly))
}

// DateOnly truncates t to its calendar date in UTC. Bars and signals compare
// and persist at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
