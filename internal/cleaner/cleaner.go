package cleaner

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// Rejection reports one raw bar dropped during cleaning together with the
// first rule it violated. Err is always a *errors.Error with a validation
// code.
type Rejection struct {
	Bar types.Bar
	Err error
}

// Cleaner validates raw bars fetched from a quote source and normalizes the
// survivors. Cleaning is a pure transform: the input slice is never mutated
// and a rejected bar never fails the batch.
//
// Zero values count as missing: a zero date or a zero price rejects the bar.
type Cleaner struct {
	now func() time.Time
}

// NewCleaner creates a Cleaner that uses the wall clock for its future-date
// check.
func NewCleaner() *Cleaner {
	return &Cleaner{now: time.Now}
}

// NewCleanerWithClock creates a Cleaner whose future-date check uses the
// given clock. Tests use this to pin the current date.
func NewCleanerWithClock(now func() time.Time) *Cleaner {
	return &Cleaner{now: now}
}

// Clean filters out malformed bars and normalizes the rest: symbols are
// trimmed and uppercased, dates truncated to UTC midnight, and the five
// price fields rounded to 2 decimal places half up. The returned bars are
// sorted ascending by date; bars sharing a date keep their input order.
func (c *Cleaner) Clean(raw []types.Bar) ([]types.Bar, []Rejection) {
	cleaned := make([]types.Bar, 0, len(raw))
	rejections := make([]Rejection, 0)
	today := types.DateOnly(c.now())

	for _, bar := range raw {
		if err := validate(bar, today); err != nil {
			rejections = append(rejections, Rejection{Bar: bar, Err: err})
			continue
		}

		cleaned = append(cleaned, normalize(bar))
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Date.Before(cleaned[j].Date)
	})

	return cleaned, rejections
}

// validate applies the rejection rules in order and returns the first
// violation.
func validate(bar types.Bar, today time.Time) error {
	if strings.TrimSpace(bar.Symbol) == "" {
		return errors.New(errors.ErrCodeMissingSymbol, "symbol is missing")
	}

	if bar.Date.IsZero() {
		return errors.Newf(errors.ErrCodeMissingDate, "date is missing for symbol %s", bar.Symbol)
	}

	if types.DateOnly(bar.Date).After(today) {
		return errors.Newf(errors.ErrCodeFutureDate, "date %s is in the future", bar.Date.Format(time.DateOnly))
	}

	prices := []struct {
		name  string
		value decimal.Decimal
	}{
		{"open", bar.Open},
		{"high", bar.High},
		{"low", bar.Low},
		{"close", bar.Close},
		{"adjusted close", bar.AdjustedClose},
	}

	for _, price := range prices {
		if !price.value.IsPositive() {
			return errors.Newf(errors.ErrCodeInvalidPrice, "%s price must be positive, got %s", price.name, price.value)
		}
	}

	switch {
	case bar.High.LessThan(bar.Low):
		return errors.New(errors.ErrCodePriceRelation, "high is below low")
	case bar.High.LessThan(bar.Open):
		return errors.New(errors.ErrCodePriceRelation, "high is below open")
	case bar.High.LessThan(bar.Close):
		return errors.New(errors.ErrCodePriceRelation, "high is below close")
	case bar.Low.GreaterThan(bar.Open):
		return errors.New(errors.ErrCodePriceRelation, "low is above open")
	case bar.Low.GreaterThan(bar.Close):
		return errors.New(errors.ErrCodePriceRelation, "low is above close")
	}

	if bar.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidVolume, "volume must be non-negative, got %d", bar.Volume)
	}

	return nil
}

// normalize returns a normalized copy of a bar that already passed
// validation.
func normalize(bar types.Bar) types.Bar {
	bar.Symbol = strings.ToUpper(strings.TrimSpace(bar.Symbol))
	bar.Date = types.DateOnly(bar.Date)
	bar.Open = bar.Open.Round(2)
	bar.High = bar.High.Round(2)
	bar.Low = bar.Low.Round(2)
	bar.Close = bar.Close.Round(2)
	bar.AdjustedClose = bar.AdjustedClose.Round(2)

	return bar
}
