package indicator

import (
	"github.com/shopspring/decimal"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// SMA computes the simple moving average series over the closes in bars.
// Entry k of the result averages closes[k..k+window-1], so entry k is the
// moving average ending at bar k+window-1 and the series has
// len(bars)-window+1 entries. Each value is rounded to 4 decimal places,
// half up.
//
// Bars must already be sorted by date ascending; SMA does not reorder them.
func SMA(bars []types.Bar, window int) ([]decimal.Decimal, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "moving average window must be positive, got %d", window)
	}

	if len(bars) < window {
		symbol := ""
		if len(bars) > 0 {
			symbol = bars[0].Symbol
		}

		return nil, errors.NewInsufficientDataErrorf(window, len(bars), symbol,
			"need at least %d bars for a %d-bar moving average, got %d", window, window, len(bars))
	}

	divisor := decimal.NewFromInt(int64(window))
	result := make([]decimal.Decimal, 0, len(bars)-window+1)

	// Decimal addition is exact, so the rolling sum matches summing each
	// window from scratch.
	sum := decimal.Zero
	for i, bar := range bars {
		sum = sum.Add(bar.Close)
		if i >= window {
			sum = sum.Sub(bars[i-window].Close)
		}

		if i >= window-1 {
			result = append(result, sum.DivRound(divisor, 4))
		}
	}

	return result, nil
}
