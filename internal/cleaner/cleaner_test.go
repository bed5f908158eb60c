package cleaner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

type CleanerTestSuite struct {
	suite.Suite
	cleaner *Cleaner
}

func TestCleanerSuite(t *testing.T) {
	suite.Run(t, new(CleanerTestSuite))
}

func (suite *CleanerTestSuite) SetupTest() {
	// Pin the clock so the future-date rule is deterministic.
	now := time.Date(2024, 6, 14, 10, 30, 0, 0, time.UTC)
	suite.cleaner = NewCleanerWithClock(func() time.Time { return now })
}

func (suite *CleanerTestSuite) validBar() types.Bar {
	return types.Bar{
		Symbol:        "aapl",
		Date:          time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
		Open:          decimal.RequireFromString("186.50"),
		High:          decimal.RequireFromString("188.00"),
		Low:           decimal.RequireFromString("186.00"),
		Close:         decimal.RequireFromString("187.555"),
		AdjustedClose: decimal.RequireFromString("187.555"),
		Volume:        52_000_000,
		Source:        "alphavantage",
	}
}

func (suite *CleanerTestSuite) rejectOne(bar types.Bar, code errors.ErrorCode) {
	cleaned, rejections := suite.cleaner.Clean([]types.Bar{bar})

	suite.Empty(cleaned)
	suite.Require().Len(rejections, 1)
	suite.True(errors.HasCode(rejections[0].Err, code),
		"want code %d, got %v", code, rejections[0].Err)
	suite.True(errors.IsValidation(rejections[0].Err))
}

func (suite *CleanerTestSuite) TestAcceptsAndNormalizesValidBar() {
	bar := suite.validBar()
	bar.Symbol = " aapl "
	bar.Date = time.Date(2024, 6, 13, 21, 0, 0, 0, time.UTC)

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{bar})

	suite.Empty(rejections)
	suite.Require().Len(cleaned, 1)

	got := cleaned[0]
	suite.Equal("AAPL", got.Symbol)
	suite.Equal(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), got.Date)
	suite.True(decimal.RequireFromString("187.56").Equal(got.Close), "got close %s", got.Close)
	suite.True(decimal.RequireFromString("187.56").Equal(got.AdjustedClose))
	suite.True(decimal.RequireFromString("186.5").Equal(got.Open))
	suite.Equal(int64(52_000_000), got.Volume)
}

func (suite *CleanerTestSuite) TestRoundsPricesHalfUp() {
	bar := suite.validBar()
	bar.Open = decimal.RequireFromString("10.005")
	bar.High = decimal.RequireFromString("10.015")
	bar.Low = decimal.RequireFromString("10.004")
	bar.Close = decimal.RequireFromString("10.005")
	bar.AdjustedClose = decimal.RequireFromString("10.005")

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{bar})

	suite.Empty(rejections)
	suite.Require().Len(cleaned, 1)
	suite.True(decimal.RequireFromString("10.01").Equal(cleaned[0].Open), "got open %s", cleaned[0].Open)
	suite.True(decimal.RequireFromString("10.02").Equal(cleaned[0].High))
	suite.True(decimal.RequireFromString("10").Equal(cleaned[0].Low))
	suite.True(decimal.RequireFromString("10.01").Equal(cleaned[0].Close))
}

func (suite *CleanerTestSuite) TestRejectsMissingSymbol() {
	bar := suite.validBar()
	bar.Symbol = ""
	suite.rejectOne(bar, errors.ErrCodeMissingSymbol)

	bar.Symbol = "   "
	suite.rejectOne(bar, errors.ErrCodeMissingSymbol)
}

func (suite *CleanerTestSuite) TestRejectsMissingDate() {
	bar := suite.validBar()
	bar.Date = time.Time{}
	suite.rejectOne(bar, errors.ErrCodeMissingDate)
}

func (suite *CleanerTestSuite) TestRejectsFutureDate() {
	bar := suite.validBar()
	bar.Date = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	suite.rejectOne(bar, errors.ErrCodeFutureDate)
}

func (suite *CleanerTestSuite) TestAcceptsBarDatedToday() {
	bar := suite.validBar()
	bar.Date = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{bar})

	suite.Empty(rejections)
	suite.Len(cleaned, 1)
}

func (suite *CleanerTestSuite) TestRejectsNonPositivePrices() {
	zero := decimal.Zero
	negative := decimal.RequireFromString("-1")

	for _, value := range []decimal.Decimal{zero, negative} {
		for _, field := range []string{"open", "high", "low", "close", "adjustedClose"} {
			bar := suite.validBar()

			switch field {
			case "open":
				bar.Open = value
			case "high":
				bar.High = value
			case "low":
				bar.Low = value
			case "close":
				bar.Close = value
			case "adjustedClose":
				bar.AdjustedClose = value
			}

			cleaned, rejections := suite.cleaner.Clean([]types.Bar{bar})
			suite.Empty(cleaned, "field %s = %s should reject", field, value)
			suite.Require().Len(rejections, 1)
			suite.True(errors.HasCode(rejections[0].Err, errors.ErrCodeInvalidPrice))
		}
	}
}

func (suite *CleanerTestSuite) TestRejectsHighBelowLow() {
	bar := suite.validBar()
	bar.High = decimal.RequireFromString("185.00")
	bar.Low = decimal.RequireFromString("186.00")
	bar.Open = decimal.RequireFromString("185.50")
	bar.Close = decimal.RequireFromString("185.50")
	suite.rejectOne(bar, errors.ErrCodePriceRelation)
}

func (suite *CleanerTestSuite) TestRejectsPriceRelationViolations() {
	highBelowOpen := suite.validBar()
	highBelowOpen.Open = decimal.RequireFromString("189.00")
	suite.rejectOne(highBelowOpen, errors.ErrCodePriceRelation)

	highBelowClose := suite.validBar()
	highBelowClose.Close = decimal.RequireFromString("189.00")
	suite.rejectOne(highBelowClose, errors.ErrCodePriceRelation)

	lowAboveOpen := suite.validBar()
	lowAboveOpen.Low = decimal.RequireFromString("187.00")
	lowAboveOpen.Open = decimal.RequireFromString("186.80")
	suite.rejectOne(lowAboveOpen, errors.ErrCodePriceRelation)

	lowAboveClose := suite.validBar()
	lowAboveClose.Low = decimal.RequireFromString("187.90")
	lowAboveClose.Open = decimal.RequireFromString("187.95")
	suite.rejectOne(lowAboveClose, errors.ErrCodePriceRelation)
}

func (suite *CleanerTestSuite) TestRejectsNegativeVolume() {
	bar := suite.validBar()
	bar.Volume = -1
	suite.rejectOne(bar, errors.ErrCodeInvalidVolume)
}

func (suite *CleanerTestSuite) TestAcceptsZeroVolume() {
	bar := suite.validBar()
	bar.Volume = 0

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{bar})

	suite.Empty(rejections)
	suite.Len(cleaned, 1)
}

func (suite *CleanerTestSuite) TestRejectionsDoNotFailTheBatch() {
	good := suite.validBar()

	bad := suite.validBar()
	bad.Volume = -10

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{bad, good, bad})

	suite.Len(cleaned, 1)
	suite.Len(rejections, 2)
}

func (suite *CleanerTestSuite) TestSortsAscendingByDate() {
	first := suite.validBar()
	first.Date = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	second := suite.validBar()
	second.Date = time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	third := suite.validBar()
	third.Date = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{third, first, second})

	suite.Empty(rejections)
	suite.Require().Len(cleaned, 3)
	suite.Equal(first.Date, cleaned[0].Date)
	suite.Equal(second.Date, cleaned[1].Date)
	suite.Equal(third.Date, cleaned[2].Date)
}

func (suite *CleanerTestSuite) TestKeepsEqualDatesInInputOrder() {
	first := suite.validBar()
	first.Close = decimal.RequireFromString("187.00")
	first.AdjustedClose = first.Close

	second := suite.validBar()
	second.Close = decimal.RequireFromString("186.00")
	second.AdjustedClose = second.Close

	cleaned, rejections := suite.cleaner.Clean([]types.Bar{first, second})

	suite.Empty(rejections)
	suite.Require().Len(cleaned, 2)
	suite.True(decimal.RequireFromString("187").Equal(cleaned[0].Close))
	suite.True(decimal.RequireFromString("186").Equal(cleaned[1].Close))
}

func (suite *CleanerTestSuite) TestDoesNotMutateInput() {
	bar := suite.validBar()
	bar.Symbol = " aapl "
	raw := []types.Bar{bar}

	suite.cleaner.Clean(raw)

	suite.Equal(" aapl ", raw[0].Symbol)
	suite.True(decimal.RequireFromString("187.555").Equal(raw[0].Close))
}

func (suite *CleanerTestSuite) TestEmptyInput() {
	cleaned, rejections := suite.cleaner.Clean(nil)

	suite.Empty(cleaned)
	suite.Empty(rejections)
}
