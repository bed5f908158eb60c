package indicator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

type SMATestSuite struct {
	suite.Suite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) barsFromCloses(closes ...string) []types.Bar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 0, len(closes))

	for i, c := range closes {
		price := decimal.RequireFromString(c)
		bars = append(bars, types.Bar{
			Symbol:        "AAPL",
			Date:          start.AddDate(0, 0, i),
			Open:          price,
			High:          price,
			Low:           price,
			Close:         price,
			AdjustedClose: price,
			Volume:        1000,
		})
	}

	return bars
}

func (suite *SMATestSuite) assertSeries(expected []string, actual []decimal.Decimal) {
	suite.Require().Len(actual, len(expected))

	for i, exp := range expected {
		want := decimal.RequireFromString(exp)
		suite.True(want.Equal(actual[i]), "entry %d: want %s, got %s", i, want, actual[i])
	}
}

func (suite *SMATestSuite) TestSeriesWindowFive() {
	bars := suite.barsFromCloses("10", "10", "10", "10", "10", "12", "12", "12", "12", "12")

	series, err := SMA(bars, 5)
	suite.Require().NoError(err)
	suite.assertSeries([]string{"10", "10.4", "10.8", "11.2", "11.6", "12"}, series)
}

func (suite *SMATestSuite) TestSeriesWindowTwo() {
	bars := suite.barsFromCloses("10", "10", "10", "10", "10", "12", "12", "12", "12", "12")

	series, err := SMA(bars, 2)
	suite.Require().NoError(err)
	suite.assertSeries([]string{"10", "10", "10", "10", "11", "12", "12", "12", "12"}, series)
}

func (suite *SMATestSuite) TestWindowEqualsLength() {
	bars := suite.barsFromCloses("1", "2", "3")

	series, err := SMA(bars, 3)
	suite.Require().NoError(err)
	suite.assertSeries([]string{"2"}, series)
}

func (suite *SMATestSuite) TestRoundsHalfUp() {
	// 20.0001 / 2 = 10.00005, the trailing 5 rounds up at 4 decimal places.
	bars := suite.barsFromCloses("10.0001", "10.0000")

	series, err := SMA(bars, 2)
	suite.Require().NoError(err)
	suite.assertSeries([]string{"10.0001"}, series)
}

func (suite *SMATestSuite) TestRepeatingQuotientRoundsAtFourPlaces() {
	// 5 / 3 = 1.6666... rounds to 1.6667.
	bars := suite.barsFromCloses("1", "2", "2")

	series, err := SMA(bars, 3)
	suite.Require().NoError(err)
	suite.assertSeries([]string{"1.6667"}, series)
}

func (suite *SMATestSuite) TestWindowMustBePositive() {
	bars := suite.barsFromCloses("1", "2", "3")

	_, err := SMA(bars, 0)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	_, err = SMA(bars, -5)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *SMATestSuite) TestInsufficientData() {
	bars := suite.barsFromCloses("1", "2", "3")

	_, err := SMA(bars, 5)
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))

	var insufficientErr *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficientErr))
	suite.Equal(5, insufficientErr.Required)
	suite.Equal(3, insufficientErr.Actual)
	suite.Equal("AAPL", insufficientErr.Symbol)
}

func (suite *SMATestSuite) TestEmptyBars() {
	_, err := SMA(nil, 1)
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *SMATestSuite) TestSeriesLength() {
	closes := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

	for window := 1; window <= len(closes); window++ {
		for n := window; n <= len(closes); n++ {
			bars := suite.barsFromCloses(closes[:n]...)

			series, err := SMA(bars, window)
			suite.Require().NoError(err)
			suite.Len(series, n-window+1, "window %d over %d bars", window, n)
		}
	}
}
