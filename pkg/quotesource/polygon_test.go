package quotesource

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// mockPolygonAPIClient implements PolygonAPIClient for testing.
type mockPolygonAPIClient struct {
	iterator   *mockPolygonIterator
	lastParams *models.ListAggsParams
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	m.lastParams = params

	return m.iterator
}

// mockPolygonIterator implements PolygonAggsIterator for testing.
type mockPolygonIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (m *mockPolygonIterator) Next() bool {
	if m.index < len(m.aggs) {
		m.index++

		return true
	}

	return false
}

func (m *mockPolygonIterator) Item() models.Agg {
	return m.aggs[m.index-1]
}

func (m *mockPolygonIterator) Err() error {
	return m.err
}

func dailyAgg(date time.Time, closePrice float64) models.Agg {
	//nolint:exhaustruct // only the fields the source reads
	return models.Agg{
		Timestamp: models.Millis(date),
		Open:      closePrice - 1,
		High:      closePrice + 1,
		Low:       closePrice - 2,
		Close:     closePrice,
		Volume:    1000,
	}
}

type PolygonSourceTestSuite struct {
	suite.Suite
}

func TestPolygonSourceSuite(t *testing.T) {
	suite.Run(t, new(PolygonSourceTestSuite))
}

func (suite *PolygonSourceTestSuite) TestNewSourceRejectsMissingKey() {
	_, err := NewPolygonSource("", logger.NewNopLogger())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingCredential))
	suite.True(errors.IsConfiguration(err))
}

func (suite *PolygonSourceTestSuite) TestNewSourceWithKey() {
	source, err := NewPolygonSource("test-api-key", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.NotNil(source.apiClient)
	suite.Equal("polygon", source.Name())
}

func (suite *PolygonSourceTestSuite) TestFetchConvertsAggregates() {
	day := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	mockAPI := &mockPolygonAPIClient{
		iterator: &mockPolygonIterator{aggs: []models.Agg{dailyAgg(day, 214.24)}},
	}
	source := NewPolygonSourceWithAPI(mockAPI, logger.NewNopLogger())

	bars, err := source.Fetch(context.Background(), "AAPL", types.OutputSizeCompact)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)

	got := bars[0]
	suite.Equal("AAPL", got.Symbol)
	suite.Equal("polygon", got.Source)
	suite.Equal(day, got.Date)
	suite.True(decimal.NewFromFloat(214.24).Equal(got.Close))
	suite.True(got.AdjustedClose.Equal(got.Close))
	suite.Equal(int64(1000), got.Volume)

	// Request shape: one-day adjusted aggregates.
	suite.Require().NotNil(mockAPI.lastParams)
	suite.Equal("AAPL", mockAPI.lastParams.Ticker)
	suite.Equal(1, mockAPI.lastParams.Multiplier)
	suite.Equal(models.Day, mockAPI.lastParams.Timespan)
	suite.Require().NotNil(mockAPI.lastParams.Adjusted)
	suite.True(*mockAPI.lastParams.Adjusted)
}

func (suite *PolygonSourceTestSuite) TestFetchCompactKeepsTrailingSessions() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	aggs := make([]models.Agg, 0, 105)

	for i := 0; i < 105; i++ {
		aggs = append(aggs, dailyAgg(start.AddDate(0, 0, i), 100+float64(i)))
	}

	mockAPI := &mockPolygonAPIClient{iterator: &mockPolygonIterator{aggs: aggs}}
	source := NewPolygonSourceWithAPI(mockAPI, logger.NewNopLogger())

	bars, err := source.Fetch(context.Background(), "AAPL", types.OutputSizeCompact)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 100)

	// The five oldest sessions fall off the front.
	suite.Equal(start.AddDate(0, 0, 5), bars[0].Date)
	suite.Equal(start.AddDate(0, 0, 104), bars[99].Date)
}

func (suite *PolygonSourceTestSuite) TestFetchFullKeepsEverything() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	aggs := make([]models.Agg, 0, 105)

	for i := 0; i < 105; i++ {
		aggs = append(aggs, dailyAgg(start.AddDate(0, 0, i), 100+float64(i)))
	}

	mockAPI := &mockPolygonAPIClient{iterator: &mockPolygonIterator{aggs: aggs}}
	source := NewPolygonSourceWithAPI(mockAPI, logger.NewNopLogger())

	bars, err := source.Fetch(context.Background(), "AAPL", types.OutputSizeFull)
	suite.Require().NoError(err)
	suite.Len(bars, 105)
}

func (suite *PolygonSourceTestSuite) TestFetchIteratorErrorIsTransportFailure() {
	mockAPI := &mockPolygonAPIClient{
		iterator: &mockPolygonIterator{err: errors.New(errors.ErrCodeUnknown, "connection reset")},
	}
	source := NewPolygonSourceWithAPI(mockAPI, logger.NewNopLogger())

	_, err := source.Fetch(context.Background(), "AAPL", types.OutputSizeCompact)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeTransportFailure))
}

func (suite *PolygonSourceTestSuite) TestFetchTooManyRequestsIsRateLimit() {
	//nolint:exhaustruct // only the fields the source reads
	mockAPI := &mockPolygonAPIClient{
		iterator: &mockPolygonIterator{err: &models.ErrorResponse{
			StatusCode:   http.StatusTooManyRequests,
			BaseResponse: models.BaseResponse{Status: "ERROR"},
		}},
	}
	source := NewPolygonSourceWithAPI(mockAPI, logger.NewNopLogger())

	_, err := source.Fetch(context.Background(), "AAPL", types.OutputSizeCompact)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeRateLimitExceeded))
	suite.True(errors.IsRateLimit(err))
}
