package quotesource

import (
	"context"
	"net/http"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// compactSessions is the number of trailing sessions a compact fetch keeps,
// matching the compact output of the other providers.
const compactSessions = 100

// PolygonAggsIterator is the part of the polygon aggregates iterator the
// source consumes.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the part of the polygon REST client the source
// consumes.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

// polygonAPIAdapter adapts the real polygon client to PolygonAPIClient.
type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

// PolygonSource fetches daily aggregates from polygon.io. Aggregates are
// requested split-adjusted, so the adjusted close equals the close.
type PolygonSource struct {
	apiClient PolygonAPIClient
	logger    *logger.Logger
}

// NewPolygonSource creates the source with the real polygon REST client.
func NewPolygonSource(apiKey string, log *logger.Logger) (*PolygonSource, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingCredential, "polygon api key is not configured")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonSource{
		apiClient: &polygonAPIAdapter{client: polygon.New(apiKey)},
		logger:    log,
	}, nil
}

// NewPolygonSourceWithAPI creates the source with a custom API client.
// Tests use this to substitute a mock.
func NewPolygonSourceWithAPI(apiClient PolygonAPIClient, log *logger.Logger) *PolygonSource {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonSource{
		apiClient: apiClient,
		logger:    log,
	}
}

// Name returns the provider name.
func (s *PolygonSource) Name() string {
	return string(SourcePolygon)
}

// Fetch lists daily aggregates for the symbol. Compact keeps the last 100
// sessions, full goes back 20 years.
func (s *PolygonSource) Fetch(ctx context.Context, symbol string, size types.OutputSize) ([]types.Bar, error) {
	end := time.Now().UTC()

	var start time.Time
	if size == types.OutputSizeFull {
		start = end.AddDate(-20, 0, 0)
	} else {
		// 100 trading sessions span roughly 150 calendar days.
		start = end.AddDate(0, 0, -150)
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000).WithAdjusted(true)

	iter := s.apiClient.ListAggs(ctx, params)

	bars := make([]types.Bar, 0)

	for iter.Next() {
		agg := iter.Item()
		closePrice := decimal.NewFromFloat(agg.Close)

		bars = append(bars, types.Bar{
			Symbol:        symbol,
			Date:          types.DateOnly(time.Time(agg.Timestamp).UTC()),
			Open:          decimal.NewFromFloat(agg.Open),
			High:          decimal.NewFromFloat(agg.High),
			Low:           decimal.NewFromFloat(agg.Low),
			Close:         closePrice,
			AdjustedClose: closePrice,
			Volume:        int64(agg.Volume),
			Source:        s.Name(),
		})
	}

	if err := iter.Err(); err != nil {
		var errResp *models.ErrorResponse
		if errors.As(err, &errResp) && errResp.StatusCode == http.StatusTooManyRequests {
			return nil, errors.Wrapf(errors.ErrCodeRateLimitExceeded, err, "polygon rate limit exceeded for %s", symbol)
		}

		return nil, errors.Wrapf(errors.ErrCodeTransportFailure, err, "listing polygon aggregates for %s failed", symbol)
	}

	if size == types.OutputSizeCompact && len(bars) > compactSessions {
		bars = bars[len(bars)-compactSessions:]
	}

	s.logger.Debug("fetched polygon aggregates",
		zap.String("symbol", symbol),
		zap.Int("bars", len(bars)))

	return bars, nil
}
