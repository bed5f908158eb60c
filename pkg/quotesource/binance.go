package quotesource

import (
	"context"
	"fmt"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// binanceTooManyRequests is the binance API error code for a breached
// request-weight budget.
const binanceTooManyRequests = -1003

// BinanceKlinesService is the part of the binance klines request builder
// the source consumes.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	Limit(limit int) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient is the part of the binance client the source consumes.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

// binanceAPIAdapter adapts the real binance client to BinanceAPIClient.
type binanceAPIAdapter struct {
	client *binance.Client
}

func (a *binanceAPIAdapter) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesAdapter{service: a.client.NewKlinesService()}
}

type binanceKlinesAdapter struct {
	service *binance.KlinesService
}

func (a *binanceKlinesAdapter) Symbol(symbol string) BinanceKlinesService {
	a.service = a.service.Symbol(symbol)

	return a
}

func (a *binanceKlinesAdapter) Interval(interval string) BinanceKlinesService {
	a.service = a.service.Interval(interval)

	return a
}

func (a *binanceKlinesAdapter) Limit(limit int) BinanceKlinesService {
	a.service = a.service.Limit(limit)

	return a
}

func (a *binanceKlinesAdapter) Do(ctx context.Context) ([]*binance.Kline, error) {
	return a.service.Do(ctx)
}

// BinanceSource fetches daily klines from binance. Kline data is public, so
// no credential is required. Crypto trades around the clock; a kline's open
// time is taken as the session date and fractional volume is truncated to
// whole units.
type BinanceSource struct {
	apiClient BinanceAPIClient
	logger    *logger.Logger
}

// NewBinanceSource creates the source with the real binance client.
func NewBinanceSource(log *logger.Logger) (*BinanceSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceSource{
		apiClient: &binanceAPIAdapter{client: binance.NewClient("", "")},
		logger:    log,
	}, nil
}

// NewBinanceSourceWithAPI creates the source with a custom API client.
// Tests use this to substitute a mock.
func NewBinanceSourceWithAPI(apiClient BinanceAPIClient, log *logger.Logger) *BinanceSource {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceSource{
		apiClient: apiClient,
		logger:    log,
	}
}

// Name returns the provider name.
func (s *BinanceSource) Name() string {
	return string(SourceBinance)
}

// Fetch returns recent daily klines for the symbol. Compact requests the
// last 100 sessions, full the API maximum of 1000 in a single call.
func (s *BinanceSource) Fetch(ctx context.Context, symbol string, size types.OutputSize) ([]types.Bar, error) {
	limit := compactSessions
	if size == types.OutputSizeFull {
		limit = 1000
	}

	klines, err := s.apiClient.NewKlinesService().
		Symbol(symbol).
		Interval("1d").
		Limit(limit).
		Do(ctx)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.Code == binanceTooManyRequests {
			return nil, errors.Wrapf(errors.ErrCodeRateLimitExceeded, err, "binance rate limit exceeded for %s", symbol)
		}

		return nil, errors.Wrapf(errors.ErrCodeTransportFailure, err, "fetching klines for %s from binance failed", symbol)
	}

	bars := make([]types.Bar, 0, len(klines))

	for _, kline := range klines {
		bar, err := s.parseKline(symbol, kline)
		if err != nil {
			s.logger.Warn("dropping malformed binance kline",
				zap.String("symbol", symbol),
				zap.Int64("open_time", kline.OpenTime),
				zap.Error(err))

			continue
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

func (s *BinanceSource) parseKline(symbol string, kline *binance.Kline) (types.Bar, error) {
	open, err := decimal.NewFromString(kline.Open)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad open %q: %w", kline.Open, err)
	}

	high, err := decimal.NewFromString(kline.High)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad high %q: %w", kline.High, err)
	}

	low, err := decimal.NewFromString(kline.Low)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad low %q: %w", kline.Low, err)
	}

	closePrice, err := decimal.NewFromString(kline.Close)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad close %q: %w", kline.Close, err)
	}

	volume, err := decimal.NewFromString(kline.Volume)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad volume %q: %w", kline.Volume, err)
	}

	return types.Bar{
		Symbol:        symbol,
		Date:          types.DateOnly(time.UnixMilli(kline.OpenTime).UTC()),
		Open:          open,
		High:          high,
		Low:           low,
		Close:         closePrice,
		AdjustedClose: closePrice,
		Volume:        volume.IntPart(),
		Source:        s.Name(),
	}, nil
}
