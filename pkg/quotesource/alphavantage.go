package quotesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// DefaultAlphaVantageBaseURL is the production query endpoint.
const DefaultAlphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageSource fetches daily bars from the Alpha Vantage
// TIME_SERIES_DAILY endpoint. The free endpoint carries no adjusted close,
// so the close is mirrored into it.
type AlphaVantageSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

// alphaVantageDay is one day's entry in the "Time Series (Daily)" object.
// Prices and volume arrive as strings.
type alphaVantageDay struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// alphaVantageResponse is the TIME_SERIES_DAILY payload. Exactly one of the
// three top-level branches is populated: an error message for a bad symbol
// or key, a throttling note, or the time series itself.
type alphaVantageResponse struct {
	ErrorMessage string                     `json:"Error Message"`
	Note         string                     `json:"Note"`
	Information  string                     `json:"Information"`
	TimeSeries   map[string]alphaVantageDay `json:"Time Series (Daily)"`
}

// NewAlphaVantageSource creates the source. The placeholder "demo" key only
// works for Alpha Vantage's documentation symbols, so it counts as missing.
func NewAlphaVantageSource(apiKey, baseURL string, log *logger.Logger) (*AlphaVantageSource, error) {
	if apiKey == "" || apiKey == "demo" {
		return nil, errors.New(errors.ErrCodeMissingCredential, "alpha vantage api key is not configured")
	}

	if baseURL == "" {
		baseURL = DefaultAlphaVantageBaseURL
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &AlphaVantageSource{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  log,
	}, nil
}

// Name returns the provider name.
func (s *AlphaVantageSource) Name() string {
	return string(SourceAlphaVantage)
}

// Fetch downloads and parses the daily series for one symbol. Records that
// fail to parse are dropped with a warning; a missing series yields an
// empty result.
func (s *AlphaVantageSource) Fetch(ctx context.Context, symbol string, size types.OutputSize) ([]types.Bar, error) {
	requestURL := fmt.Sprintf("%s?function=TIME_SERIES_DAILY&symbol=%s&outputsize=%s&apikey=%s",
		s.baseURL, url.QueryEscape(symbol), size, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeTransportFailure, err, "building request for %s failed", symbol)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeTransportFailure, err, "fetching %s from alpha vantage failed", symbol)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeTransportFailure, "alpha vantage returned status %d for %s", resp.StatusCode, symbol)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeTransportFailure, err, "reading alpha vantage response for %s failed", symbol)
	}

	return s.parseResponse(body, symbol)
}

func (s *AlphaVantageSource) parseResponse(body []byte, symbol string) ([]types.Bar, error) {
	var payload alphaVantageResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMalformedPayload, err, "alpha vantage response for %s is not valid JSON", symbol)
	}

	if payload.ErrorMessage != "" {
		return nil, errors.Newf(errors.ErrCodeTransportFailure, "alpha vantage error for %s: %s", symbol, payload.ErrorMessage)
	}

	// Throttling arrives as "Note" on the per-minute budget and
	// "Information" on the daily one.
	if payload.Note != "" {
		return nil, errors.Newf(errors.ErrCodeRateLimitExceeded, "alpha vantage rate limit exceeded: %s", payload.Note)
	}

	if payload.Information != "" {
		return nil, errors.Newf(errors.ErrCodeRateLimitExceeded, "alpha vantage rate limit exceeded: %s", payload.Information)
	}

	if len(payload.TimeSeries) == 0 {
		s.logger.Warn("no time series data in alpha vantage response",
			zap.String("symbol", symbol))

		return []types.Bar{}, nil
	}

	bars := make([]types.Bar, 0, len(payload.TimeSeries))

	for dateStr, day := range payload.TimeSeries {
		bar, err := s.parseDay(symbol, dateStr, day)
		if err != nil {
			s.logger.Warn("dropping malformed alpha vantage record",
				zap.String("symbol", symbol),
				zap.String("date", dateStr),
				zap.Error(err))

			continue
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

func (s *AlphaVantageSource) parseDay(symbol, dateStr string, day alphaVantageDay) (types.Bar, error) {
	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad date %q: %w", dateStr, err)
	}

	open, err := decimal.NewFromString(day.Open)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad open %q: %w", day.Open, err)
	}

	high, err := decimal.NewFromString(day.High)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad high %q: %w", day.High, err)
	}

	low, err := decimal.NewFromString(day.Low)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad low %q: %w", day.Low, err)
	}

	closePrice, err := decimal.NewFromString(day.Close)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad close %q: %w", day.Close, err)
	}

	volume, err := strconv.ParseInt(day.Volume, 10, 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("bad volume %q: %w", day.Volume, err)
	}

	return types.Bar{
		Symbol:        symbol,
		Date:          date,
		Open:          open,
		High:          high,
		Low:           low,
		Close:         closePrice,
		AdjustedClose: closePrice,
		Volume:        volume,
		Source:        s.Name(),
	}, nil
}
