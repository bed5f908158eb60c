// Package quotesource fetches raw daily bars from external market-data
// providers.
//
// A Source returns bars for one symbol per call, in no guaranteed order and
// without any validation; cleaning happens downstream. Failure modes are
// signaled distinctly through error codes: a rate-limit response is fatal
// for the caller's run, a transport failure skips the symbol, and a
// malformed record inside an otherwise good payload is dropped with a
// warning.
package quotesource

import (
	"context"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// SourceType defines the type of quote provider.
type SourceType string

const (
	SourceAlphaVantage SourceType = "alphavantage"
	SourcePolygon      SourceType = "polygon"
	SourceBinance      SourceType = "binance"
)

// Source supplies raw daily bars for one symbol per call.
type Source interface {
	// Name returns the provider name recorded on each fetched bar.
	Name() string

	// Fetch returns the raw daily bars for the symbol. Compact covers
	// roughly the last 100 sessions, full as much history as the provider
	// serves. An empty result with a nil error means the provider had
	// nothing for the symbol.
	Fetch(ctx context.Context, symbol string, size types.OutputSize) ([]types.Bar, error)
}

// Config selects and configures a quote provider.
type Config struct {
	// Provider picks the implementation.
	Provider SourceType `json:"provider" yaml:"provider" validate:"required"`
	// APIKey authenticates with the provider. Binance serves public kline
	// data without one.
	APIKey string `json:"api_key" yaml:"api_key"`
	// BaseURL overrides the provider endpoint. Used by tests; leave empty
	// for the real endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// NewQuoteSource creates a quote source from config. Credential problems
// are reported here, before any symbol is fetched.
func NewQuoteSource(config Config, log *logger.Logger) (Source, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	switch config.Provider {
	case SourceAlphaVantage:
		return NewAlphaVantageSource(config.APIKey, config.BaseURL, log)
	case SourcePolygon:
		return NewPolygonSource(config.APIKey, log)
	case SourceBinance:
		return NewBinanceSource(log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported quote provider: %s", config.Provider)
	}
}
