package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/ratelimit"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/version"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/quotesource"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestParseCompleteConfig() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
  base_url: http://127.0.0.1:9100/query
pipeline:
  symbols: [AAPL, TSLA, MSFT]
  output_size: full
  chunk_size: 50
  rate_interval: 12s
store:
  path: data/backtester.duckdb
strategy:
  kind: sma_crossover
  short_window: 20
  long_window: 50
  threshold: "0.01"
  start_date: 2024-01-02
  end_date: 2024-12-31
`

	config, err := Parse([]byte(yamlData))
	suite.Require().NoError(err)

	suite.Equal("1.0.0", config.Version)
	suite.Equal(quotesource.SourceAlphaVantage, config.Source.Provider)
	suite.Equal("http://127.0.0.1:9100/query", config.Source.BaseURL)

	suite.Equal([]string{"AAPL", "TSLA", "MSFT"}, config.Pipeline.Symbols)
	suite.Equal(50, config.Pipeline.ChunkSize)
	suite.Equal(12*time.Second, config.Pipeline.RateInterval)
	size, err := config.Pipeline.Size()
	suite.Require().NoError(err)
	suite.Equal(types.OutputSizeFull, size)

	suite.Equal("data/backtester.duckdb", config.Store.Path)

	suite.True(config.Strategy.Enabled())
	suite.Equal(20, config.Strategy.ShortWindow)
	suite.Equal(50, config.Strategy.LongWindow)
	suite.Equal("0.01", config.Strategy.Threshold.String())
	suite.Require().True(config.Strategy.StartDate.IsSome())
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), config.Strategy.StartDate.Unwrap())
	suite.Require().True(config.Strategy.EndDate.IsSome())
	suite.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), config.Strategy.EndDate.Unwrap())
}

func (suite *ConfigTestSuite) TestParseAppliesDefaults() {
	yamlData := `
version: 1.0.0
source:
  provider: binance
pipeline:
  symbols: [BTCUSDT]
`

	config, err := Parse([]byte(yamlData))
	suite.Require().NoError(err)

	suite.Equal(100, config.Pipeline.ChunkSize)
	suite.Equal(ratelimit.DefaultInterval, config.Pipeline.RateInterval)
	size, err := config.Pipeline.Size()
	suite.Require().NoError(err)
	suite.Equal(types.OutputSizeCompact, size)
	suite.Empty(config.Store.Path)
	suite.False(config.Strategy.Enabled())
	suite.True(config.Strategy.StartDate.IsNone())
	suite.True(config.Strategy.EndDate.IsNone())
}

func (suite *ConfigTestSuite) TestParseMissingVersionFails() {
	yamlData := `
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.IsConfiguration(err))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseIncompatibleVersionFails() {
	yamlData := `
version: 2.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIncompatibleVersion))
	suite.True(errors.IsConfiguration(err))
}

func (suite *ConfigTestSuite) TestParseMainVersionSkipsGate() {
	yamlData := `
version: main
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
`

	config, err := Parse([]byte(yamlData))
	suite.Require().NoError(err)
	suite.Equal("main", config.Version)
}

func (suite *ConfigTestSuite) TestParseUnknownProviderFails() {
	yamlData := `
version: 1.0.0
source:
  provider: yahoo
pipeline:
  symbols: [AAPL]
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseNoSymbolsFails() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: []
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseExplicitZeroChunkSizeFails() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
  chunk_size: 0
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseBadRateIntervalFails() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
  rate_interval: fast
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseInvertedWindowsFail() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: sma_crossover
  short_window: 50
  long_window: 20
  threshold: "0.01"
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
	suite.True(errors.IsConfiguration(err))
}

func (suite *ConfigTestSuite) TestParseUnknownStrategyKindFails() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: rsi
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestStrategyBuildAndDateRange() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: sma_crossover
  short_window: 20
  long_window: 50
  threshold: "0.01"
  start_date: 2024-01-02
`

	config, err := Parse([]byte(yamlData))
	suite.Require().NoError(err)

	strat, err := config.Strategy.Build()
	suite.Require().NoError(err)
	suite.Equal("sma_crossover_20_50", strat.ID())

	dateRange := config.Strategy.DateRange()
	suite.Require().True(dateRange.Start.IsSome())
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), dateRange.Start.Unwrap())
	suite.True(dateRange.End.IsNone())
}

func (suite *ConfigTestSuite) TestParseUnquotedThreshold() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: sma_crossover
  short_window: 20
  long_window: 50
  threshold: 0.015
`

	config, err := Parse([]byte(yamlData))
	suite.Require().NoError(err)
	suite.Equal("0.015", config.Strategy.Threshold.String())
}

func (suite *ConfigTestSuite) TestParseBadThresholdFails() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: sma_crossover
  short_window: 20
  long_window: 50
  threshold: "one percent"
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseQuotedDates() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: sma_crossover
  short_window: 20
  long_window: 50
  threshold: "0.01"
  start_date: "2024-01-02"
  end_date: "2024-12-31"
`

	config, err := Parse([]byte(yamlData))
	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), config.Strategy.StartDate.Unwrap())
	suite.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), config.Strategy.EndDate.Unwrap())
}

func (suite *ConfigTestSuite) TestParseBadDateFails() {
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
strategy:
  kind: sma_crossover
  short_window: 20
  long_window: 50
  threshold: "0.01"
  start_date: "02/01/2024"
`

	_, err := Parse([]byte(yamlData))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestMarshaledConfigParsesAgain() {
	original := Default()
	original.Strategy.StartDate = optional.Some(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	data, err := yaml.Marshal(original)
	suite.Require().NoError(err)

	parsed, err := Parse(data)
	suite.Require().NoError(err)
	suite.Equal(original.Pipeline.Symbols, parsed.Pipeline.Symbols)
	suite.Equal(original.Pipeline.ChunkSize, parsed.Pipeline.ChunkSize)
	suite.Equal(original.Pipeline.RateInterval, parsed.Pipeline.RateInterval)
	suite.Equal(original.Strategy.Kind, parsed.Strategy.Kind)
	suite.Equal("0.01", parsed.Strategy.Threshold.String())
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), parsed.Strategy.StartDate.Unwrap())
	suite.True(parsed.Strategy.EndDate.IsNone())
}

func (suite *ConfigTestSuite) TestDefault() {
	config := Default()

	suite.Equal(version.SchemaVersion, config.Version)
	suite.Equal(quotesource.SourceAlphaVantage, config.Source.Provider)
	suite.Equal([]string{"AAPL", "TSLA"}, config.Pipeline.Symbols)
	suite.Equal(100, config.Pipeline.ChunkSize)
	suite.Equal(ratelimit.DefaultInterval, config.Pipeline.RateInterval)
	suite.Equal("data/backtester.duckdb", config.Store.Path)
	suite.Equal(KindSMACrossover, config.Strategy.Kind)
	suite.Equal(20, config.Strategy.ShortWindow)
	suite.Equal(50, config.Strategy.LongWindow)
	suite.Equal("0.01", config.Strategy.Threshold.String())
	suite.True(config.Strategy.StartDate.IsNone())
	suite.True(config.Strategy.EndDate.IsNone())

	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestTestConfig() {
	config := TestConfig("http://127.0.0.1:9100/query")

	suite.Equal("http://127.0.0.1:9100/query", config.Source.BaseURL)
	suite.Empty(config.Store.Path)
	suite.Equal(time.Duration(0), config.Pipeline.RateInterval)
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestQuoteConfigCarriesCredential() {
	config := TestConfig("http://127.0.0.1:9100/query")

	quoteConfig := config.Source.QuoteConfig("demo-key")
	suite.Equal(quotesource.SourceAlphaVantage, quoteConfig.Provider)
	suite.Equal("demo-key", quoteConfig.APIKey)
	suite.Equal("http://127.0.0.1:9100/query", quoteConfig.BaseURL)
}

func (suite *ConfigTestSuite) TestLoadFromFile() {
	path := filepath.Join(suite.T().TempDir(), "pipeline-config.yaml")
	yamlData := `
version: 1.0.0
source:
  provider: alphavantage
pipeline:
  symbols: [AAPL]
`
	suite.Require().NoError(os.WriteFile(path, []byte(yamlData), 0o644))

	config, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal([]string{"AAPL"}, config.Pipeline.Symbols)
}

func (suite *ConfigTestSuite) TestLoadMissingFileFails() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "absent.yaml"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
