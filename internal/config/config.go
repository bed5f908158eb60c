// Package config loads and validates the pipeline's YAML configuration.
//
// The file carries everything except credentials, which come from flags or
// the environment. Absent keys fall back to the documented defaults;
// explicitly invalid values fail validation. The declared schema version is
// checked against the build before any value is used.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/pipeline"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/ratelimit"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/strategy"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/version"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/quotesource"
)

// KindSMACrossover is the only strategy kind the config recognizes.
const KindSMACrossover = "sma_crossover"

// Config is the root of the pipeline configuration file.
type Config struct {
	Version  string         `yaml:"version" json:"version" jsonschema:"title=Schema Version,description=Config schema version; major and minor must match the build" validate:"required"`
	Source   SourceConfig   `yaml:"source" json:"source" jsonschema:"title=Source,description=Quote provider selection"`
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline" jsonschema:"title=Pipeline,description=Ingestion run parameters"`
	Store    StoreConfig    `yaml:"store" json:"store" jsonschema:"title=Store,description=DuckDB location"`
	Strategy StrategyConfig `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy,description=Optional signal strategy run after ingestion"`
}

// SourceConfig selects the quote provider. The API key never lives in the
// file; QuoteConfig combines it in from the caller.
type SourceConfig struct {
	Provider quotesource.SourceType `yaml:"provider" json:"provider" jsonschema:"title=Provider,description=Quote provider,enum=alphavantage,enum=polygon,enum=binance" validate:"required,oneof=alphavantage polygon binance"`
	BaseURL  string                 `yaml:"base_url" json:"base_url,omitempty" jsonschema:"title=Base URL,description=Endpoint override; empty uses the provider default"`
}

// QuoteConfig builds the provider config with the credential supplied at
// startup.
func (c SourceConfig) QuoteConfig(apiKey string) quotesource.Config {
	return quotesource.Config{
		Provider: c.Provider,
		APIKey:   apiKey,
		BaseURL:  c.BaseURL,
	}
}

// PipelineConfig holds the ingestion run parameters.
type PipelineConfig struct {
	Symbols      []string      `yaml:"symbols" json:"symbols" jsonschema:"title=Symbols,description=Ticker symbols to ingest" validate:"required,min=1,dive,required"`
	OutputSize   string        `yaml:"output_size" json:"output_size,omitempty" jsonschema:"title=Output Size,description=How much history to fetch per symbol,enum=compact,enum=full" validate:"omitempty,oneof=compact full"`
	ChunkSize    int           `yaml:"chunk_size" json:"chunk_size" jsonschema:"title=Chunk Size,description=Bars per store write,minimum=1" validate:"min=1"`
	RateInterval time.Duration `yaml:"rate_interval" json:"rate_interval" jsonschema:"title=Rate Interval,description=Fixed spacing between provider fetches (e.g. 12s)"`
}

// UnmarshalYAML fills absent keys with defaults and parses the rate
// interval from its duration string form. An explicit zero chunk size is
// kept and rejected by validation.
func (c *PipelineConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		Symbols      []string `yaml:"symbols"`
		OutputSize   string   `yaml:"output_size"`
		ChunkSize    *int     `yaml:"chunk_size"`
		RateInterval *string  `yaml:"rate_interval"`
	}

	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}

	c.Symbols = p.Symbols
	c.OutputSize = p.OutputSize

	c.ChunkSize = pipeline.DefaultChunkSize
	if p.ChunkSize != nil {
		c.ChunkSize = *p.ChunkSize
	}

	c.RateInterval = ratelimit.DefaultInterval
	if p.RateInterval != nil {
		interval, err := time.ParseDuration(*p.RateInterval)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid rate_interval %q", *p.RateInterval)
		}
		c.RateInterval = interval
	}

	return nil
}

// MarshalYAML writes the rate interval back in its duration string form,
// so a marshaled config parses again.
func (c PipelineConfig) MarshalYAML() (interface{}, error) {
	type plain struct {
		Symbols      []string `yaml:"symbols"`
		OutputSize   string   `yaml:"output_size,omitempty"`
		ChunkSize    int      `yaml:"chunk_size"`
		RateInterval string   `yaml:"rate_interval"`
	}

	return plain{
		Symbols:      c.Symbols,
		OutputSize:   c.OutputSize,
		ChunkSize:    c.ChunkSize,
		RateInterval: c.RateInterval.String(),
	}, nil
}

// Size returns the parsed output size. The empty string means compact.
func (c PipelineConfig) Size() (types.OutputSize, error) {
	return types.ParseOutputSize(c.OutputSize)
}

// StoreConfig locates the DuckDB database.
type StoreConfig struct {
	// Path is the database file. Empty runs in-memory.
	Path string `yaml:"path" json:"path,omitempty" jsonschema:"title=Store Path,description=DuckDB database file; empty runs in-memory"`
}

// StrategyConfig configures the optional signal strategy. An empty kind
// disables signal generation.
type StrategyConfig struct {
	Kind        string                     `yaml:"kind" json:"kind,omitempty" jsonschema:"title=Kind,description=Strategy implementation,enum=sma_crossover" validate:"omitempty,oneof=sma_crossover"`
	ShortWindow int                        `yaml:"short_window" json:"short_window,omitempty" jsonschema:"title=Short Window,description=Short moving-average window in trading days"`
	LongWindow  int                        `yaml:"long_window" json:"long_window,omitempty" jsonschema:"title=Long Window,description=Long moving-average window in trading days"`
	Threshold   decimal.Decimal            `yaml:"threshold" json:"threshold,omitempty" jsonschema:"title=Threshold,description=Minimum relative separation for a cross to fire"`
	StartDate   optional.Option[time.Time] `yaml:"start_date" json:"start_date,omitempty" jsonschema:"title=Start Date,description=Inclusive start of the signal date range"`
	EndDate     optional.Option[time.Time] `yaml:"end_date" json:"end_date,omitempty" jsonschema:"title=End Date,description=Inclusive end of the signal date range"`
}

// UnmarshalYAML maps the optional date bounds onto Option values and parses
// the threshold from its scalar form (quoted or not). Dates may be plain
// YAML timestamps (2024-01-02) or quoted strings in the same form; either
// way they are truncated to the day.
func (c *StrategyConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		Kind        string      `yaml:"kind"`
		ShortWindow int         `yaml:"short_window"`
		LongWindow  int         `yaml:"long_window"`
		Threshold   string      `yaml:"threshold"`
		StartDate   interface{} `yaml:"start_date"`
		EndDate     interface{} `yaml:"end_date"`
	}

	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}

	c.Kind = p.Kind
	c.ShortWindow = p.ShortWindow
	c.LongWindow = p.LongWindow

	c.Threshold = decimal.Zero
	if p.Threshold != "" {
		threshold, err := decimal.NewFromString(p.Threshold)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid threshold %q", p.Threshold)
		}
		c.Threshold = threshold
	}

	startDate, err := parseConfigDate("start_date", p.StartDate)
	if err != nil {
		return err
	}
	c.StartDate = startDate

	endDate, err := parseConfigDate("end_date", p.EndDate)
	if err != nil {
		return err
	}
	c.EndDate = endDate

	return nil
}

// parseConfigDate accepts the two forms YAML delivers a date in: a resolved
// timestamp for plain scalars and a string for quoted ones.
func parseConfigDate(field string, raw interface{}) (optional.Option[time.Time], error) {
	switch v := raw.(type) {
	case nil:
		return optional.None[time.Time](), nil
	case time.Time:
		return optional.Some(types.DateOnly(v.UTC())), nil
	case string:
		day, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return optional.None[time.Time](), errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
				"invalid %s %q: expected YYYY-MM-DD", field, v)
		}

		return optional.Some(day), nil
	default:
		return optional.None[time.Time](), errors.Newf(errors.ErrCodeInvalidConfiguration,
			"invalid %s: expected YYYY-MM-DD", field)
	}
}

// MarshalYAML writes the date bounds as plain dates and the threshold as a
// string, matching the forms UnmarshalYAML reads.
func (c StrategyConfig) MarshalYAML() (interface{}, error) {
	type plain struct {
		Kind        string `yaml:"kind,omitempty"`
		ShortWindow int    `yaml:"short_window,omitempty"`
		LongWindow  int    `yaml:"long_window,omitempty"`
		Threshold   string `yaml:"threshold,omitempty"`
		StartDate   string `yaml:"start_date,omitempty"`
		EndDate     string `yaml:"end_date,omitempty"`
	}

	p := plain{
		Kind:        c.Kind,
		ShortWindow: c.ShortWindow,
		LongWindow:  c.LongWindow,
	}
	if c.Kind != "" {
		p.Threshold = c.Threshold.String()
	}
	if c.StartDate.IsSome() {
		p.StartDate = c.StartDate.Unwrap().Format(time.DateOnly)
	}
	if c.EndDate.IsSome() {
		p.EndDate = c.EndDate.Unwrap().Format(time.DateOnly)
	}

	return p, nil
}

// Enabled reports whether a strategy is configured.
func (c StrategyConfig) Enabled() bool {
	return c.Kind != ""
}

// Build constructs the configured strategy.
func (c StrategyConfig) Build() (strategy.Strategy, error) {
	switch c.Kind {
	case KindSMACrossover:
		return strategy.NewSMACrossover(strategy.Config{
			ShortWindow: c.ShortWindow,
			LongWindow:  c.LongWindow,
			Threshold:   c.Threshold,
		})
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported strategy kind: %s", c.Kind)
	}
}

// DateRange returns the configured signal date bounds.
func (c StrategyConfig) DateRange() types.DateRange {
	return types.DateRange{Start: c.StartDate, End: c.EndDate}
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "reading config %s failed", path)
	}

	return Parse(data)
}

// Parse parses and validates a YAML config document.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "parsing config failed")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the config against its tags, the schema version gate and
// the strategy constructor, so a bad file fails at startup rather than
// mid-run.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "config validation failed")
	}

	if err := version.CheckSchemaCompatibility(c.Version); err != nil {
		return errors.Wrapf(errors.ErrCodeIncompatibleVersion, err, "config schema version %s is not supported", c.Version)
	}

	if _, err := c.Pipeline.Size(); err != nil {
		return err
	}

	if c.Strategy.Enabled() {
		if _, err := c.Strategy.Build(); err != nil {
			return err
		}
	}

	return nil
}

// Default returns the documented defaults: Alpha Vantage, AAPL and TSLA
// compact, a file-backed store and the stock 20/50 crossover.
func Default() Config {
	strategyDefaults := strategy.DefaultConfig()

	return Config{
		Version: version.SchemaVersion,
		Source: SourceConfig{
			Provider: quotesource.SourceAlphaVantage,
		},
		Pipeline: PipelineConfig{
			Symbols:      []string{"AAPL", "TSLA"},
			OutputSize:   string(types.OutputSizeCompact),
			ChunkSize:    pipeline.DefaultChunkSize,
			RateInterval: ratelimit.DefaultInterval,
		},
		Store: StoreConfig{
			Path: "data/backtester.duckdb",
		},
		Strategy: StrategyConfig{
			Kind:        KindSMACrossover,
			ShortWindow: strategyDefaults.ShortWindow,
			LongWindow:  strategyDefaults.LongWindow,
			Threshold:   strategyDefaults.Threshold,
			StartDate:   optional.None[time.Time](),
			EndDate:     optional.None[time.Time](),
		},
	}
}

// TestConfig returns a config pointed at a stub provider endpoint, with an
// in-memory store and no fetch pacing.
func TestConfig(baseURL string) Config {
	return Config{
		Version: version.SchemaVersion,
		Source: SourceConfig{
			Provider: quotesource.SourceAlphaVantage,
			BaseURL:  baseURL,
		},
		Pipeline: PipelineConfig{
			Symbols:      []string{"AAPL"},
			OutputSize:   string(types.OutputSizeCompact),
			ChunkSize:    pipeline.DefaultChunkSize,
			RateInterval: 0,
		},
		Store: StoreConfig{},
		Strategy: StrategyConfig{
			Kind:        KindSMACrossover,
			ShortWindow: 2,
			LongWindow:  5,
			Threshold:   decimal.Zero,
			StartDate:   optional.None[time.Time](),
			EndDate:     optional.None[time.Time](),
		},
	}
}
