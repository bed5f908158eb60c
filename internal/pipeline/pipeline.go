// Package pipeline orchestrates the ingest, clean, signal and persist steps
// for a batch of symbols. Runs are strictly sequential: one symbol in
// flight, one outstanding fetch, a limiter wait before every fetch.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/cleaner"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/ratelimit"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/strategy"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/quotesource"
)

// DefaultChunkSize bounds how many bars go into a single store write.
const DefaultChunkSize = 100

// Config carries the explicit run parameters. There are no ambient
// defaults: callers pass a value, typically DefaultConfig().
type Config struct {
	// ChunkSize is the number of bars per store write. Must be >= 1.
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`
}

// DefaultConfig returns the config the trigger surfaces use.
func DefaultConfig() Config {
	return Config{ChunkSize: DefaultChunkSize}
}

// Dependencies are the collaborators a Pipeline is built from. Source,
// MarketData and Signals are required. Strategy is optional: when nil the
// run ingests bars without generating signals. A nil Limiter never waits.
type Dependencies struct {
	Source     quotesource.Source
	Limiter    ratelimit.Limiter
	MarketData store.MarketDataStore
	Signals    store.SignalStore
	Strategy   strategy.Strategy
}

// Pipeline runs the fetch, clean, signal, persist sequence for each
// requested symbol.
type Pipeline struct {
	config  Config
	deps    Dependencies
	cleaner *cleaner.Cleaner
	logger  *logger.Logger
}

// NewPipeline validates the config and dependencies and creates a Pipeline.
func NewPipeline(config Config, deps Dependencies, log *logger.Logger) (*Pipeline, error) {
	if config.ChunkSize < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidChunkSize, "chunk size must be at least 1, got %d", config.ChunkSize)
	}
	if deps.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "pipeline requires a quote source")
	}
	if deps.MarketData == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "pipeline requires a market data store")
	}
	if deps.Signals == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "pipeline requires a signal store")
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewNopLimiter()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Pipeline{
		config:  config,
		deps:    deps,
		cleaner: cleaner.NewCleaner(),
		logger:  log,
	}, nil
}

// Run processes the symbols strictly in order and returns the run summary.
// observe, when non-nil, receives every state transition.
//
// Per symbol: a rate-limit rejection from the source fails the run
// immediately; a transport failure or an empty fetch skips the symbol; an
// empty cleaned set skips the symbol; a series the strategy cannot validate
// skips signal generation but still persists the bars; any store failure
// fails the run. Nothing is retried and nothing already written is rolled
// back.
func (p *Pipeline) Run(ctx context.Context, symbols []string, size types.OutputSize, observe func(types.RunState)) (types.RunSummary, error) {
	summary := types.RunSummary{
		SymbolsRequested: len(symbols),
		StartedAt:        time.Now().UTC(),
	}
	if len(symbols) == 0 {
		return p.fail(&summary, observe, errors.New(errors.ErrCodeInvalidConfiguration, "a run requires at least one symbol"))
	}

	p.transition(observe, types.RunStateInitialized)
	p.logger.Info("run started",
		zap.Strings("symbols", symbols),
		zap.String("output_size", string(size)),
		zap.String("source", p.deps.Source.Name()),
	)

	for _, symbol := range symbols {
		p.transition(observe, types.RunStateFetching)
		if err := p.deps.Limiter.Wait(ctx); err != nil {
			return p.fail(&summary, observe, errors.Wrapf(errors.ErrCodeRunFailed, err, "run aborted while waiting to fetch %s", symbol))
		}

		raw, err := p.deps.Source.Fetch(ctx, symbol, size)
		if err != nil {
			if errors.IsRateLimit(err) {
				return p.fail(&summary, observe, errors.Wrapf(errors.ErrCodeRateLimitExceeded, err, "fetching %s exhausted the provider budget", symbol))
			}
			p.logger.Warn("fetch failed, skipping symbol",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			summary.SymbolsSkipped++
			continue
		}
		summary.BarsFetched += len(raw)
		if len(raw) == 0 {
			p.logger.Warn("no bars returned, skipping symbol", zap.String("symbol", symbol))
			summary.SymbolsSkipped++
			continue
		}

		p.transition(observe, types.RunStateCleaning)
		cleanBars, rejections := p.cleaner.Clean(raw)
		summary.BarsRejected += len(rejections)
		for _, rejection := range rejections {
			p.logger.Warn("rejected bar",
				zap.String("key", rejection.Bar.Key()),
				zap.Error(rejection.Err),
			)
		}
		if len(cleanBars) == 0 {
			p.logger.Warn("no bars survived cleaning, skipping symbol", zap.String("symbol", symbol))
			summary.SymbolsSkipped++
			continue
		}

		if p.deps.Strategy != nil {
			if err := p.runStrategy(ctx, symbol, cleanBars, &summary, observe); err != nil {
				return p.fail(&summary, observe, err)
			}
		}

		p.transition(observe, types.RunStatePersisting)
		for _, chunk := range chunkBars(cleanBars, p.config.ChunkSize) {
			written, err := p.deps.MarketData.UpsertBars(ctx, chunk)
			summary.BarsWritten += written
			if err != nil {
				return p.fail(&summary, observe, errors.Wrapf(errors.ErrCodeStoreWriteFailed, err, "persisting bars for %s failed", symbol))
			}
		}

		summary.SymbolsProcessed++
		p.logger.Info("symbol processed",
			zap.String("symbol", symbol),
			zap.Int("bars", len(cleanBars)),
			zap.Int("rejected", len(rejections)),
		)
	}

	summary.CompletedAt = time.Now().UTC()
	p.transition(observe, types.RunStateCompleted)
	p.logger.Info("run completed",
		zap.Int("processed", summary.SymbolsProcessed),
		zap.Int("skipped", summary.SymbolsSkipped),
		zap.Int("bars_written", summary.BarsWritten),
		zap.Int("signals_written", summary.SignalsWritten),
	)

	return summary, nil
}

// runStrategy generates and persists signals for one symbol. A series the
// strategy rejects is logged and skipped without failing the run; a store
// failure is returned and fails the run.
func (p *Pipeline) runStrategy(ctx context.Context, symbol string, bars []types.Bar, summary *types.RunSummary, observe func(types.RunState)) error {
	p.transition(observe, types.RunStateGeneratingSignals)

	if err := p.deps.Strategy.ValidateData(bars); err != nil {
		p.logger.Warn("series not eligible for signal generation",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return nil
	}

	signals, err := p.deps.Strategy.GenerateSignals(bars)
	if err != nil {
		p.logger.Warn("signal generation failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return nil
	}
	summary.SignalsGenerated += len(signals)
	if len(signals) == 0 {
		return nil
	}

	p.transition(observe, types.RunStatePersisting)
	written, err := p.deps.Signals.InsertSignals(ctx, signals)
	summary.SignalsWritten += written
	if err != nil {
		return errors.Wrapf(errors.ErrCodeStoreWriteFailed, err, "persisting signals for %s failed", symbol)
	}

	return nil
}

func (p *Pipeline) fail(summary *types.RunSummary, observe func(types.RunState), err error) (types.RunSummary, error) {
	summary.CompletedAt = time.Now().UTC()
	p.transition(observe, types.RunStateFailed)
	p.logger.Error("run failed", zap.Error(err))

	return *summary, err
}

func (p *Pipeline) transition(observe func(types.RunState), state types.RunState) {
	if observe != nil {
		observe(state)
	}
}

func chunkBars(bars []types.Bar, size int) [][]types.Bar {
	chunks := make([][]types.Bar, 0, (len(bars)+size-1)/size)
	for start := 0; start < len(bars); start += size {
		end := start + size
		if end > len(bars) {
			end = len(bars)
		}
		chunks = append(chunks, bars[start:end])
	}

	return chunks
}
