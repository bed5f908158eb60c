package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/pipeline"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/ratelimit"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/strategy"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/quotesource"
)

// ingestAction runs one ingestion pass over the requested symbols and
// prints the run summary.
func ingestAction(ctx context.Context, cmd *cli.Command) error {
	symbols := parseSymbols(cmd.String("symbols"))
	if len(symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}

	size, err := types.ParseOutputSize(cmd.String("output-size"))
	if err != nil {
		return err
	}

	appLogger := logger.NewNopLogger()
	if cmd.Bool("verbose") {
		appLogger, err = logger.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
	}

	provider := quotesource.SourceType(cmd.String("source"))
	apiKey := cmd.String("api-key")
	if apiKey == "" {
		switch provider {
		case quotesource.SourcePolygon:
			apiKey = os.Getenv("POLYGON_API_KEY")
		default:
			apiKey = os.Getenv("ALPHA_VANTAGE_API_KEY")
		}
	}

	source, err := quotesource.NewQuoteSource(quotesource.Config{
		Provider: provider,
		APIKey:   apiKey,
	}, appLogger)
	if err != nil {
		return err
	}

	db, err := store.Open(cmd.String("db"), appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return err
	}

	deps := pipeline.Dependencies{
		Source:     source,
		Limiter:    ratelimit.NewIntervalLimiter(cmd.Duration("rate-interval")),
		MarketData: store.NewMarketDataStore(db),
		Signals:    store.NewSignalStore(db),
	}

	shortWindow := int(cmd.Int("short-window"))
	longWindow := int(cmd.Int("long-window"))
	if shortWindow > 0 || longWindow > 0 {
		threshold, err := decimal.NewFromString(cmd.String("threshold"))
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", cmd.String("threshold"), err)
		}
		deps.Strategy, err = strategy.NewSMACrossover(strategy.Config{
			ShortWindow: shortWindow,
			LongWindow:  longWindow,
			Threshold:   threshold,
		})
		if err != nil {
			return err
		}
	}

	p, err := pipeline.NewPipeline(pipeline.Config{ChunkSize: int(cmd.Int("chunk-size"))}, deps, appLogger)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(symbols), progressbar.OptionSetDescription("Ingesting"), progressbar.OptionShowCount())
	observe := func(state types.RunState) {
		if state == types.RunStateFetching {
			bar.Add(1)
		}
	}

	summary, runErr := p.Run(ctx, symbols, size, observe)
	bar.Finish()

	fmt.Printf("\nRun finished in %s\n", summary.CompletedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	fmt.Printf("  symbols: %d requested, %d processed, %d skipped\n",
		summary.SymbolsRequested, summary.SymbolsProcessed, summary.SymbolsSkipped)
	fmt.Printf("  bars:    %d fetched, %d rejected, %d written\n",
		summary.BarsFetched, summary.BarsRejected, summary.BarsWritten)
	if deps.Strategy != nil {
		fmt.Printf("  signals: %d generated, %d written\n",
			summary.SignalsGenerated, summary.SignalsWritten)
	}

	return runErr
}

// parseSymbols splits a comma-separated symbol list, trimming and
// uppercasing each entry.
func parseSymbols(input string) []string {
	parts := strings.Split(input, ",")
	symbols := make([]string, 0, len(parts))

	for _, p := range parts {
		s := strings.TrimSpace(strings.ToUpper(p))
		if s != "" {
			symbols = append(symbols, s)
		}
	}

	return symbols
}

func main() {
	cmd := &cli.Command{
		Name:  "ingest",
		Usage: "Fetch, clean and persist daily bars for a batch of symbols",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "symbols",
				Aliases: []string{"s"},
				Usage:   "Comma-separated ticker symbols",
				Value:   "AAPL,TSLA",
			},
			&cli.StringFlag{
				Name:    "output-size",
				Aliases: []string{"o"},
				Usage:   "How much history to fetch per symbol (compact, full)",
				Value:   string(types.OutputSizeCompact),
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: fmt.Sprintf("Quote provider (%s, %s, %s)", quotesource.SourceAlphaVantage, quotesource.SourcePolygon, quotesource.SourceBinance),
				Value: string(quotesource.SourceAlphaVantage),
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "DuckDB path (\":memory:\" for in-memory)",
				Value:   "data/backtester.duckdb",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Provider API key. Defaults to ALPHA_VANTAGE_API_KEY or POLYGON_API_KEY depending on the provider.",
			},
			&cli.DurationFlag{
				Name:  "rate-interval",
				Usage: "Minimum pause between provider calls",
				Value: ratelimit.DefaultInterval,
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Usage: "Bars per store write",
				Value: pipeline.DefaultChunkSize,
			},
			&cli.IntFlag{
				Name:  "short-window",
				Usage: "Short moving-average window; set together with --long-window to generate signals during ingest",
			},
			&cli.IntFlag{
				Name:  "long-window",
				Usage: "Long moving-average window; set together with --short-window to generate signals during ingest",
			},
			&cli.StringFlag{
				Name:  "threshold",
				Usage: "Minimum relative separation for a crossover to fire",
				Value: "0.01",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log pipeline internals to stdout",
			},
		},
		Action: ingestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
