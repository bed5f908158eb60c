package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/api"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/config"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/pipeline"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/ratelimit"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/service"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/quotesource"
)

// serveAction composes the pipeline, signal service and HTTP server and
// blocks until an interrupt arrives.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync() //nolint:errcheck // flush is best effort on exit

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	// Flags override whatever the config file says.
	if source := cmd.String("source"); source != "" {
		cfg.Source.Provider = quotesource.SourceType(source)
	}
	if baseURL := cmd.String("base-url"); baseURL != "" {
		cfg.Source.BaseURL = baseURL
	}
	if dbPath := cmd.String("db"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	apiKey := cmd.String("api-key")
	if apiKey == "" {
		switch cfg.Source.Provider {
		case quotesource.SourcePolygon:
			apiKey = os.Getenv("POLYGON_API_KEY")
		default:
			apiKey = os.Getenv("ALPHA_VANTAGE_API_KEY")
		}
	}

	db, err := store.Open(cfg.Store.Path, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return err
	}

	source, err := quotesource.NewQuoteSource(cfg.Source.QuoteConfig(apiKey), appLogger)
	if err != nil {
		return err
	}

	marketData := store.NewMarketDataStore(db)
	signals := store.NewSignalStore(db)

	deps := pipeline.Dependencies{
		Source:     source,
		Limiter:    ratelimit.NewIntervalLimiter(cfg.Pipeline.RateInterval),
		MarketData: marketData,
		Signals:    signals,
	}
	if cfg.Strategy.Enabled() {
		strat, err := cfg.Strategy.Build()
		if err != nil {
			return err
		}
		deps.Strategy = strat
	}

	p, err := pipeline.NewPipeline(pipeline.Config{ChunkSize: cfg.Pipeline.ChunkSize}, deps, appLogger)
	if err != nil {
		return err
	}

	server := api.NewServer(p, pipeline.NewTracker(appLogger), service.NewSignalService(marketData, signals, appLogger), appLogger)
	if err := server.Start(fmt.Sprintf(":%d", cmd.Int("port"))); err != nil {
		return err
	}

	appLogger.Info("server ready",
		zap.String("address", server.Addr()),
		zap.String("provider", string(cfg.Source.Provider)),
		zap.String("store", cfg.Store.Path),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Stop(shutdownCtx)
}

func main() {
	cmd := &cli.Command{
		Name:  "server",
		Usage: "Serve the market data ingestion and signal generation API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				Value:   8080,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a pipeline config YAML file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "DuckDB path override (\":memory:\" for in-memory)",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: fmt.Sprintf("Quote provider override (%s, %s, %s)", quotesource.SourceAlphaVantage, quotesource.SourcePolygon, quotesource.SourceBinance),
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Provider endpoint override",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Provider API key. Defaults to ALPHA_VANTAGE_API_KEY or POLYGON_API_KEY depending on the provider.",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
