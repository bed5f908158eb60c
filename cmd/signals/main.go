package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/service"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/strategy"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
)

// signalsAction runs the crossover strategy over stored bars and prints
// per-symbol signal counts.
func signalsAction(ctx context.Context, cmd *cli.Command) error {
	symbols := parseSymbols(cmd.String("symbols"))
	if len(symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}

	threshold, err := decimal.NewFromString(cmd.String("threshold"))
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", cmd.String("threshold"), err)
	}

	strat, err := strategy.NewSMACrossover(strategy.Config{
		ShortWindow: int(cmd.Int("short-window")),
		LongWindow:  int(cmd.Int("long-window")),
		Threshold:   threshold,
	})
	if err != nil {
		return err
	}

	dateRange := types.FullRange()
	if start := cmd.Timestamp("start-date"); !start.IsZero() {
		dateRange.Start = optional.Some(types.DateOnly(start.UTC()))
	}
	if end := cmd.Timestamp("end-date"); !end.IsZero() {
		dateRange.End = optional.Some(types.DateOnly(end.UTC()))
	}

	appLogger := logger.NewNopLogger()
	if cmd.Bool("verbose") {
		appLogger, err = logger.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
	}

	db, err := store.Open(cmd.String("db"), appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return err
	}

	marketData := store.NewMarketDataStore(db)
	signalStore := store.NewSignalStore(db)
	signalService := service.NewSignalService(marketData, signalStore, appLogger)

	fmt.Printf("Running %s over %d symbols...\n", strat.Name(), len(symbols))

	total, runErr := signalService.GenerateSignalsBulk(ctx, symbols, strat, dateRange)

	for _, symbol := range symbols {
		counts, err := signalService.SignalSummary(ctx, symbol, strat.ID())
		if err != nil {
			fmt.Printf("  %-8s summary unavailable: %v\n", symbol, err)
			continue
		}
		fmt.Printf("  %-8s %d buy, %d sell\n", symbol,
			counts[types.SignalTypeBuy], counts[types.SignalTypeSell])
	}

	fmt.Printf("Generated %d new signals\n", total)

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
		Name:  "signals",
		Usage: "Generate moving-average crossover signals from stored bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbols",
				Aliases:  []string{"s"},
				Usage:    "Comma-separated ticker symbols",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "short-window",
				Usage: "Short moving-average window in trading days",
				Value: 20,
			},
			&cli.IntFlag{
				Name:  "long-window",
				Usage: "Long moving-average window in trading days",
				Value: 50,
			},
			&cli.StringFlag{
				Name:  "threshold",
				Usage: "Minimum relative separation for a crossover to fire",
				Value: "0.01",
			},
			&cli.TimestampFlag{
				Name:  "start-date",
				Usage: "Earliest trade date to consider, in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:  "end-date",
				Usage: "Latest trade date to consider, in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "DuckDB path (\":memory:\" for in-memory)",
				Value:   "data/backtester.duckdb",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log service internals to stdout",
			},
		},
		Action: signalsAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
