package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
)

func main() {
	dbPath := flag.String("db", "data/backtester.duckdb", "DuckDB path")
	flag.Parse()

	// The TUI owns the terminal, so the store logs nothing.
	db, err := store.Open(*dbPath, logger.NewNopLogger())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	m := NewModel(store.NewMarketDataStore(db), store.NewSignalStore(db))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Failed to run store browser: %v", err)
	}
}
