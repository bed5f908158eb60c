package main

import "github.com/pal-3/AlgorithmTradingBacktester/internal/types"

// SymbolsLoadedMsg carries the distinct symbols found in the store.
type SymbolsLoadedMsg struct {
	Symbols []string
}

// BarsLoadedMsg carries the stored bars for the selected symbol.
type BarsLoadedMsg struct {
	Bars []types.Bar
}

// SignalsLoadedMsg carries the stored signals for the selected symbol.
type SignalsLoadedMsg struct {
	Signals []types.Signal
}

// LoadErrorMsg indicates a store query failed.
type LoadErrorMsg struct {
	Err error
}
