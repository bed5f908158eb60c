package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

// FormatCloseWithTrend formats a close price with a direction marker based
// on comparison with the open.
func FormatCloseWithTrend(open, close decimal.Decimal) string {
	priceStr := close.StringFixed(2)

	if close.GreaterThan(open) {
		return priceStr + " ▲"
	} else if close.LessThan(open) {
		return priceStr + " ▼"
	}

	return priceStr
}

// FormatSignalType renders a signal type with its direction marker.
func FormatSignalType(signalType types.SignalType) string {
	switch signalType {
	case types.SignalTypeBuy:
		return "BUY ▲"
	case types.SignalTypeSell:
		return "SELL ▼"
	}

	return string(signalType)
}
