package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
)

// View names shown in the view selection list.
const (
	ViewBars    = "Bars"
	ViewSignals = "Signals"
)

// listItem implements the list.Item interface for the symbol and view lists.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// NewSymbolList creates the symbol selection list. Items arrive later via
// SymbolsLoadedMsg.
func NewSymbolList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Select Symbol"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// SymbolItems converts stored symbols into list items.
func SymbolItems(symbols []string) []list.Item {
	items := make([]list.Item, 0, len(symbols))
	for _, symbol := range symbols {
		items = append(items, listItem{name: symbol})
	}

	return items
}

// NewViewList creates the list for choosing between bars and signals.
func NewViewList() list.Model {
	items := []list.Item{
		listItem{name: ViewBars, description: "Daily OHLCV rows"},
		listItem{name: ViewSignals, description: "Generated crossover signals"},
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select View"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewBarTable creates the table for displaying daily bars.
func NewBarTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Open", Width: 12},
		{Title: "High", Width: 12},
		{Title: "Low", Width: 12},
		{Title: "Close", Width: 14},
		{Title: "Volume", Width: 14},
		{Title: "Source", Width: 14},
	}

	return newTable(columns)
}

// NewSignalTable creates the table for displaying trading signals.
func NewSignalTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Price", Width: 14},
		{Title: "Strength", Width: 12},
		{Title: "Strategy", Width: 22},
	}

	return newTable(columns)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// BarRows converts stored bars into table rows, oldest first.
func BarRows(bars []types.Bar) []table.Row {
	rows := make([]table.Row, 0, len(bars))

	for _, bar := range bars {
		rows = append(rows, table.Row{
			bar.Date.Format(time.DateOnly),
			bar.Open.StringFixed(2),
			bar.High.StringFixed(2),
			bar.Low.StringFixed(2),
			FormatCloseWithTrend(bar.Open, bar.Close),
			fmt.Sprintf("%d", bar.Volume),
			bar.Source,
		})
	}

	return rows
}

// SignalRows converts stored signals into table rows, oldest first.
func SignalRows(signals []types.Signal) []table.Row {
	rows := make([]table.Row, 0, len(signals))

	for _, signal := range signals {
		rows = append(rows, table.Row{
			signal.Date.Format(time.DateOnly),
			FormatSignalType(signal.Type),
			signal.PriceAtSignal.StringFixed(2),
			signal.Strength.StringFixed(4),
			signal.StrategyID,
		})
	}

	return rows
}
