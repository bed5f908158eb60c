package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/store"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
)

// Application states.
const (
	StateSymbolSelect = iota
	StateViewSelect
	StateDataDisplay
)

// Model is the main Bubble Tea model for the store browser.
type Model struct {
	state      int
	symbolList list.Model
	viewList   list.Model
	dataTable  table.Model
	bars       store.MarketDataStore
	signals    store.SignalStore
	symbol     string
	view       string
	err        error
	width      int
	height     int
}

// NewModel creates a browser over the given stores.
func NewModel(bars store.MarketDataStore, signals store.SignalStore) Model {
	return Model{
		state:      StateSymbolSelect,
		symbolList: NewSymbolList(),
		viewList:   NewViewList(),
		dataTable:  NewBarTable(),
		bars:       bars,
		signals:    signals,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadSymbols
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m.handleEsc()
		case "r":
			if m.state == StateDataDisplay {
				return m, m.loadView()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.symbolList.SetSize(msg.Width, msg.Height-4)
		m.viewList.SetSize(msg.Width, msg.Height-4)
		m.sizeTable()
		return m, nil

	case SymbolsLoadedMsg:
		m.err = nil
		return m, m.symbolList.SetItems(SymbolItems(msg.Symbols))

	case BarsLoadedMsg:
		m.err = nil
		m.dataTable = NewBarTable()
		m.dataTable.SetRows(BarRows(msg.Bars))
		m.sizeTable()
		m.state = StateDataDisplay
		return m, nil

	case SignalsLoadedMsg:
		m.err = nil
		m.dataTable = NewSignalTable()
		m.dataTable.SetRows(SignalRows(msg.Signals))
		m.sizeTable()
		m.state = StateDataDisplay
		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateSymbolSelect:
		return m.updateSymbolSelect(msg)
	case StateViewSelect:
		return m.updateViewSelect(msg)
	case StateDataDisplay:
		return m.updateDataDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateViewSelect:
		m.state = StateSymbolSelect
		// Re-list in case an ingest ran while browsing.
		return m, m.loadSymbols
	case StateDataDisplay:
		m.err = nil
		m.state = StateViewSelect
	}

	return m, nil
}

func (m Model) updateSymbolSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.symbolList.SelectedItem().(listItem); ok {
				m.symbol = item.name
				m.state = StateViewSelect
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.symbolList, cmd = m.symbolList.Update(msg)
	return m, cmd
}

func (m Model) updateViewSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.viewList.SelectedItem().(listItem); ok {
				m.view = item.name
				return m, m.loadView()
			}
		}
	}

	var cmd tea.Cmd
	m.viewList, cmd = m.viewList.Update(msg)
	return m, cmd
}

func (m Model) updateDataDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dataTable, cmd = m.dataTable.Update(msg)
	return m, cmd
}

func (m *Model) sizeTable() {
	if m.width > 0 {
		m.dataTable.SetWidth(m.width)
		m.dataTable.SetHeight(m.height - 6)
	}
}

// loadSymbols queries the distinct stored symbols.
func (m Model) loadSymbols() tea.Msg {
	symbols, err := m.bars.Symbols(context.Background())
	if err != nil {
		return LoadErrorMsg{Err: err}
	}

	return SymbolsLoadedMsg{Symbols: symbols}
}

// loadView returns the command that loads the selected view's rows.
func (m Model) loadView() tea.Cmd {
	symbol := m.symbol

	if m.view == ViewSignals {
		signals := m.signals
		return func() tea.Msg {
			rows, err := signals.QuerySignals(context.Background(), symbol, "", types.FullRange())
			if err != nil {
				return LoadErrorMsg{Err: err}
			}
			return SignalsLoadedMsg{Signals: rows}
		}
	}

	bars := m.bars
	return func() tea.Msg {
		rows, err := bars.QueryBars(context.Background(), symbol, types.FullRange())
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		return BarsLoadedMsg{Bars: rows}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateSymbolSelect:
		s.WriteString(TitleStyle.Render("Backtester Store Browser"))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.symbolList.Items()) == 0 {
			s.WriteString("No symbols stored yet. Run an ingest first.\n")
		} else {
			s.WriteString(m.symbolList.View())
			s.WriteString("\n")
		}

		s.WriteString(HelpStyle.Render("Press Enter to select, q to quit"))

	case StateViewSelect:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s - Select View", m.symbol)))
		s.WriteString("\n\n")
		s.WriteString(m.viewList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, Esc to go back"))

	case StateDataDisplay:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s - %s", m.symbol, m.view)))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.dataTable.Rows()) == 0 {
			s.WriteString("No rows for this view.\n")
		} else {
			s.WriteString(m.dataTable.View())
			s.WriteString("\n")
		}

		s.WriteString(HelpStyle.Render(fmt.Sprintf("r: refresh | Esc: back | Browsing: %s", m.symbol)))
	}

	return s.String()
}
