package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/strategy"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// defaultSymbols seeds an ingest request that names no symbols.
var defaultSymbols = []string{"AAPL", "TSLA"}

// handleIngest starts a pipeline run in the background and returns its
// handle immediately. Progress is polled through the status endpoint.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	symbols := splitSymbols(query.Get("symbols"))
	if len(symbols) == 0 {
		symbols = defaultSymbols
	}

	size, err := types.ParseOutputSize(query.Get("outputSize"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := s.tracker.Start(r.Context(), s.pipeline, symbols, size)
	snapshot, _ := s.tracker.Get(runID)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "started",
		"runId":      runID,
		"state":      snapshot.State,
		"symbols":    symbols,
		"outputSize": size,
		"startTime":  snapshot.StartedAt,
	})
}

// handleRunStatus looks up a run's live snapshot.
func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]

	snapshot, ok := s.tracker.Get(runID)
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.Newf(errors.ErrCodeRunNotFound, "run %s not found", runID))
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleBatchHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "UP",
		"service":   "batch",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGenerateSignals runs the crossover over stored bars for one symbol
// and persists the result.
func (s *Server) handleGenerateSignals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	symbol := strings.ToUpper(strings.TrimSpace(query.Get("symbol")))
	if symbol == "" {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeMissingSymbol, "symbol parameter is required"))
		return
	}

	strat, err := strategyFromQuery(query)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	dateRange, err := types.ParseDateRange(query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	count, err := s.signals.GenerateSignals(r.Context(), symbol, strat, dateRange)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":           "completed",
		"symbol":           symbol,
		"strategy":         strat.Name(),
		"strategyId":       strat.ID(),
		"signalsGenerated": count,
		"parameters":       strat.Describe().Parameters,
		"startDate":        echoDate(dateRange.Start),
		"endDate":          echoDate(dateRange.End),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGenerateSignalsBulk runs the crossover over every named symbol in
// order and reports the total persisted.
func (s *Server) handleGenerateSignalsBulk(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	symbols := splitSymbols(query.Get("symbols"))
	if len(symbols) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeMissingSymbol, "symbols parameter is required"))
		return
	}

	strat, err := strategyFromQuery(query)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	dateRange, err := types.ParseDateRange(query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	total, err := s.signals.GenerateSignalsBulk(r.Context(), symbols, strat, dateRange)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":                "completed",
		"symbols":               symbols,
		"strategy":              strat.Name(),
		"totalSignalsGenerated": total,
		"parameters":            strat.Describe().Parameters,
		"timestamp":             time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStrategyInfo describes the crossover built from the query
// parameters without running it.
func (s *Server) handleStrategyInfo(w http.ResponseWriter, r *http.Request) {
	strat, err := strategyFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	info := strat.Describe()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"strategyId":        info.ID,
		"strategyName":      info.Name,
		"description":       info.Description,
		"parameters":        info.Parameters,
		"minimumDataPoints": info.MinimumDataPoints,
	})
}

// handleSignalSummary counts the stored signals for one symbol by type.
func (s *Server) handleSignalSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	symbol := strings.ToUpper(strings.TrimSpace(query.Get("symbol")))
	if symbol == "" {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeMissingSymbol, "symbol parameter is required"))
		return
	}

	strat, err := strategyFromQuery(query)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	counts, err := s.signals.SignalSummary(r.Context(), symbol, strat.ID())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"symbol":       symbol,
		"strategyId":   strat.ID(),
		"counts":       counts,
		"totalSignals": total,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStrategyHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "UP",
		"service":   "strategy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// splitSymbols parses a comma-separated symbol list, trimming and
// uppercasing entries and dropping empties.
func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, part := range parts {
		symbol := strings.ToUpper(strings.TrimSpace(part))
		if symbol == "" {
			continue
		}
		symbols = append(symbols, symbol)
	}

	return symbols
}

// strategyFromQuery builds the crossover from shortPeriod, longPeriod and
// threshold, with the documented 20/50/0.01 defaults.
func strategyFromQuery(query url.Values) (*strategy.SMACrossover, error) {
	config := strategy.DefaultConfig()

	shortPeriod, err := queryInt(query, "shortPeriod", config.ShortWindow)
	if err != nil {
		return nil, err
	}
	config.ShortWindow = shortPeriod

	longPeriod, err := queryInt(query, "longPeriod", config.LongWindow)
	if err != nil {
		return nil, err
	}
	config.LongWindow = longPeriod

	if raw := query.Get("threshold"); raw != "" {
		threshold, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidThreshold, err, "invalid threshold %q: expected a decimal fraction", raw)
		}
		config.Threshold = threshold
	}

	return strategy.NewSMACrossover(config)
}

// queryInt reads an integer query parameter, falling back when absent.
func queryInt(query url.Values, key string, fallback int) (int, error) {
	raw := query.Get(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidRequest, err, "invalid %s %q: expected an integer", key, raw)
	}

	return value, nil
}

// echoDate renders an optional bound the way the response documents it.
func echoDate(bound optional.Option[time.Time]) string {
	if bound.IsNone() {
		return "all available data"
	}

	return bound.Unwrap().Format(time.DateOnly)
}
