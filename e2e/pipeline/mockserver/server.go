// Package mockserver provides a mock Alpha Vantage server for end-to-end
// tests. It serves deterministic daily series keyed by symbol.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// ServerConfig holds configuration for the mock server.
type ServerConfig struct {
	// Series maps each symbol to its ordered daily closes, oldest first.
	// Symbols outside the map answer with an empty payload.
	Series map[string][]float64
	// StartDate is the trade date of the first close in every series;
	// each following close lands on the next calendar day.
	StartDate time.Time
	// APIKey, when non-empty, must match the request's apikey parameter.
	APIKey string
	// ThrottleAfter, when positive, makes every request after the first N
	// answer with a rate-limit note.
	ThrottleAfter int
}

// MockAlphaVantageServer serves the TIME_SERIES_DAILY endpoint with
// deterministic data. The outputsize parameter is accepted and ignored;
// every response carries the full configured series.
type MockAlphaVantageServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	config   ServerConfig
	requests int
}

// NewMockAlphaVantageServer creates a new mock Alpha Vantage server.
func NewMockAlphaVantageServer(config ServerConfig) *MockAlphaVantageServer {
	return &MockAlphaVantageServer{
		config: config,
	}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockAlphaVantageServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	router := mux.NewRouter()
	router.HandleFunc("/query", s.handleQuery).Methods("GET")

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockAlphaVantageServer) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Address returns the address the server is listening on.
func (s *MockAlphaVantageServer) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the query endpoint URL for the server.
func (s *MockAlphaVantageServer) BaseURL() string {
	return "http://" + s.Address() + "/query"
}

// RequestCount returns how many fetches the server has answered.
func (s *MockAlphaVantageServer) RequestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.requests
}

func (s *MockAlphaVantageServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	count := s.requests
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if s.config.APIKey != "" && r.URL.Query().Get("apikey") != s.config.APIKey {
		json.NewEncoder(w).Encode(map[string]string{
			"Error Message": "the parameter apikey is invalid or missing",
		})

		return
	}

	if s.config.ThrottleAfter > 0 && count > s.config.ThrottleAfter {
		json.NewEncoder(w).Encode(map[string]string{
			"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day.",
		})

		return
	}

	closes, ok := s.config.Series[r.URL.Query().Get("symbol")]
	if !ok {
		json.NewEncoder(w).Encode(map[string]any{})

		return
	}

	series := make(map[string]map[string]string, len(closes))
	for i, closePrice := range closes {
		date := s.config.StartDate.AddDate(0, 0, i).Format(time.DateOnly)
		series[date] = map[string]string{
			"1. open":   formatPrice(closePrice - 1),
			"2. high":   formatPrice(closePrice + 2),
			"3. low":    formatPrice(closePrice - 2),
			"4. close":  formatPrice(closePrice),
			"5. volume": "1000000",
		}
	}

	json.NewEncoder(w).Encode(map[string]any{
		"Time Series (Daily)": series,
	})
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
