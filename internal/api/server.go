// Package api serves the REST trigger surface: background ingestion runs
// and on-demand signal generation over stored bars.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/pipeline"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/service"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// Server exposes the batch and strategy endpoints over HTTP.
type Server struct {
	pipeline *pipeline.Pipeline
	tracker  *pipeline.Tracker
	signals  *service.SignalService
	logger   *logger.Logger

	httpServer *http.Server
	listener   net.Listener
}

// NewServer wires the ingestion pipeline and the signal service into an
// HTTP surface.
func NewServer(p *pipeline.Pipeline, tracker *pipeline.Tracker, signals *service.SignalService, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Server{
		pipeline: p,
		tracker:  tracker,
		signals:  signals,
		logger:   log,
	}
}

// Router builds the route table. Exposed so tests can drive handlers
// without a listener.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.logRequests)

	router.HandleFunc("/api/batch/market-data/ingest", s.handleIngest).Methods("POST")
	router.HandleFunc("/api/batch/status/{runId}", s.handleRunStatus).Methods("GET")
	router.HandleFunc("/api/batch/health", s.handleBatchHealth).Methods("GET")

	router.HandleFunc("/api/strategy/moving-average/signals", s.handleGenerateSignals).Methods("POST")
	router.HandleFunc("/api/strategy/moving-average/signals/bulk", s.handleGenerateSignalsBulk).Methods("POST")
	router.HandleFunc("/api/strategy/moving-average/info", s.handleStrategyInfo).Methods("GET")
	router.HandleFunc("/api/strategy/moving-average/summary", s.handleSignalSummary).Methods("GET")
	router.HandleFunc("/api/strategy/health", s.handleStrategyHealth).Methods("GET")

	return router
}

// Start serves the API on the given address. Empty or ":0" picks a free
// port; Addr reports the bound address.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "listening on %s failed", address)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("api listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Addr returns the bound listen address, or the empty string before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// logRequests writes one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]any{
		"status":  "error",
		"code":    errors.GetCode(err),
		"message": err.Error(),
	})
}
