// Package strategy defines the trading-signal strategy contract and ships
// the moving-average crossover implementation.
//
// A Strategy is a pure function over an ordered bar series: it holds no
// state between calls and never touches storage, so implementations are
// safe to share across goroutines.
package strategy

import (
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
)

// Strategy is the contract every signal strategy implements. New strategies
// are new implementations registered under their own ID, not subclasses of
// an existing one.
type Strategy interface {
	// ID returns the unique identifier for this strategy and its
	// parameters, e.g. "sma_crossover_20_50".
	ID() string

	// Name returns the human-readable name of the strategy.
	Name() string

	// Describe returns the strategy's documentation surface.
	Describe() Info

	// MinimumDataPoints returns the minimum number of bars the strategy
	// needs to produce any signal.
	MinimumDataPoints() int

	// ValidateData reports whether the series can be evaluated: it must be
	// non-empty, at least MinimumDataPoints long, and sorted ascending by
	// date. Only a strict decrease between consecutive dates fails the
	// ordering check; equal consecutive dates are accepted.
	ValidateData(bars []types.Bar) error

	// GenerateSignals evaluates the strategy over the series and returns
	// the signals it fires, oldest first. The series is validated first
	// and a validation failure is returned as an error.
	GenerateSignals(bars []types.Bar) ([]types.Signal, error)
}

// Info describes a strategy for documentation and API responses.
type Info struct {
	ID                string         `json:"strategy_id"`
	Name              string         `json:"strategy_name"`
	Description       string         `json:"description"`
	Parameters        map[string]any `json:"parameters"`
	MinimumDataPoints int            `json:"minimum_data_points"`
}
