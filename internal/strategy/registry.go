package strategy

import (
	"sort"
	"sync"

	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// Registry manages the available strategy implementations.
type Registry interface {
	Register(strategy Strategy) error
	Get(id string) (Strategy, error)
	List() []string
	Remove(id string) error
}

// RegistryV1 manages the available strategy implementations.
type RegistryV1 struct {
	strategies map[string]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates a new strategy registry.
func NewRegistry() Registry {
	return &RegistryV1{
		strategies: make(map[string]Strategy),
		mu:         sync.RWMutex{},
	}
}

// Register adds a strategy to the registry.
func (r *RegistryV1) Register(strategy Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := strategy.ID()
	if _, exists := r.strategies[id]; exists {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "Register: strategy with id %s already registered", id)
	}

	r.strategies[id] = strategy

	return nil
}

// Get retrieves a strategy by id.
func (r *RegistryV1) Get(id string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[id]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "Get: strategy with id %s not found", id)
	}

	return strategy, nil
}

// List returns the registered strategy ids in sorted order.
func (r *RegistryV1) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Remove removes a strategy from the registry.
func (r *RegistryV1) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[id]; !exists {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "Remove: strategy with id %s not found", id)
	}

	delete(r.strategies, id)

	return nil
}
