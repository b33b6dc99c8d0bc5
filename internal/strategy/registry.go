package strategy

import (
	"sort"
	"sync"

	"github.com/quantlab/backtest/pkg/errors"
)

// Factory builds a strategy from run options.
type Factory func(opts Options) (Strategy, error)

// Registry manages the available strategy factories by name.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates a registry pre-populated with every built-in strategy.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		mu:        sync.RWMutex{},
	}

	// Registration of built-ins cannot collide.
	_ = r.Register(NameBollingerBands, func(opts Options) (Strategy, error) { return NewBollingerBands(opts) })
	_ = r.Register(NameMACD, func(opts Options) (Strategy, error) { return NewMACD(opts) })
	_ = r.Register(NameRSI, func(opts Options) (Strategy, error) { return NewRSI(opts) })
	_ = r.Register(NameSMACrossover, func(opts Options) (Strategy, error) { return NewSMACrossover(opts) })
	_ = r.Register(NameMACrossover, func(opts Options) (Strategy, error) { return NewMACrossover(opts) })
	_ = r.Register(NameVWAP, func(opts Options) (Strategy, error) { return NewVWAP(opts) })

	return r
}

// Register adds a strategy factory under the given name.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists,
			"strategy %q already registered", name)
	}

	r.factories[name] = factory

	return nil
}

// Create builds the named strategy with the given options.
func (r *Registry) Create(name string, opts Options) (Strategy, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy,
			"unknown strategy %q, available: %v", name, r.List())
	}

	return factory(opts)
}

// List returns the sorted names of all registered strategies.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
