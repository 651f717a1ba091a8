// Package registry holds named agent runners behind lazy factories.
//
// A Registry is constructed explicitly and passed to whatever needs it.
// There is no package-level instance: callers own the lifecycle, which
// keeps tests isolated and lets a process carry more than one registry.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

// Factory builds an agent runner on first use.
type Factory func() (*agent.Runner, error)

// Registry maps agent names to runners. Construction is lazy: a factory
// runs at most once, on the first Get, and the runner it returns is
// served for every subsequent Get of that name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	instances map[string]*agent.Runner
	order     []string
	logger    *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: make(map[string]Factory),
		instances: make(map[string]*agent.Runner),
		logger:    logger,
	}
}

// Register adds a factory for name. Registering the same name twice is
// an error.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return &agent.ConfigError{Msg: "agent name is required"}
	}
	if factory == nil {
		return &agent.ConfigError{Msg: fmt.Sprintf("agent %q: factory is required", name)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &agent.ConfigError{Msg: fmt.Sprintf("agent %q already registered", name)}
	}

	r.factories[name] = factory
	r.order = append(r.order, name)
	r.logger.Debug("registered agent", "name", name)
	return nil
}

// Get returns the runner for name, constructing it on first use.
// Repeated calls return the same instance.
func (r *Registry) Get(name string) (*agent.Runner, error) {
	r.mu.RLock()
	if inst, ok := r.instances[name]; ok {
		r.mu.RUnlock()
		return inst, nil
	}
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown agent %q (available: %s)", name, strings.Join(r.List(), ", "))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have built it while we upgraded the lock.
	if inst, ok := r.instances[name]; ok {
		return inst, nil
	}

	inst, err := factory()
	if err != nil {
		return nil, fmt.Errorf("constructing agent %q: %w", name, err)
	}
	r.instances[name] = inst
	r.logger.Debug("constructed agent", "name", name)
	return inst, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// List returns registered agent names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ListSorted returns registered agent names alphabetically.
func (r *Registry) ListSorted() []string {
	names := r.List()
	sort.Strings(names)
	return names
}

// ClearInstances drops all constructed runners while keeping factories,
// so the next Get rebuilds from current configuration.
func (r *Registry) ClearInstances() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[string]*agent.Runner)
	r.logger.Debug("cleared agent instances")
}
