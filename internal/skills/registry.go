package skills

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for the skills package.
var (
	// ErrStepAlreadyRegistered is returned when registering a duplicate step.
	ErrStepAlreadyRegistered = errors.New("step already registered")

	// ErrStepNotFound is returned when a step dependency is not found.
	ErrStepNotFound = errors.New("step not found")

	// ErrDependencyCycle is returned when step dependencies form a cycle.
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// Registry manages a skill's steps and their dependencies.
type Registry struct {
	mu    sync.RWMutex
	steps map[string]Step
	order []string // Maintains registration order
}

// NewRegistry creates an empty step registry.
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[string]Step),
		order: make([]string, 0),
	}
}

// Register adds a step to the registry.
// Returns an error if a step with the same name is already registered.
func (r *Registry) Register(s Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.steps[name]; exists {
		return fmt.Errorf("%w: %s", ErrStepAlreadyRegistered, name)
	}

	r.steps[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get returns a step by name.
func (r *Registry) Get(name string) (Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.steps[name]
	return s, ok
}

// Names returns all step names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// GetOrdered returns steps sorted by dependencies.
// Steps with no dependencies come first, then steps whose dependencies
// are satisfied, etc. When multiple steps are at the same dependency
// level, registration order is preserved.
func (r *Registry) GetOrdered() ([]Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Build in-degree count using r.order for deterministic iteration
	inDegree := make(map[string]int)
	for _, name := range r.order {
		inDegree[name] = 0
	}

	for _, name := range r.order {
		step := r.steps[name]
		for _, dep := range step.Dependencies() {
			if _, ok := r.steps[dep]; !ok {
				return nil, fmt.Errorf("%w: step %q depends on %q", ErrStepNotFound, name, dep)
			}
			inDegree[name]++
		}
	}

	// Kahn's algorithm for topological sort
	var queue []string
	for _, name := range r.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var ordered []Step
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		ordered = append(ordered, r.steps[name])

		for _, depName := range r.order {
			step := r.steps[depName]
			for _, dep := range step.Dependencies() {
				if dep == name {
					inDegree[depName]--
					if inDegree[depName] == 0 {
						queue = append(queue, depName)
					}
				}
			}
		}
	}

	// Check for cycles
	if len(ordered) != len(r.steps) {
		return nil, ErrDependencyCycle
	}

	return ordered, nil
}

// Validate checks that all step dependencies exist and form no cycle.
func (r *Registry) Validate() error {
	_, err := r.GetOrdered()
	return err
}
