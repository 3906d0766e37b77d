package block

import (
	"fmt"
	"sort"
	"sync"

	"github.com/c360/streamblocks/errors"
)

// Factory creates a block instance from configuration parameters.
// Factories validate everything synchronously: an unsupported dtype or a
// malformed parameter fails here, never later inside Work.
type Factory func(params Params) (Block, error)

// Registration holds factory and metadata for a block type
type Registration struct {
	Name        string  // Factory name (e.g. "clamp", "multiplexer")
	Category    string  // Block category (e.g. "stream", "testers", "file")
	Description string  // Human-readable description
	Factory     Factory `json:"-"`
}

// Registry manages block factories. It provides thread-safe registration
// and lookup by name.
type Registry struct {
	factories map[string]*Registration
	mu        sync.RWMutex
}

// NewRegistry creates a new empty block registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]*Registration)}
}

// Register adds a block factory. Duplicate names are rejected.
func (r *Registry) Register(reg Registration) error {
	if reg.Name == "" {
		return errors.WrapInvalidArgument(errors.ErrInvalidConfig,
			"Registry", "Register", "factory name validation")
	}
	if reg.Factory == nil {
		return errors.WrapInvalidArgument(errors.ErrInvalidConfig,
			"Registry", "Register", "factory function validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[reg.Name]; exists {
		err := fmt.Errorf("factory %q is already registered", reg.Name)
		return errors.WrapInvalidArgument(err, "Registry", "Register", "duplicate factory check")
	}
	r.factories[reg.Name] = &reg
	return nil
}

// Make creates a block instance using the named factory.
func (r *Registry) Make(name string, params Params) (Block, error) {
	r.mu.RLock()
	reg, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		err := fmt.Errorf("unknown block factory %q", name)
		return nil, errors.WrapInvalidArgument(err, "Registry", "Make", "factory lookup")
	}
	blk, err := reg.Factory(params)
	if err != nil {
		return nil, errors.Wrap(err, "Registry", "Make", "factory "+name)
	}
	return blk, nil
}

// Lookup returns the registration for a factory name
func (r *Registry) Lookup(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.factories[name]
	return reg, ok
}

// Names returns all registered factory names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
