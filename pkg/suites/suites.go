// Package suites holds the built-in example suites documenting
// core collection and string behaviour, and a named registry
// for selecting them.
package suites

import (
	"errors"
	"fmt"
	"sync"

	"digital.vasic.corespec/pkg/registry"
)

// Suite declares a set of scenario groups.
type Suite interface {
	// Name returns the suite's unique name.
	Name() string
	// Declare adds the suite's groups through d.
	Declare(d *registry.Declarer) error
}

type funcSuite struct {
	name string
	fn   func(d *registry.Declarer)
}

func (s funcSuite) Name() string { return s.name }

func (s funcSuite) Declare(d *registry.Declarer) error {
	s.fn(d)
	return nil
}

// New wraps a declaration function as a Suite.
func New(name string, fn func(d *registry.Declarer)) Suite {
	return funcSuite{name: name, fn: fn}
}

// Registry manages named suites. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	suites map[string]Suite
	order  []string
}

// NewRegistry creates an empty suite registry.
func NewRegistry() *Registry {
	return &Registry{suites: make(map[string]Suite)}
}

// Register adds a suite.
func (r *Registry) Register(s Suite) error {
	if s == nil {
		return fmt.Errorf("suite cannot be nil")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("suite name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suites[name]; exists {
		return fmt.Errorf("suite %q already registered", name)
	}
	r.suites[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a suite by name.
func (r *Registry) Get(name string) (Suite, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suites[name]
	return s, ok
}

// Names returns the suite names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Count returns the number of registered suites.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suites)
}

// DeclareAll declares the named suites through d, in the order
// given. With no names every suite is declared in registration
// order.
func (r *Registry) DeclareAll(d *registry.Declarer, names ...string) error {
	if len(names) == 0 {
		names = r.Names()
	}

	var errs []error
	for _, name := range names {
		s, ok := r.Get(name)
		if !ok {
			return fmt.Errorf("suite %q not found", name)
		}
		if err := s.Declare(d); err != nil {
			errs = append(errs, fmt.Errorf("declare suite %q: %w", name, err))
		}
	}
	if err := d.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Builtin returns a registry holding every built-in suite.
func Builtin() *Registry {
	r := NewRegistry()
	for _, s := range []Suite{
		New("array", Array),
		New("enumerable", Enumerable),
		New("enumerator", Enumerator),
		New("hash", Hash),
		New("string", String),
		Files(),
	} {
		// Built-in names are unique.
		_ = r.Register(s)
	}
	return r
}
