// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  A binary pulls in the
// components it serves with blank imports; main then calls InitAll(env)
// and Mount.
//
//	cmd/api      → components/users    (REST backend)
//	cmd/console  → components/console  (admin console)

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Initializer is optional.  If a Component implements it, InitAll calls
// Init(env) once before routes are mounted.
type Initializer interface {
	Init(Env) error
}

// Component contract.  Routes() mounts page, action, and API endpoints:
//
//	r := chi.NewRouter()
//	r.Get("/login", c.getLogin)
//	r.Route("/api", func(api chi.Router) { ... })
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// InitAll runs Init on every registered Initializer.
func InitAll(env Env) error {
	for _, c := range All() {
		if in, ok := c.(Initializer); ok {
			if err := in.Init(env); err != nil {
				return fmt.Errorf("component %s: %w", c.Name(), err)
			}
		}
	}
	return nil
}

// Mount attaches the first registered component (by name) at “/” and any
// further ones at “/<name>”.  chi allows one mount per pattern.
func Mount(r chi.Router) {
	for i, c := range All() {
		if i == 0 {
			r.Mount("/", c.Routes())
			continue
		}
		r.Mount("/"+c.Name(), c.Routes())
	}
}
