// internal/router/router.go
//
// Path router with explicit history subscription.
//
// Context
// -------
// The console maps a path string onto a view.  Router is a small state
// machine holding one thing, the current path.  It changes in two ways:
//
//   1. Navigate – programmatic.  History is pushed (or replaced) first,
//      then the current path is updated synchronously.
//   2. Popstate – the History reports that its location moved on its own
//      (back/forward).  Mount subscribes to that event, Close tears the
//      subscription down.
//
// Matching is a separate pure function, Match, over an ordered route list.
//
// Notes
// -----
// • Path-only.  No query, fragment, or parameterised segments.
// • Oxford commas, two spaces after periods.
package router

import "sync"

// History is the navigation backend a Router drives.
type History interface {
	Location() string
	Push(path string)
	Replace(path string)
	// Subscribe registers fn for externally triggered location changes.
	// The returned func removes the subscription.
	Subscribe(fn func(path string)) (unsubscribe func())
}

// Router tracks the current path of one History.
type Router struct {
	mu          sync.Mutex
	history     History
	current     string
	listeners   []func(string)
	unsubscribe func()
}

// New returns a Router positioned at h.Location().  Call Mount to follow
// popstate events.
func New(h History) *Router {
	return &Router{history: h, current: h.Location()}
}

// CurrentPath returns the path the Router currently points at.
func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to path, pushing a history entry unless replace is set.
func (r *Router) Navigate(path string, replace bool) {
	if replace {
		r.history.Replace(path)
	} else {
		r.history.Push(path)
	}
	r.set(path)
}

// OnChange registers fn to run after every current-path change.
func (r *Router) OnChange(fn func(path string)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Mount subscribes to the History's popstate events.  Repeated calls are
// no-ops until Close.
func (r *Router) Mount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unsubscribe != nil {
		return
	}
	r.unsubscribe = r.history.Subscribe(r.set)
}

// Close removes the popstate subscription.  Safe to call more than once.
func (r *Router) Close() error {
	r.mu.Lock()
	unsub := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	return nil
}

func (r *Router) set(path string) {
	r.mu.Lock()
	r.current = path
	ls := append([]func(string){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range ls {
		fn(path)
	}
}
