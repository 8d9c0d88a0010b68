package router

import "sync"

// subscribers is the popstate fan-out shared by the History types.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(string)
}

func (s *subscribers) add(fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = map[int]func(string){}
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) fire(path string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(path)
	}
}

// count reports the number of live subscriptions.
func (s *subscribers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

//
// MemoryHistory
//

// MemoryHistory is an in-process entry stack.  Push drops any forward
// entries; Back and Forward move the cursor and fire popstate.
type MemoryHistory struct {
	subscribers

	mu      sync.Mutex
	entries []string
	index   int
}

// NewMemoryHistory starts with a single entry at start.
func NewMemoryHistory(start string) *MemoryHistory {
	return &MemoryHistory{entries: []string{start}}
}

func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
	h.mu.Unlock()
}

func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	h.entries[h.index] = path
	h.mu.Unlock()
}

func (h *MemoryHistory) Subscribe(fn func(string)) func() { return h.add(fn) }

// Back steps one entry back.  It reports false at the first entry.
func (h *MemoryHistory) Back() bool { return h.step(-1) }

// Forward steps one entry forward.  It reports false at the last entry.
func (h *MemoryHistory) Forward() bool { return h.step(1) }

func (h *MemoryHistory) step(delta int) bool {
	h.mu.Lock()
	i := h.index + delta
	if i < 0 || i >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = i
	path := h.entries[i]
	h.mu.Unlock()

	h.fire(path)
	return true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

//
// RequestHistory
//

// RequestHistory adapts one HTTP request.  Its location is the request
// path; Push and Replace record a pending redirect that the HTTP layer
// answers with 303 See Other.  Popstate never fires: the browser's
// back/forward arrives as a fresh request.
type RequestHistory struct {
	subscribers

	path     string
	redirect string
	replace  bool
}

// NewRequestHistory positions the history at path.
func NewRequestHistory(path string) *RequestHistory {
	return &RequestHistory{path: path}
}

func (h *RequestHistory) Location() string { return h.path }

func (h *RequestHistory) Push(path string) {
	h.path, h.redirect, h.replace = path, path, false
}

func (h *RequestHistory) Replace(path string) {
	h.path, h.redirect, h.replace = path, path, true
}

func (h *RequestHistory) Subscribe(fn func(string)) func() { return h.add(fn) }

// Redirect returns the pending redirect target, if any, and whether it
// was recorded as a replace.
func (h *RequestHistory) Redirect() (path string, replace, ok bool) {
	return h.redirect, h.replace, h.redirect != ""
}
