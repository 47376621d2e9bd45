package nav

import "sync"

// History is the client's location stack.
type History interface {
	// Path returns the current location, always starting with "/".
	Path() string
	// Push adds a location without notifying listeners.
	Push(path string)
	// Back returns to the previous location and notifies listeners. It
	// reports false when there is nowhere to go back to.
	Back() bool
	// Listen registers fn to be called with the new path after Back.
	Listen(fn func(path string))
}

// MemoryHistory is an in-process History.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []string
	listeners []func(string)
}

// NewMemoryHistory returns a history positioned at initial ("/" if empty).
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{normalizePath(initial)}}
}

func (h *MemoryHistory) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, normalizePath(path))
}

func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	if len(h.entries) < 2 {
		h.mu.Unlock()
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	path := h.entries[len(h.entries)-1]
	listeners := append(([]func(string))(nil), h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
	return true
}

func (h *MemoryHistory) Listen(fn func(path string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Len is the number of entries, the current one included.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func normalizePath(p string) string {
	if p == "" || p[0] != '/' {
		return "/" + p
	}
	return p
}
