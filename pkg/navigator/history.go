package navigator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Entry is one record on the history stack. Keys are unique per entry,
// not per route, so two visits to the same screen stay distinguishable
// in tooling.
type Entry struct {
	Key   string
	Route router.Resolved
	At    time.Time
}

// history is the navigation stack. The top entry is the current route.
type history struct {
	mu    sync.Mutex
	stack []Entry
}

func newHistory() *history {
	return &history{}
}

func newEntry(route router.Resolved) Entry {
	return Entry{
		Key:   uuid.NewString(),
		Route: route,
		At:    time.Now(),
	}
}

// push adds a new top entry.
func (h *history) push(route router.Resolved) Entry {
	entry := newEntry(route)
	h.mu.Lock()
	h.stack = append(h.stack, entry)
	h.mu.Unlock()
	return entry
}

// replace swaps the top entry, or pushes when the stack is empty.
func (h *history) replace(route router.Resolved) Entry {
	entry := newEntry(route)
	h.mu.Lock()
	if len(h.stack) == 0 {
		h.stack = append(h.stack, entry)
	} else {
		h.stack[len(h.stack)-1] = entry
	}
	h.mu.Unlock()
	return entry
}

// current returns the top entry.
func (h *history) current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return Entry{}, false
	}
	return h.stack[len(h.stack)-1], true
}

// previous returns the entry underneath the top, the target of a Back.
func (h *history) previous() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) < 2 {
		return Entry{}, false
	}
	return h.stack[len(h.stack)-2], true
}

// dropTop removes the top entry.
func (h *history) dropTop() {
	h.mu.Lock()
	if len(h.stack) > 0 {
		h.stack = h.stack[:len(h.stack)-1]
	}
	h.mu.Unlock()
}

// depth returns the stack depth.
func (h *history) depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// entries returns a copy of the stack, oldest first.
func (h *history) entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.stack))
	copy(out, h.stack)
	return out
}
