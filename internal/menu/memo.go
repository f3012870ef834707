package menu

import "sync"

// Memo caches the result of Group for the most recent input slice.
//
// The cache key is the slice identity (backing array and length), so a caller
// that replaces its items slice wholesale gets a fresh grouping, while repeated
// calls with the same slice reuse the previous result. Safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	valid   bool
	last    []Item
	grouped Grouped

	// computations counts how many times Group actually ran.
	computations int
}

// Get returns the grouping for items, recomputing only when items differs from
// the slice seen on the previous call.
func (m *Memo) Get(items []Item) Grouped {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && sameSlice(m.last, items) {
		return m.grouped
	}

	m.grouped = Group(items)
	m.last = items
	m.valid = true
	m.computations++
	return m.grouped
}

// Computations reports how many times Get actually ran Group.
func (m *Memo) Computations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computations
}

// Reset drops the cached grouping.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
	m.last = nil
	m.grouped = nil
}

func sameSlice(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
