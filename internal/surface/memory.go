package surface

import (
	"sync"

	"github.com/dshills/textdir/internal/direction"
)

// Memory is a surface that remembers the last direction pushed into it.
// It implements all three surface interfaces, so one instance can stand in
// for any of them. The CLI uses a Memory edit surface seeded from the
// resolver, the TUI uses one per selected document, and tests use it to
// observe what Apply delivered.
type Memory struct {
	mu sync.Mutex
	d  direction.Direction
	n  int
}

// NewMemory creates a memory surface holding the given initial direction.
func NewMemory(d direction.Direction) *Memory {
	if !d.IsValid() {
		d = direction.Default
	}
	return &Memory{d: d}
}

// Direction returns the last direction set.
func (m *Memory) Direction() direction.Direction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d
}

// SetDirection records the direction.
func (m *Memory) SetDirection(d direction.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.d = d
	m.n++
}

// SetCount returns how many times SetDirection has been called.
func (m *Memory) SetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}
