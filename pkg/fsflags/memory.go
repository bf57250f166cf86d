package fsflags

import (
	"os"
	"sync"
)

// MemoryFlagger is an in-memory Flagger for tests. Paths must be seeded
// before use; reading an unseeded path reports os.ErrNotExist.
type MemoryFlagger struct {
	mu sync.Mutex

	// Masks holds the current flag mask per path
	Masks map[string]uint32

	// Sets records every SetFlags call in order as path values
	Sets []string

	// SetErr, when set, is returned by every SetFlags
	SetErr error
}

// NewMemoryFlagger creates an empty MemoryFlagger
func NewMemoryFlagger() *MemoryFlagger {
	return &MemoryFlagger{Masks: make(map[string]uint32)}
}

// Flags implements Flagger
func (m *MemoryFlagger) Flags(path string) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mask, ok := m.Masks[path]
	if !ok {
		return 0, os.ErrNotExist
	}
	return mask, nil
}

// SetFlags implements Flagger
func (m *MemoryFlagger) SetFlags(path string, flags uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Masks[path] = flags
	m.Sets = append(m.Sets, path)
	return nil
}
