package child

import (
	"sync"

	"github.com/hupe1980/tabmesh/core"
)

// Store persists the identity assigned by the parent.
type Store interface {
	Load() (core.TabInfo, bool)
	Save(info core.TabInfo) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.RWMutex
	info core.TabInfo
	set  bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load returns the saved identity, if any.
func (s *MemoryStore) Load() (core.TabInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.set
}

// Save replaces the saved identity.
func (s *MemoryStore) Save(info core.TabInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
	s.set = true
	return nil
}
