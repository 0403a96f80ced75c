package router

import (
	"sync"

	"github.com/hupe1980/tabmesh/core"
)

// listenerSet holds subscribed listeners in registration order.
type listenerSet struct {
	mu      sync.RWMutex
	nextID  int
	entries []listenerEntry
}

type listenerEntry struct {
	id int
	l  core.Listener
}

func (s *listenerSet) add(l core.Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, listenerEntry{id: id, l: l})
	return func() { s.remove(id) }
}

func (s *listenerSet) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// notify calls every listener in registration order.
func (s *listenerSet) notify(n core.Notification) {
	s.mu.RLock()
	entries := append([]listenerEntry(nil), s.entries...)
	s.mu.RUnlock()
	for _, e := range entries {
		e.l.Notify(n)
	}
}
