package admission

import "sync"

// Set keeps track of connections currently being served. Its size never exceeds the
// limit it was created with.
type Set struct {
	mu     sync.Mutex
	limit  int
	active map[string]struct{}
}

func New(limit int) *Set {
	return &Set{
		limit:  limit,
		active: make(map[string]struct{}, limit),
	}
}

// Acquire admits the id if there's a free slot. Acquiring an already admitted id is a no-op
// and reports success.
func (s *Set) Acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.active[id]; found {
		return true
	}

	if len(s.active) >= s.limit {
		return false
	}

	s.active[id] = struct{}{}
	return true
}

// Release frees the slot taken by the id. Unknown ids are ignored.
func (s *Set) Release(id string) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}

// Len returns the number of currently admitted ids.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.active)
}
