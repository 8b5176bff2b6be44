package tutor

// Store exposes tutor retrieval for services and handlers.
type Store interface {
	List() []Tutor
	FindByID(id string) (Tutor, bool)
	Default() Tutor
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Tutor
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied tutors.
func NewMemoryStore(items []Tutor) *MemoryStore {
	return &MemoryStore{items: append([]Tutor(nil), items...)}
}

// List returns the configured tutors.
func (s *MemoryStore) List() []Tutor {
	return append([]Tutor(nil), s.items...)
}

// FindByID looks up a tutor by identifier.
func (s *MemoryStore) FindByID(id string) (Tutor, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Tutor{}, false
}

// Default returns the persona used when a request names none, falling back
// to the first configured tutor.
func (s *MemoryStore) Default() Tutor {
	if t, ok := s.FindByID(DefaultID); ok {
		return t
	}
	if len(s.items) > 0 {
		return s.items[0]
	}
	return Tutor{}
}
