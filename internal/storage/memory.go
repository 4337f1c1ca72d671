package storage

import (
	"fmt"
	"sync"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
)

// MemoryStore keeps everything in process memory. Key-value writes are
// limited to a byte quota.
type MemoryStore struct {
	mu     sync.RWMutex
	kv     map[string][]byte
	events []models.Event
	quota  int
	used   int
}

// NewMemoryStore creates a store with the given quota in bytes. A quota of
// zero or less uses the default.
func NewMemoryStore(quota int) *MemoryStore {
	if quota <= 0 {
		quota = constants.DefaultMemoryQuotaBytes
	}
	return &MemoryStore{
		kv:    make(map[string][]byte),
		quota: quota,
	}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.kv[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + entrySize(key, value)
	if old, ok := s.kv[key]; ok {
		used -= entrySize(key, old)
	}
	if used > s.quota {
		return fmt.Errorf("writing %q: %w", key, ErrQuotaExceeded)
	}

	s.kv[key] = append([]byte(nil), value...)
	s.used = used
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.kv[key]; ok {
		s.used -= entrySize(key, v)
		delete(s.kv, key)
	}
	return nil
}

func entrySize(key string, value []byte) int {
	return len(key) + len(value)
}

func (s *MemoryStore) AddEvent(e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.events {
		if existing.ID == e.ID {
			return fmt.Errorf("event %s already exists", e.ID)
		}
	}
	s.events = append(s.events, e)
	return nil
}

func (s *MemoryStore) GetEvent(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) GetAllEvents() ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Event(nil), s.events...), nil
}

func (s *MemoryStore) UpdateEvent(e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			return nil
		}
	}
	return fmt.Errorf("event %s: %w", e.ID, ErrNotFound)
}

func (s *MemoryStore) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return nil
}
