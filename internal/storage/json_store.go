package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

type fileData struct {
	Version int               `json:"version"`
	KV      map[string]string `json:"kv"`
	Events  []models.Event    `json:"events"`
}

// JSONStore keeps all data in a single JSON file, rewritten on every change.
type JSONStore struct {
	mu   sync.Mutex
	path string
	data *fileData
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = &fileData{
		Version: 1,
		KV:      make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'daypilot init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := &fileData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if data.KV == nil {
		data.KV = make(map[string]string)
	}
	s.data = data

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := utils.WriteFileAtomic(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotLoaded
	}
	v, ok := s.data.KV[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotLoaded
	}
	s.data.KV[key] = string(value)
	return s.save()
}

func (s *JSONStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotLoaded
	}
	if _, ok := s.data.KV[key]; !ok {
		return nil
	}
	delete(s.data.KV, key)
	return s.save()
}

func (s *JSONStore) AddEvent(e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotLoaded
	}
	for _, existing := range s.data.Events {
		if existing.ID == e.ID {
			return fmt.Errorf("event %s already exists", e.ID)
		}
	}
	s.data.Events = append(s.data.Events, e)
	return s.save()
}

func (s *JSONStore) GetEvent(id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return models.Event{}, ErrNotLoaded
	}
	for _, e := range s.data.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetAllEvents() ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotLoaded
	}
	return append([]models.Event(nil), s.data.Events...), nil
}

func (s *JSONStore) UpdateEvent(e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotLoaded
	}
	for i := range s.data.Events {
		if s.data.Events[i].ID == e.ID {
			s.data.Events[i] = e
			return s.save()
		}
	}
	return fmt.Errorf("event %s: %w", e.ID, ErrNotFound)
}

func (s *JSONStore) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotLoaded
	}
	for i := range s.data.Events {
		if s.data.Events[i].ID == id {
			s.data.Events = append(s.data.Events[:i], s.data.Events[i+1:]...)
			return s.save()
		}
	}
	return nil
}
