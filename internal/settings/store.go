// Package settings keeps the process-wide display preferences and mirrors
// them to a storage.KV record.
package settings

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
)

var (
	ErrUnknownSetting = models.ErrUnknownSetting
	ErrInvalidValue   = models.ErrInvalidValue
)

// Preferences is the narrow view of the store handed to callers that only
// read and change settings.
type Preferences interface {
	Get() models.Settings
	SetField(key string, value any) error
	Reset()
}

type Listener func(models.Settings)

// Store holds the current settings. Writes to the backing KV are best effort:
// a failed write is logged and the in-memory value still takes effect.
type Store struct {
	kv  storage.KV
	key string

	// writeMu is held from an in-memory change until its record is written,
	// so the stored record always matches the latest change.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current models.Settings

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

var _ Preferences = (*Store)(nil)

// New loads the settings record from kv, merged over the defaults. A nil kv
// gives a store that only lives in memory.
func New(kv storage.KV) *Store {
	s := &Store{
		kv:        kv,
		key:       constants.SettingsStorageKey,
		current:   models.DefaultSettings(),
		listeners: make(map[int]Listener),
	}
	s.Reload()
	return s
}

// Reload re-reads the stored record. An absent or unreadable record gives the
// defaults.
func (s *Store) Reload() {
	s.writeMu.Lock()
	loaded := s.read()

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.notify(loaded.Clone())
}

func (s *Store) read() models.Settings {
	if s.kv == nil {
		return models.DefaultSettings()
	}

	raw, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read settings, using defaults", "error", err)
		}
		return models.DefaultSettings()
	}

	merged, warnings := models.MergeSettings(raw)
	for _, w := range warnings {
		logger.Warn("Stored settings", "warning", w)
	}
	return merged
}

// Get returns a copy of the current settings.
func (s *Store) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Field returns a single setting by key.
func (s *Store) Field(key string) (any, error) {
	return s.Get().Field(key)
}

// SetField replaces one setting and persists the whole record. Only an
// unknown key or a value of the wrong type is returned as an error.
func (s *Store) SetField(key string, value any) error {
	s.writeMu.Lock()
	s.mu.Lock()
	next, err := s.current.WithField(key, value)
	if err != nil {
		s.mu.Unlock()
		s.writeMu.Unlock()
		return err
	}
	s.current = next
	s.mu.Unlock()

	s.persist(next)
	s.writeMu.Unlock()

	s.notify(next.Clone())
	return nil
}

// SetFieldString parses raw for key, then behaves like SetField.
func (s *Store) SetFieldString(key, raw string) error {
	value, err := models.ParseSettingValue(key, raw)
	if err != nil {
		return err
	}
	return s.SetField(key, value)
}

// Reset restores the defaults, dropping any unknown fields, and persists them.
func (s *Store) Reset() {
	defaults := models.DefaultSettings()

	s.writeMu.Lock()
	s.mu.Lock()
	s.current = defaults
	s.mu.Unlock()

	s.persist(defaults)
	s.writeMu.Unlock()

	s.notify(defaults.Clone())
}

// persist must be called with writeMu held.
func (s *Store) persist(v models.Settings) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode settings", "error", err)
		return
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		logger.Warn("Failed to persist settings", "error", err)
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(v models.Settings) {
	s.listenersMu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
