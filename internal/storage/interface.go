package storage

import (
	"errors"

	"github.com/julianstephens/daypilot/internal/models"
)

var (
	// ErrNotFound is returned when a key or event does not exist
	ErrNotFound = errors.New("not found")
	// ErrQuotaExceeded is returned when a write would exceed the store's capacity
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// KV is a durable string-keyed byte store.
type KV interface {
	// Get returns ErrNotFound when the key is absent.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Remove is a no-op for absent keys.
	Remove(key string) error
}

// EventStore persists events in insertion order.
type EventStore interface {
	AddEvent(models.Event) error
	GetEvent(id string) (models.Event, error)
	GetAllEvents() ([]models.Event, error)
	UpdateEvent(models.Event) error
	DeleteEvent(id string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	KV
	EventStore

	// Utils
	GetConfigPath() string
}
