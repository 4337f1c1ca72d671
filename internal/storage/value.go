package storage

import (
	"encoding/json"
	"errors"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/logger"
)

// Value is a single JSON-encoded value persisted under a fixed key, with a
// default used whenever the stored record is absent or unreadable.
type Value[T any] struct {
	kv  KV
	key string
	def T
}

func NewValue[T any](kv KV, key string, def T) *Value[T] {
	return &Value[T]{kv: kv, key: key, def: def}
}

// Get returns the stored value, or the default.
func (v *Value[T]) Get() T {
	raw, err := v.kv.Get(v.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read stored value", "key", v.key, "error", err)
		}
		return v.def
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("Ignoring unreadable stored value", "key", v.key, "error", err)
		return v.def
	}
	return out
}

// Set stores value. Failures are logged and returned.
func (v *Value[T]) Set(value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := v.kv.Set(v.key, raw); err != nil {
		logger.Warn("Failed to store value", "key", v.key, "error", err)
		return err
	}
	return nil
}

// Remove deletes the stored record so Get returns the default again.
func (v *Value[T]) Remove() error {
	if err := v.kv.Remove(v.key); err != nil {
		logger.Warn("Failed to remove stored value", "key", v.key, "error", err)
		return err
	}
	return nil
}

// IsAvailable reports whether kv accepts writes, by writing and removing a
// probe key.
func IsAvailable(kv KV) bool {
	if kv == nil {
		return false
	}
	if err := kv.Set(constants.StorageProbeKey, []byte(constants.StorageProbeKey)); err != nil {
		return false
	}
	return kv.Remove(constants.StorageProbeKey) == nil
}
