package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daypilot/internal/models"
)

func newTestEvent(id, title string) models.Event {
	return models.Event{
		ID:       id,
		Title:    title,
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		Time:     "09:00",
		Category: models.CategoryWork,
	}
}

// exerciseProvider runs the shared contract every backend must satisfy.
func exerciseProvider(t *testing.T, store Provider) {
	t.Helper()

	t.Run("kv", func(t *testing.T) {
		if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.Set("k", []byte("v1")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Set("k", []byte("v2")); err != nil {
			t.Fatalf("Set overwrite failed: %v", err)
		}
		got, err := store.Get("k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "v2" {
			t.Errorf("expected v2, got %s", got)
		}
		if err := store.Remove("k"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if err := store.Remove("k"); err != nil {
			t.Errorf("Remove of absent key should be a no-op, got %v", err)
		}
		if _, err := store.Get("k"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after remove, got %v", err)
		}
	})

	t.Run("events", func(t *testing.T) {
		for _, e := range []models.Event{newTestEvent("b", "Second"), newTestEvent("a", "First"), newTestEvent("c", "Third")} {
			if err := store.AddEvent(e); err != nil {
				t.Fatalf("AddEvent failed: %v", err)
			}
		}

		all, err := store.GetAllEvents()
		if err != nil {
			t.Fatalf("GetAllEvents failed: %v", err)
		}
		if len(all) != 3 || all[0].ID != "b" || all[1].ID != "a" || all[2].ID != "c" {
			t.Fatalf("expected insertion order b,a,c, got %+v", all)
		}

		updated := all[1]
		updated.Title = "Renamed"
		updated.Description = "notes"
		if err := store.UpdateEvent(updated); err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}
		got, err := store.GetEvent("a")
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if got.Title != "Renamed" || got.Description != "notes" {
			t.Errorf("update not persisted: %+v", got)
		}
		if got.DateString() != updated.DateString() {
			t.Errorf("expected date %s, got %s", updated.DateString(), got.DateString())
		}

		if err := store.UpdateEvent(newTestEvent("zzz", "ghost")); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound updating unknown event, got %v", err)
		}

		if err := store.DeleteEvent("b"); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
		if err := store.DeleteEvent("b"); err != nil {
			t.Errorf("deleting a missing event should be a no-op, got %v", err)
		}
		if _, err := store.GetEvent("b"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseProvider(t, NewMemoryStore(0))
}

func TestMemoryStore_Quota(t *testing.T) {
	store := NewMemoryStore(16)

	if err := store.Set("a", []byte("0123456789")); err != nil {
		t.Fatalf("Set within quota failed: %v", err)
	}
	if err := store.Set("b", []byte("0123456789")); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
	if err := store.Set("a", []byte("short")); err != nil {
		t.Errorf("overwriting with a smaller value should fit, got %v", err)
	}
	if err := store.Remove("a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Set("b", []byte("0123456789")); err != nil {
		t.Errorf("expected space to be reclaimed after remove, got %v", err)
	}
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daypilot.json")
	store := NewJSONStore(path)

	if err := store.Load(); err == nil {
		t.Fatal("expected Load to fail before Init")
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail")
	}

	exerciseProvider(t, store)

	if err := store.Set("persisted", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.Get("persisted")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != `{"x":1}` {
		t.Errorf("expected persisted value, got %s", got)
	}
	events, err := reopened.GetAllEvents()
	if err != nil {
		t.Fatalf("GetAllEvents after reopen failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events after reopen, got %d", len(events))
	}
}

func TestValue(t *testing.T) {
	store := NewMemoryStore(0)
	tab := NewValue(store, "ui.tab", "calendar")

	if got := tab.Get(); got != "calendar" {
		t.Errorf("expected default, got %s", got)
	}
	if err := tab.Set("list"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := NewValue(store, "ui.tab", "calendar").Get(); got != "list" {
		t.Errorf("expected stored value, got %s", got)
	}

	if err := store.Set("ui.tab", []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := tab.Get(); got != "calendar" {
		t.Errorf("expected default for unreadable record, got %s", got)
	}

	if err := tab.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := tab.Get(); got != "calendar" {
		t.Errorf("expected default after remove, got %s", got)
	}
}

func TestValue_SetFailureIsReturned(t *testing.T) {
	store := NewMemoryStore(4)
	v := NewValue(store, "big", []int{})
	if err := v.Set([]int{1, 2, 3, 4, 5}); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable(NewMemoryStore(0)) {
		t.Error("expected memory store to be available")
	}
	if IsAvailable(NewMemoryStore(1)) {
		t.Error("expected a store without room for the probe to be unavailable")
	}
	if IsAvailable(nil) {
		t.Error("expected nil store to be unavailable")
	}
	if IsAvailable(NewJSONStore(filepath.Join(t.TempDir(), "unloaded.json"))) {
		t.Error("expected unloaded JSON store to be unavailable")
	}
}
