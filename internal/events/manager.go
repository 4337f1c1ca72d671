// Package events holds the in-memory event collection and its derived views.
package events

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// Sink receives every successful mutation so it can be made durable.
type Sink interface {
	AddEvent(models.Event) error
	UpdateEvent(models.Event) error
	DeleteEvent(id string) error
}

// Listener is called with an insertion-ordered snapshot after each change.
// The snapshot is shared between listeners and must not be modified.
type Listener func([]models.Event)

// Manager owns the event collection. The zero value is not usable; call New.
type Manager struct {
	mu     sync.RWMutex
	events []models.Event

	// sinkMu is held from an in-memory change until the sink has seen it,
	// so storage applies mutations in the same order as memory.
	sinkMu      sync.Mutex
	sink        Sink
	onSinkError func(error)

	clock func() time.Time
	newID func() string

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

type Option func(*Manager)

// WithSink mirrors mutations to durable storage. Sink failures are logged,
// never returned, and never undo the in-memory change.
func WithSink(s Sink) Option {
	return func(m *Manager) { m.sink = s }
}

// WithSinkErrorHandler is called with every sink failure after it has been
// logged. Short-lived callers use it to report writes that never landed.
func WithSinkErrorHandler(fn func(error)) Option {
	return func(m *Manager) { m.onSinkError = fn }
}

// WithEvents seeds the collection, e.g. with events loaded from storage.
func WithEvents(events []models.Event) Option {
	return func(m *Manager) {
		m.events = append([]models.Event(nil), events...)
	}
}

func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

func New(opts ...Option) *Manager {
	m := &Manager{
		clock:     time.Now,
		newID:     newEventID,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// newEventID returns a time-ordered UUID, unique even for adds in the same
// millisecond.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Add stores e under a fresh ID and returns the stored event. Any ID on the
// input is ignored. Fields are not validated here.
func (m *Manager) Add(e models.Event) models.Event {
	m.sinkMu.Lock()
	m.mu.Lock()
	e.ID = m.newID()
	m.events = append(m.events, e)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.persist("save", e.ID, func(s Sink) error { return s.AddEvent(e) })
	m.sinkMu.Unlock()

	m.notify(snapshot)
	return e
}

// Update merges patch into the event with the given ID. An unknown ID is a
// no-op; the result reports whether an event matched. An empty patch
// changes nothing and is not written.
func (m *Manager) Update(id string, patch models.EventPatch) bool {
	m.sinkMu.Lock()
	m.mu.Lock()
	idx := m.indexLocked(id)
	if idx < 0 || patch.Empty() {
		m.mu.Unlock()
		m.sinkMu.Unlock()
		return idx >= 0
	}
	patch.Apply(&m.events[idx])
	updated := m.events[idx]
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.persist("update", id, func(s Sink) error { return s.UpdateEvent(updated) })
	m.sinkMu.Unlock()

	m.notify(snapshot)
	return true
}

// Delete removes the event with the given ID. An unknown ID is a no-op; the
// result reports whether an event was removed.
func (m *Manager) Delete(id string) bool {
	m.sinkMu.Lock()
	m.mu.Lock()
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		m.sinkMu.Unlock()
		return false
	}
	m.events = append(m.events[:idx], m.events[idx+1:]...)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.persist("delete", id, func(s Sink) error { return s.DeleteEvent(id) })
	m.sinkMu.Unlock()

	m.notify(snapshot)
	return true
}

// persist must be called with sinkMu held.
func (m *Manager) persist(op, id string, write func(Sink) error) {
	if m.sink == nil {
		return
	}
	if err := write(m.sink); err != nil {
		logger.Warn("Failed to persist event change", "op", op, "id", id, "error", err)
		if m.onSinkError != nil {
			m.onSinkError(fmt.Errorf("failed to %s event %s: %w", op, id, err))
		}
	}
}

// Replace swaps the whole collection without touching the sink, e.g. after
// reloading from storage.
func (m *Manager) Replace(events []models.Event) {
	m.sinkMu.Lock()
	m.mu.Lock()
	m.events = append([]models.Event(nil), events...)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.sinkMu.Unlock()

	m.notify(snapshot)
}

func (m *Manager) Get(id string) (models.Event, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return models.Event{}, false
	}
	return m.events[idx], true
}

// All returns the events in insertion order.
func (m *Manager) All() []models.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// EventsOn returns the events on date's calendar day, ordered by time of
// day. Ties keep insertion order. The stored collection is never reordered.
func (m *Manager) EventsOn(date time.Time) []models.Event {
	m.mu.RLock()
	var out []models.Event
	for _, e := range m.events {
		if utils.SameDay(e.Date, date) {
			out = append(out, e)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return timeKey(out[i]) < timeKey(out[j])
	})
	return out
}

// EventsToday is EventsOn for the current date.
func (m *Manager) EventsToday() []models.Event {
	return m.EventsOn(m.clock())
}

// Sorted returns every event ordered by date, then time of day.
func (m *Manager) Sorted() []models.Event {
	out := m.All()
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := utils.StartOfDay(out[i].Date), utils.StartOfDay(out[j].Date)
		if !utils.SameDay(di, dj) {
			return di.Before(dj)
		}
		return timeKey(out[i]) < timeKey(out[j])
	})
	return out
}

// EventsInMonth groups a month's events by day of month, each day ordered as
// in EventsOn.
func (m *Manager) EventsInMonth(year int, month time.Month) map[int][]models.Event {
	m.mu.RLock()
	byDay := make(map[int][]models.Event)
	for _, e := range m.events {
		y, mo, d := e.Date.Date()
		if y == year && mo == month {
			byDay[d] = append(byDay[d], e)
		}
	}
	m.mu.RUnlock()

	for _, day := range byDay {
		sort.SliceStable(day, func(i, j int) bool {
			return timeKey(day[i]) < timeKey(day[j])
		})
	}
	return byDay
}

// Now returns the manager's current time.
func (m *Manager) Now() time.Time {
	return m.clock()
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (m *Manager) Subscribe(fn Listener) (cancel func()) {
	m.listenersMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.listenersMu.Unlock()

	return func() {
		m.listenersMu.Lock()
		delete(m.listeners, id)
		m.listenersMu.Unlock()
	}
}

func (m *Manager) notify(snapshot []models.Event) {
	m.listenersMu.Lock()
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (m *Manager) indexLocked(id string) int {
	for i := range m.events {
		if m.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshotLocked() []models.Event {
	return append([]models.Event(nil), m.events...)
}

// timeKey orders unparsable times after every valid one.
func timeKey(e models.Event) int {
	minutes, err := utils.ParseTimeToMinutes(e.Time)
	if err != nil {
		return 24 * 60
	}
	return minutes
}
