package store

import (
	"context"
	"sync"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// MemoryStore keeps everything in process memory. It backs the test suites
// and STORE_DRIVER=memory deployments that do not need durability.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	events   []models.Event
	workers  []models.Worker
	stations []models.Workstation
	seen     map[memKey]struct{}
}

// memKey mirrors the Postgres idx_events_identity unique index: count stays
// zero for state events so it only distinguishes product_count observations.
type memKey struct {
	workerID  string
	stationID string
	kind      models.EventType
	unixNano  int64
	count     int
}

func keyOf(e models.Event) memKey {
	k := memKey{
		workerID:  e.WorkerID,
		stationID: e.StationID,
		kind:      e.Type,
		unixNano:  e.Timestamp.UnixNano(),
	}
	if e.Type == models.EventProductCount {
		k.count = e.Count
	}
	return k
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[memKey]struct{})}
}

// InsertEvent appends a validated event, assigning the next insertion id.
func (m *MemoryStore) InsertEvent(_ context.Context, e models.Event) (int64, bool, error) {
	if err := e.Validate(); err != nil {
		return 0, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := keyOf(e)
	if _, dup := m.seen[k]; dup {
		return 0, false, nil
	}
	m.seen[k] = struct{}{}

	m.nextID++
	e.ID = m.nextID
	e.Timestamp = e.Timestamp.UTC()
	m.events = append(m.events, e)
	return e.ID, true, nil
}

// QueryEvents returns matching events in insertion order.
func (m *MemoryStore) QueryEvents(_ context.Context, f Filter) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Event
	for _, e := range m.events {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListWorkers returns the worker registry.
func (m *MemoryStore) ListWorkers(_ context.Context) ([]models.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Worker(nil), m.workers...), nil
}

// ListWorkstations returns the station registry.
func (m *MemoryStore) ListWorkstations(_ context.Context) ([]models.Workstation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Workstation(nil), m.stations...), nil
}

// ResetAndSeed discards everything and loads the fixture. A duplicated
// fixture row seeds once, mirroring the postgres driver's conflict-ignoring
// insert.
func (m *MemoryStore) ResetAndSeed(_ context.Context, fx Fixture) error {
	events := make([]models.Event, 0, len(fx.Events))
	seen := make(map[memKey]struct{}, len(fx.Events))
	var nextID int64
	for _, fe := range fx.Events {
		e, err := fe.Event()
		if err != nil {
			return err
		}
		k := keyOf(e)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		nextID++
		e.ID = nextID
		events = append(events, e)
	}

	workers := make([]models.Worker, 0, len(fx.Workers))
	for _, w := range fx.Workers {
		workers = append(workers, models.Worker{WorkerID: w.ID, Name: w.Name})
	}
	stations := make([]models.Workstation, 0, len(fx.Workstations))
	for _, s := range fx.Workstations {
		stations = append(stations, models.Workstation{StationID: s.ID, Name: s.Name})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID = nextID
	m.events = events
	m.workers = workers
	m.stations = stations
	m.seen = seen
	return nil
}

// Ping always succeeds; the store lives in the same process.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryStore) Close() {}
