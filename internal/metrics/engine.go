package metrics

import (
	"context"
	"time"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/store"
)

// Engine computes metric views on demand from the event store. It holds no
// aggregation state: every call re-reads the relevant events and recomputes
// from scratch, which is what makes late and reordered arrivals harmless.
type Engine struct {
	store store.EventStore
}

func NewEngine(st store.EventStore) *Engine {
	return &Engine{store: st}
}

// WorkerMetrics returns the per-worker views. A zero asOf resolves to the
// latest event timestamp in the store (or now for an empty store).
func (e *Engine) WorkerMetrics(ctx context.Context, asOf time.Time) ([]models.WorkerMetrics, time.Time, error) {
	snap, err := e.snapshot(ctx, asOf)
	if err != nil {
		return nil, time.Time{}, err
	}
	return snap.Workers, snap.ComputedAt, nil
}

// WorkstationMetrics returns the per-station views.
func (e *Engine) WorkstationMetrics(ctx context.Context, asOf time.Time) ([]models.WorkstationMetrics, time.Time, error) {
	snap, err := e.snapshot(ctx, asOf)
	if err != nil {
		return nil, time.Time{}, err
	}
	return snap.Workstations, snap.ComputedAt, nil
}

// FactoryMetrics returns the factory-wide aggregate.
func (e *Engine) FactoryMetrics(ctx context.Context, asOf time.Time) (models.FactoryMetrics, error) {
	snap, err := e.snapshot(ctx, asOf)
	if err != nil {
		return models.FactoryMetrics{}, err
	}
	return snap.Factory, nil
}

func (e *Engine) snapshot(ctx context.Context, asOf time.Time) (Snapshot, error) {
	workers, err := e.store.ListWorkers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	stations, err := e.store.ListWorkstations(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	events, err := e.store.QueryEvents(ctx, store.Filter{})
	if err != nil {
		return Snapshot{}, err
	}
	return Compute(workers, stations, events, resolveAsOf(events, asOf)), nil
}

// resolveAsOf picks the computation cutoff. Wall-clock now is a poor default
// for replayed or seeded data (the open-world last interval would swallow the
// gap between the recorded day and today), so the latest observed timestamp
// is used unless the caller pins an explicit asOf.
func resolveAsOf(events []models.Event, asOf time.Time) time.Time {
	if !asOf.IsZero() {
		return asOf.UTC()
	}
	var latest time.Time
	for _, e := range events {
		if e.Timestamp.After(latest) {
			latest = e.Timestamp
		}
	}
	if latest.IsZero() {
		return time.Now().UTC()
	}
	return latest
}
