package store

import (
	"context"
	"time"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// Filter narrows a QueryEvents call. Zero-value fields are ignored. The time
// window is half-open: [Since, Until).
type Filter struct {
	WorkerID  string
	StationID string
	Since     *time.Time
	Until     *time.Time
}

// EventStore is the persistence contract the aggregation engine consumes:
// append events, read them back in any order, list the registries, and the
// administrative reset-and-seed used for reproducible demonstrations.
type EventStore interface {
	// InsertEvent appends a validated event and returns its insertion id.
	// inserted is false when the event is a logical duplicate of a stored one.
	InsertEvent(ctx context.Context, e models.Event) (id int64, inserted bool, err error)

	// QueryEvents returns matching events in no particular order; callers sort.
	QueryEvents(ctx context.Context, f Filter) ([]models.Event, error)

	ListWorkers(ctx context.Context) ([]models.Worker, error)
	ListWorkstations(ctx context.Context) ([]models.Workstation, error)

	// ResetAndSeed clears all data and inserts the fixture.
	ResetAndSeed(ctx context.Context, fx Fixture) error

	// Ping backs the readiness endpoint.
	Ping(ctx context.Context) error

	Close()
}

func (f Filter) matches(e models.Event) bool {
	if f.WorkerID != "" && e.WorkerID != f.WorkerID {
		return false
	}
	if f.StationID != "" && e.StationID != f.StationID {
		return false
	}
	if f.Since != nil && e.Timestamp.Before(*f.Since) {
		return false
	}
	if f.Until != nil && !e.Timestamp.Before(*f.Until) {
		return false
	}
	return true
}
