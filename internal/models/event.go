package models

import (
	"errors"
	"fmt"
	"time"
)

// Taxonomy shared across the service. Handlers map ErrValidation to 400 and
// ErrStoreUnavailable to 503; anything else is a 500.
var (
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("event store unavailable")
)

// EventType is the closed set of activity kinds emitted by the AI cameras.
type EventType string

const (
	EventWorking      EventType = "working"
	EventIdle         EventType = "idle"
	EventAbsent       EventType = "absent"
	EventProductCount EventType = "product_count"
)

// Valid reports whether t belongs to the closed set.
func (t EventType) Valid() bool {
	switch t {
	case EventWorking, EventIdle, EventAbsent, EventProductCount:
		return true
	}
	return false
}

// IsState reports whether t describes worker state occupancy (as opposed to a
// production count).
func (t EventType) IsState() bool {
	return t == EventWorking || t == EventIdle || t == EventAbsent
}

// Worker is a registered worker. Created by seeding, immutable afterwards.
type Worker struct {
	WorkerID string `json:"worker_id"`
	Name     string `json:"name"`
}

// Workstation is a registered station. Same lifecycle as Worker.
type Workstation struct {
	StationID string `json:"station_id"`
	Name      string `json:"name"`
}

// Event is a single append-only activity record. ID is the store-assigned
// insertion sequence number; Timestamp is producer-assigned and may arrive in
// any order relative to insertion. Count is meaningful only for
// product_count events and is zero otherwise.
type Event struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	WorkerID   string    `json:"worker_id"`
	StationID  string    `json:"station_id,omitempty"`
	Type       EventType `json:"event_type"`
	Confidence float64   `json:"confidence"`
	Count      int       `json:"count"`
}

// Validate enforces the ingestion contract. Invalid events never reach the
// store.
func (e Event) Validate() error {
	if e.WorkerID == "" {
		return fmt.Errorf("%w: worker_id required", ErrValidation)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp required", ErrValidation)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown event_type %q", ErrValidation, string(e.Type))
	}
	if e.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative", ErrValidation)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be within [0,1]", ErrValidation)
	}
	return nil
}

// EventIngestRequest is one element of the POST /events payload. The cameras
// historically sent either workstation_id or station_id; both are accepted.
type EventIngestRequest struct {
	Timestamp     string   `json:"timestamp"`
	WorkerID      string   `json:"worker_id"`
	WorkstationID string   `json:"workstation_id,omitempty"`
	StationID     string   `json:"station_id,omitempty"`
	EventType     string   `json:"event_type"`
	Confidence    *float64 `json:"confidence,omitempty"`
	Count         *int     `json:"count,omitempty"`
}

// Event converts the request into a validated domain event. Timestamps are
// normalized to UTC. Count is only consumed for product_count events.
func (r EventIngestRequest) Event() (Event, error) {
	if r.Timestamp == "" {
		return Event{}, fmt.Errorf("%w: timestamp required", ErrValidation)
	}
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return Event{}, fmt.Errorf("%w: timestamp must be RFC3339", ErrValidation)
	}

	station := r.WorkstationID
	if station == "" {
		station = r.StationID
	}

	e := Event{
		Timestamp: ts.UTC(),
		WorkerID:  r.WorkerID,
		StationID: station,
		Type:      EventType(r.EventType),
	}
	if r.Confidence != nil {
		e.Confidence = *r.Confidence
	}
	if e.Type == EventProductCount {
		if r.Count == nil {
			return Event{}, fmt.Errorf("%w: count required for product_count", ErrValidation)
		}
		e.Count = *r.Count
	}

	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// EventIngestResponse summarizes a POST /events batch.
type EventIngestResponse struct {
	Status     string   `json:"status"`
	Inserted   int      `json:"inserted"`
	Duplicates int      `json:"duplicates"`
	Errors     []string `json:"errors,omitempty"`
}
