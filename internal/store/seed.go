package store

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// seedYAML is the literal demonstration fixture: six workers, six stations,
// and one production day of camera events.
//
//go:embed seed.yaml
var seedYAML []byte

// Fixture is the payload of an administrative reset-and-seed. The engine
// treats seeded events identically to any other stream.
type Fixture struct {
	Workers      []FixtureWorker  `yaml:"workers"`
	Workstations []FixtureStation `yaml:"workstations"`
	Events       []FixtureEvent   `yaml:"events"`
}

type FixtureWorker struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type FixtureStation struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type FixtureEvent struct {
	Timestamp  string  `yaml:"timestamp"`
	WorkerID   string  `yaml:"worker_id"`
	StationID  string  `yaml:"station_id"`
	EventType  string  `yaml:"event_type"`
	Confidence float64 `yaml:"confidence"`
	Count      int     `yaml:"count"`
}

// Event converts a fixture row into a validated domain event.
func (fe FixtureEvent) Event() (models.Event, error) {
	ts, err := time.Parse(time.RFC3339, fe.Timestamp)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: fixture timestamp %q must be RFC3339", models.ErrValidation, fe.Timestamp)
	}
	e := models.Event{
		Timestamp:  ts.UTC(),
		WorkerID:   fe.WorkerID,
		StationID:  fe.StationID,
		Type:       models.EventType(fe.EventType),
		Confidence: fe.Confidence,
	}
	if e.Type == models.EventProductCount {
		e.Count = fe.Count
	}
	if err := e.Validate(); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// DefaultFixture parses the embedded seed data.
func DefaultFixture() (Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(seedYAML, &fx); err != nil {
		return Fixture{}, fmt.Errorf("parse seed fixture: %w", err)
	}
	return fx, nil
}
