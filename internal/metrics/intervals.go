package metrics

import (
	"time"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// Interval is a derived span of one worker's state, attributed to the station
// where the opening event was observed. Intervals are never persisted; they
// are rebuilt from the event set on every computation.
type Interval struct {
	State     models.EventType
	StationID string
	Start     time.Time
	End       time.Time
}

// Duration is the interval length, floored at zero. Duplicate timestamps that
// survive imperfect dedup must not produce negative time.
func (iv Interval) Duration() time.Duration {
	d := iv.End.Sub(iv.Start)
	if d < 0 {
		return 0
	}
	return d
}

// StateIntervals converts one worker's events into labeled intervals.
//
// Input may be in any order; product_count events are excluded before the
// state sequence is sorted. Each consecutive pair of state events yields an
// interval labeled with the earlier event's state. The final state persists
// until asOf: no newer event means the worker stayed as last observed, capped
// at the computation time. Fewer than two state events yield no intervals,
// since a single point carries no duration.
func StateIntervals(events []models.Event, asOf time.Time) []Interval {
	states := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.Type.IsState() {
			states = append(states, e)
		}
	}
	if len(states) < 2 {
		return nil
	}
	sortByTimeThenID(states)

	intervals := make([]Interval, 0, len(states))
	for i, e := range states {
		end := asOf
		if i < len(states)-1 {
			end = states[i+1].Timestamp
		}
		intervals = append(intervals, Interval{
			State:     e.Type,
			StationID: e.StationID,
			Start:     e.Timestamp,
			End:       end,
		})
	}
	return intervals
}
