package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

var (
	oneWorker  = []models.Worker{{WorkerID: "W1", Name: "Lionel Messi"}}
	twoWorkers = []models.Worker{
		{WorkerID: "W1", Name: "Lionel Messi"},
		{WorkerID: "W2", Name: "Neymar Jr."},
	}
)

// Three state transitions, queried an hour after the last one: two working
// spans of 2h and 1h, one idle span of 3h.
func TestComputeWorkerTimeMetrics(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
		stateEvent(3, "W1", "S1", models.EventWorking, base.Add(5*time.Hour)),
	}

	snap := Compute(oneWorker, nil, events, asOf)
	require.Len(t, snap.Workers, 1)

	w := snap.Workers[0]
	require.Equal(t, 3.0, w.ActiveTimeHours)
	require.Equal(t, 3.0, w.IdleTimeHours)
	require.Equal(t, 50.0, w.UtilizationPercent)
	require.Equal(t, 0, w.TotalUnitsProduced)
	require.Equal(t, 0.0, w.UnitsPerHour)
	require.Equal(t, asOf, w.ComputedAt)
}

func TestComputeWorkerProductionMetrics(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 30, base.Add(time.Hour)),
		stateEvent(3, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
		countEvent(4, "W1", "S1", 20, base.Add(4*time.Hour)),
		stateEvent(5, "W1", "S1", models.EventWorking, base.Add(5*time.Hour)),
	}

	snap := Compute(oneWorker, nil, events, asOf)
	w := snap.Workers[0]
	require.Equal(t, 50, w.TotalUnitsProduced)
	require.Equal(t, 16.67, w.UnitsPerHour) // 50 units over 3 active hours
}

// A single event yields no intervals and every time-derived metric is a
// defined zero, not a fault.
func TestComputeSingleEventWorkerIsAllZeros(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
	}

	snap := Compute(oneWorker, nil, events, asOf)
	w := snap.Workers[0]
	require.Zero(t, w.ActiveTimeHours)
	require.Zero(t, w.IdleTimeHours)
	require.Zero(t, w.UtilizationPercent)
	require.Zero(t, w.UnitsPerHour)
}

// A worker with no active time is excluded from the production-rate mean but
// included, as zero, in the utilization mean.
func TestComputeFactoryAggregateExclusionRules(t *testing.T) {
	asOf := base.Add(2 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 10, base.Add(30*time.Minute)),
		stateEvent(3, "W1", "S1", models.EventIdle, base.Add(time.Hour)),
		stateEvent(4, "W2", "S2", models.EventIdle, base), // lone event: no intervals
	}

	snap := Compute(twoWorkers, nil, events, asOf)
	f := snap.Factory

	require.Equal(t, 10.0, f.AverageProductionRate, "W2 must not depress the rate mean")
	require.Equal(t, 25.0, f.AverageWorkerUtilization, "W2 contributes a defined zero")
	require.Equal(t, 1.0, f.TotalProductiveHours)
	require.Equal(t, 1.0, f.TotalIdleHours)
	require.Equal(t, 10, f.TotalProductionCount)
	require.Equal(t, 1, f.ActiveWorkers)
	require.Equal(t, 1, f.WorkersWithActivity)
}

func TestComputeWorkstationMetrics(t *testing.T) {
	asOf := base.Add(3 * time.Hour)
	stations := []models.Workstation{
		{StationID: "S1", Name: "Assembly Line A"},
		{StationID: "S2", Name: "Assembly Line B"},
		{StationID: "S3", Name: "Quality Control"},
	}
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S2", models.EventWorking, base.Add(time.Hour)),
		countEvent(3, "W1", "S2", 12, base.Add(90*time.Minute)),
		stateEvent(4, "W1", "S2", models.EventIdle, base.Add(2*time.Hour)),
	}

	snap := Compute(oneWorker, stations, events, asOf)
	require.Len(t, snap.Workstations, 3)

	// S1 observed a single instant: occupancy accrues but available time is 0
	s1 := snap.Workstations[0]
	require.Equal(t, 1.0, s1.OccupancyHours)
	require.Equal(t, 0.0, s1.UtilizationPercent)
	require.Equal(t, 0, s1.TotalUnitsProduced)
	require.Equal(t, 0.0, s1.ThroughputRate)

	// S2: 1h working occupancy over a 1h observed span, 12 units
	s2 := snap.Workstations[1]
	require.Equal(t, 1.0, s2.OccupancyHours)
	require.Equal(t, 100.0, s2.UtilizationPercent)
	require.Equal(t, 12, s2.TotalUnitsProduced)
	require.Equal(t, 12.0, s2.ThroughputRate)

	// S3 never observed anything
	s3 := snap.Workstations[2]
	require.Zero(t, s3.OccupancyHours)
	require.Zero(t, s3.UtilizationPercent)
	require.Zero(t, s3.TotalUnitsProduced)
	require.Zero(t, s3.ThroughputRate)
}

// Occupancy follows the worker: a station accrues the working spans opened
// there by any worker, even while those workers report elsewhere later.
func TestComputeWorkstationOccupancyAcrossWorkers(t *testing.T) {
	asOf := base.Add(4 * time.Hour)
	stations := []models.Workstation{{StationID: "S1", Name: "Assembly Line A"}}
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventAbsent, base.Add(2*time.Hour)),
		stateEvent(3, "W2", "S1", models.EventWorking, base.Add(time.Hour)),
		stateEvent(4, "W2", "S2", models.EventWorking, base.Add(3*time.Hour)),
	}

	snap := Compute(twoWorkers, stations, events, asOf)
	// W1 contributes 2h at S1, W2 contributes 2h (until moving to S2)
	require.Equal(t, 4.0, snap.Workstations[0].OccupancyHours)
}

// Activity recorded after the cutoff is invisible to an as-of view: spans
// crossing the cutoff are truncated there, and events lying wholly beyond it
// contribute nothing.
func TestComputeExcludesEventsAfterAsOf(t *testing.T) {
	asOf := base.Add(time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventIdle, base.Add(30*time.Minute)),
		stateEvent(3, "W1", "S1", models.EventWorking, base.Add(2*time.Hour)),
		countEvent(4, "W1", "S1", 40, base.Add(3*time.Hour)),
	}

	snap := Compute(oneWorker, nil, events, asOf)
	w := snap.Workers[0]
	require.Equal(t, 0.5, w.ActiveTimeHours)
	require.Equal(t, 0.5, w.IdleTimeHours, "idle span is capped at the cutoff, not at the next event")
	require.Zero(t, w.TotalUnitsProduced)
	require.LessOrEqual(t, w.ActiveTimeHours+w.IdleTimeHours, 1.0,
		"tracked time as of base+1h cannot exceed the elapsed hour")
}

// With everything past the cutoff stripped, a single remaining state event
// falls back to the no-intervals edge case.
func TestComputeAsOfBeforeSecondEvent(t *testing.T) {
	asOf := base.Add(time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
	}

	snap := Compute(oneWorker, nil, events, asOf)
	w := snap.Workers[0]
	require.Zero(t, w.ActiveTimeHours)
	require.Zero(t, w.IdleTimeHours)

	f := snap.Factory
	require.Zero(t, f.ActiveWorkers, "no positive working interval inside the queried window")
}

func TestComputeDuplicateInvariance(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 30, base.Add(time.Hour)),
		stateEvent(3, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
	}
	withDuplicates := append(append([]models.Event(nil), events...),
		stateEvent(4, "W1", "S1", models.EventWorking, base),
		countEvent(5, "W1", "S1", 30, base.Add(time.Hour)),
		stateEvent(6, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
	)

	require.Equal(t,
		Compute(oneWorker, nil, events, asOf),
		Compute(oneWorker, nil, withDuplicates, asOf),
	)
}

func TestComputeOrderInvariance(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 30, base.Add(time.Hour)),
		stateEvent(3, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
		stateEvent(4, "W1", "S1", models.EventWorking, base.Add(5*time.Hour)),
	}
	// a late-arriving permutation: insertion ids reassigned in arrival order
	permuted := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base.Add(5*time.Hour)),
		stateEvent(2, "W1", "S1", models.EventWorking, base),
		countEvent(3, "W1", "S1", 30, base.Add(time.Hour)),
		stateEvent(4, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
	}

	require.Equal(t,
		Compute(oneWorker, nil, events, asOf),
		Compute(oneWorker, nil, permuted, asOf),
	)
}

func TestComputeIsIdempotent(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 30, base.Add(time.Hour)),
		stateEvent(3, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
	}
	stations := []models.Workstation{{StationID: "S1", Name: "Assembly Line A"}}

	first := Compute(oneWorker, stations, events, asOf)
	second := Compute(oneWorker, stations, events, asOf)
	require.Equal(t, first, second)
}
