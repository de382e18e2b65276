package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

func TestStateIntervalsPairsConsecutiveEvents(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
		stateEvent(3, "W1", "S1", models.EventWorking, base.Add(5*time.Hour)),
	}

	ivs := StateIntervals(events, asOf)
	require.Len(t, ivs, 3)

	require.Equal(t, models.EventWorking, ivs[0].State)
	require.Equal(t, 2*time.Hour, ivs[0].Duration())
	require.Equal(t, models.EventIdle, ivs[1].State)
	require.Equal(t, 3*time.Hour, ivs[1].Duration())
	// last observed state persists until asOf
	require.Equal(t, models.EventWorking, ivs[2].State)
	require.Equal(t, time.Hour, ivs[2].Duration())
	require.Equal(t, asOf, ivs[2].End)
}

func TestStateIntervalsTolerateArbitraryInputOrder(t *testing.T) {
	asOf := base.Add(6 * time.Hour)
	ordered := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
		stateEvent(3, "W1", "S1", models.EventWorking, base.Add(5*time.Hour)),
	}
	shuffled := []models.Event{ordered[2], ordered[0], ordered[1]}

	require.Equal(t, StateIntervals(ordered, asOf), StateIntervals(shuffled, asOf))
}

func TestStateIntervalsExcludeProductCounts(t *testing.T) {
	asOf := base.Add(3 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 25, base.Add(time.Hour)), // must not split the working span
		stateEvent(3, "W1", "S1", models.EventIdle, base.Add(2*time.Hour)),
	}

	ivs := StateIntervals(events, asOf)
	require.Len(t, ivs, 2)
	require.Equal(t, 2*time.Hour, ivs[0].Duration())
	require.Equal(t, time.Hour, ivs[1].Duration())
}

func TestStateIntervalsFewerThanTwoEvents(t *testing.T) {
	asOf := base.Add(time.Hour)

	require.Nil(t, StateIntervals(nil, asOf))
	require.Nil(t, StateIntervals([]models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
	}, asOf))
	// a lone product_count is not a state observation either
	require.Nil(t, StateIntervals([]models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		countEvent(2, "W1", "S1", 10, base.Add(time.Minute)),
	}, asOf))
}

func TestStateIntervalsClampNegativeDurations(t *testing.T) {
	events := []models.Event{
		stateEvent(1, "W1", "S1", models.EventWorking, base),
		stateEvent(2, "W1", "S1", models.EventIdle, base), // identical timestamp
	}

	// asOf before both events: the trailing interval must clamp too
	ivs := StateIntervals(events, base.Add(-time.Hour))
	require.Len(t, ivs, 2)
	require.Equal(t, time.Duration(0), ivs[0].Duration())
	require.Equal(t, time.Duration(0), ivs[1].Duration())
}

func TestStateIntervalsCarryStationOfOpeningEvent(t *testing.T) {
	asOf := base.Add(3 * time.Hour)
	events := []models.Event{
		stateEvent(1, "W6", "S6", models.EventWorking, base),
		stateEvent(2, "W6", "S1", models.EventWorking, base.Add(time.Hour)),
		stateEvent(3, "W6", "S6", models.EventIdle, base.Add(2*time.Hour)),
	}

	ivs := StateIntervals(events, asOf)
	require.Equal(t, "S6", ivs[0].StationID)
	require.Equal(t, "S1", ivs[1].StationID)
	require.Equal(t, "S6", ivs[2].StationID)
}
