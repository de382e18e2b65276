package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

func TestDefaultFixtureParses(t *testing.T) {
	fx, err := DefaultFixture()
	require.NoError(t, err)

	require.Len(t, fx.Workers, 6)
	require.Len(t, fx.Workstations, 6)
	require.Len(t, fx.Events, 48)

	require.Equal(t, "W1", fx.Workers[0].ID)
	require.Equal(t, "Lionel Messi", fx.Workers[0].Name)
	require.Equal(t, "S1", fx.Workstations[0].ID)
}

func TestDefaultFixtureEventsAreValid(t *testing.T) {
	fx, err := DefaultFixture()
	require.NoError(t, err)

	counts := 0
	for _, fe := range fx.Events {
		e, err := fe.Event()
		require.NoError(t, err, "fixture event %+v", fe)
		require.True(t, e.Type.Valid())
		if e.Type == models.EventProductCount {
			counts++
			require.Positive(t, e.Count)
		}
	}
	require.Equal(t, 19, counts)
}

// W6 moves between stations during the day; the fixture must preserve that
// so the station-attribution path is exercised by the demo data.
func TestDefaultFixtureKeepsRovingWorker(t *testing.T) {
	fx, err := DefaultFixture()
	require.NoError(t, err)

	stations := map[string]bool{}
	for _, fe := range fx.Events {
		if fe.WorkerID == "W6" {
			stations[fe.StationID] = true
		}
	}
	require.True(t, stations["S1"])
	require.True(t, stations["S6"])
}
