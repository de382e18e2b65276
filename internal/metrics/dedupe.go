package metrics

import (
	"sort"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// identity is the duplicate-detection key. Confidence never participates.
// Count participates only for product_count events: two different counts at
// the same instant are two observations, while a retransmission of the same
// count is a duplicate.
type identity struct {
	workerID  string
	stationID string
	kind      models.EventType
	unixNano  int64
	count     int
}

func identityOf(e models.Event) identity {
	id := identity{
		workerID:  e.WorkerID,
		stationID: e.StationID,
		kind:      e.Type,
		unixNano:  e.Timestamp.UnixNano(),
	}
	if e.Type == models.EventProductCount {
		id.count = e.Count
	}
	return id
}

// Dedupe returns the events with logical duplicates removed, sorted by
// (timestamp, insertion id). The first occurrence in that order is retained.
// Pure: the input slice is not modified.
func Dedupe(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sortByTimeThenID(sorted)

	seen := make(map[identity]struct{}, len(sorted))
	out := sorted[:0]
	for _, e := range sorted {
		id := identityOf(e)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, e)
	}
	return out
}

// sortByTimeThenID orders events chronologically, with the insertion id as a
// stable tie-break for identical timestamps.
func sortByTimeThenID(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
}
