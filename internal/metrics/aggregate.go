package metrics

import (
	"math"
	"time"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// Snapshot holds the three metric views computed from one event set at one
// asOf instant.
type Snapshot struct {
	Workers      []models.WorkerMetrics
	Workstations []models.WorkstationMetrics
	Factory      models.FactoryMetrics
	ComputedAt   time.Time
}

// workerStats accumulates a worker's unrounded figures so the factory
// averages are not computed over presentation-rounded values.
type workerStats struct {
	active     time.Duration
	idle       time.Duration
	units      int
	hasWorking bool // at least one working interval of positive duration
}

func (s workerStats) utilizationPercent() float64 {
	tracked := s.active + s.idle
	if tracked <= 0 {
		return 0
	}
	return 100 * s.active.Seconds() / tracked.Seconds()
}

func (s workerStats) unitsPerHour() float64 {
	if s.active <= 0 {
		return 0
	}
	return float64(s.units) / s.active.Hours()
}

// Compute derives every metric view from scratch. It is a pure function of
// its arguments: no caching, no incremental state. Late or reordered arrivals
// are handled by simply recomputing over the full set.
//
// Events stamped after asOf are outside the queried window and contribute
// nothing: an as-of view must not see activity recorded past its cutoff.
func Compute(workers []models.Worker, stations []models.Workstation, events []models.Event, asOf time.Time) Snapshot {
	scoped := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.After(asOf) {
			scoped = append(scoped, e)
		}
	}
	deduped := Dedupe(scoped)

	byWorker := make(map[string][]models.Event)
	for _, e := range deduped {
		byWorker[e.WorkerID] = append(byWorker[e.WorkerID], e)
	}

	snap := Snapshot{ComputedAt: asOf}

	stats := make(map[string]workerStats, len(workers))
	intervals := make([]Interval, 0, len(deduped))
	for _, w := range workers {
		evs := byWorker[w.WorkerID]
		ivs := StateIntervals(evs, asOf)
		intervals = append(intervals, ivs...)

		st := statsFor(ivs, evs)
		stats[w.WorkerID] = st
		snap.Workers = append(snap.Workers, models.WorkerMetrics{
			WorkerID:           w.WorkerID,
			Name:               w.Name,
			ActiveTimeHours:    round2(st.active.Hours()),
			IdleTimeHours:      round2(st.idle.Hours()),
			UtilizationPercent: round1(st.utilizationPercent()),
			TotalUnitsProduced: st.units,
			UnitsPerHour:       round2(st.unitsPerHour()),
			ComputedAt:         asOf,
		})
	}

	snap.Workstations = workstationViews(stations, deduped, intervals, asOf)
	snap.Factory = factoryView(workers, stats, asOf)
	return snap
}

func statsFor(intervals []Interval, events []models.Event) workerStats {
	var st workerStats
	for _, iv := range intervals {
		switch iv.State {
		case models.EventWorking:
			st.active += iv.Duration()
			if iv.Duration() > 0 {
				st.hasWorking = true
			}
		case models.EventIdle:
			st.idle += iv.Duration()
		}
		// absent intervals count toward neither active nor idle
	}
	for _, e := range events {
		if e.Type == models.EventProductCount {
			st.units += e.Count
		}
	}
	return st
}

// workstationViews attributes working intervals to the station the worker was
// at, not to the worker's global state. Available time is the span between
// the station's earliest and latest observed event of any type.
func workstationViews(stations []models.Workstation, deduped []models.Event, intervals []Interval, asOf time.Time) []models.WorkstationMetrics {
	type stationStats struct {
		occupancy      time.Duration
		units          int
		first, last    time.Time
		observedEvents bool
	}
	stats := make(map[string]*stationStats, len(stations))
	for _, s := range stations {
		stats[s.StationID] = &stationStats{}
	}

	for _, e := range deduped {
		st, ok := stats[e.StationID]
		if !ok {
			continue
		}
		if !st.observedEvents || e.Timestamp.Before(st.first) {
			st.first = e.Timestamp
		}
		if !st.observedEvents || e.Timestamp.After(st.last) {
			st.last = e.Timestamp
		}
		st.observedEvents = true
		if e.Type == models.EventProductCount {
			st.units += e.Count
		}
	}
	for _, iv := range intervals {
		st, ok := stats[iv.StationID]
		if !ok || iv.State != models.EventWorking {
			continue
		}
		st.occupancy += iv.Duration()
	}

	views := make([]models.WorkstationMetrics, 0, len(stations))
	for _, s := range stations {
		st := stats[s.StationID]

		utilization := 0.0
		if available := st.last.Sub(st.first); st.observedEvents && available > 0 {
			utilization = 100 * st.occupancy.Seconds() / available.Seconds()
		}
		throughput := 0.0
		if st.occupancy > 0 {
			throughput = float64(st.units) / st.occupancy.Hours()
		}

		views = append(views, models.WorkstationMetrics{
			StationID:          s.StationID,
			Name:               s.Name,
			OccupancyHours:     round2(st.occupancy.Hours()),
			UtilizationPercent: round1(utilization),
			TotalUnitsProduced: st.units,
			ThroughputRate:     round2(throughput),
			ComputedAt:         asOf,
		})
	}
	return views
}

func factoryView(workers []models.Worker, stats map[string]workerStats, asOf time.Time) models.FactoryMetrics {
	var (
		totalActive, totalIdle time.Duration
		totalUnits             int
		utilizations           []float64
		rates                  []float64
		activeWorkers          int
		withActivity           int
	)
	for _, w := range workers {
		st := stats[w.WorkerID]
		totalActive += st.active
		totalIdle += st.idle
		totalUnits += st.units

		// every worker contributes a utilization value, zeros included
		utilizations = append(utilizations, st.utilizationPercent())
		// only workers with active time contribute a production rate
		if st.active > 0 {
			rates = append(rates, st.unitsPerHour())
		}
		if st.hasWorking {
			activeWorkers++
		}
		if st.active+st.idle > 0 {
			withActivity++
		}
	}

	return models.FactoryMetrics{
		TotalProductiveHours:     round2(totalActive.Hours()),
		TotalIdleHours:           round2(totalIdle.Hours()),
		TotalProductionCount:     totalUnits,
		AverageProductionRate:    round2(mean(rates)),
		AverageWorkerUtilization: round1(mean(utilizations)),
		ActiveWorkers:            activeWorkers,
		WorkersWithActivity:      withActivity,
		ComputedAt:               asOf,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
