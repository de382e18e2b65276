package models

import "time"

// WorkerMetrics is the per-worker productivity view. Hours and rates are
// rounded to 2 decimals, percentages to 1, so repeated computation over an
// unchanged event set is bit-identical.
type WorkerMetrics struct {
	WorkerID           string    `json:"worker_id"`
	Name               string    `json:"name"`
	ActiveTimeHours    float64   `json:"active_time_hours"`
	IdleTimeHours      float64   `json:"idle_time_hours"`
	UtilizationPercent float64   `json:"utilization_percent"`
	TotalUnitsProduced int       `json:"total_units_produced"`
	UnitsPerHour       float64   `json:"units_per_hour"`
	ComputedAt         time.Time `json:"computed_at"`
}

// WorkstationMetrics is the per-station view. Occupancy is the working time
// of any worker attributed to the station; utilization divides it by the span
// between the station's earliest and latest observed event.
type WorkstationMetrics struct {
	StationID          string    `json:"station_id"`
	Name               string    `json:"name"`
	OccupancyHours     float64   `json:"occupancy_hours"`
	UtilizationPercent float64   `json:"utilization_percent"`
	TotalUnitsProduced int       `json:"total_units_produced"`
	ThroughputRate     float64   `json:"throughput_rate"`
	ComputedAt         time.Time `json:"computed_at"`
}

// FactoryMetrics aggregates over all workers as of ComputedAt.
//
// AverageProductionRate averages units_per_hour over workers with active time
// only; a rate with a zero denominator has no value to contribute. Utilization
// does have a defined zero, so AverageWorkerUtilization averages over every
// worker.
type FactoryMetrics struct {
	TotalProductiveHours     float64   `json:"total_productive_hours"`
	TotalIdleHours           float64   `json:"total_idle_hours"`
	TotalProductionCount     int       `json:"total_production_count"`
	AverageProductionRate    float64   `json:"average_production_rate"`
	AverageWorkerUtilization float64   `json:"average_worker_utilization"`
	ActiveWorkers            int       `json:"active_workers"`
	WorkersWithActivity      int       `json:"workers_with_activity"`
	ComputedAt               time.Time `json:"computed_at"`
}
