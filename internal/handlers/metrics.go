package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/metrics"
)

// RegisterMetricRoutes registers the serving path: the three recomputed
// metric views. All accept an optional as_of query parameter (RFC3339);
// without it the computation cutoff is the latest event timestamp, which
// keeps replays of a frozen event set reproducible.
func RegisterMetricRoutes(r gin.IRoutes, engine *metrics.Engine) {
	r.GET("/metrics/workers", func(c *gin.Context) {
		asOf, ok := parseAsOf(c)
		if !ok {
			return
		}
		views, computedAt, err := engine.WorkerMetrics(c.Request.Context(), asOf)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"metrics": views, "computed_at": computedAt})
	})

	r.GET("/metrics/workstations", func(c *gin.Context) {
		asOf, ok := parseAsOf(c)
		if !ok {
			return
		}
		views, computedAt, err := engine.WorkstationMetrics(c.Request.Context(), asOf)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"metrics": views, "computed_at": computedAt})
	})

	r.GET("/metrics/factory", func(c *gin.Context) {
		asOf, ok := parseAsOf(c)
		if !ok {
			return
		}
		view, err := engine.FactoryMetrics(c.Request.Context(), asOf)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"metrics": view, "computed_at": view.ComputedAt})
	})
}

// parseAsOf reads the optional as_of parameter. A zero time means "derive
// from the event set". Writes the error response itself on bad input.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	v := c.Query("as_of")
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "as_of must be RFC3339"})
		return time.Time{}, false
	}
	return t.UTC(), true
}
