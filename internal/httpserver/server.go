package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/handlers"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/metrics"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/middleware"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/store"
)

// NewRouter wires health probes, the ingestion path, the metric views, and
// the administrative endpoints.
func NewRouter(log *zap.Logger, st store.EventStore, engine *metrics.Engine) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	// Readiness: confirms the event store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterEventRoutes(r, st)
	handlers.RegisterMetricRoutes(r, engine)
	handlers.RegisterAdminRoutes(r, st)

	return r
}
