package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/store"
)

// RegisterAdminRoutes registers the registry listings and the administrative
// reset-and-seed. Seeding lives outside the aggregation core: seeded events
// flow through the same computation as any other stream.
func RegisterAdminRoutes(r gin.IRoutes, st store.EventStore) {
	r.POST("/seed", func(c *gin.Context) {
		fx, err := store.DefaultFixture()
		if err != nil {
			respondError(c, err)
			return
		}
		if err := st.ResetAndSeed(c.Request.Context(), fx); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "database seeded successfully",
			"data": gin.H{
				"workers":      len(fx.Workers),
				"workstations": len(fx.Workstations),
				"events":       len(fx.Events),
			},
		})
	})

	r.GET("/workers", func(c *gin.Context) {
		workers, err := st.ListWorkers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workers": workers})
	})

	r.GET("/workstations", func(c *gin.Context) {
		stations, err := st.ListWorkstations(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workstations": stations})
	})
}
