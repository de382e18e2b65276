package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/store"
)

const defaultEventListLimit = 100

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
	}
}

// RegisterEventRoutes registers the ingestion path.
//
// POST /events accepts a single event object or an array: cameras upload
// batches after connectivity gaps. Valid events are appended even when other
// elements of the batch fail validation; those failures are reported per
// element with a 207 status.
func RegisterEventRoutes(r gin.IRoutes, st store.EventStore) {
	r.POST("/events", func(c *gin.Context) {
		ingestEvents(c, st)
	})
	r.GET("/events", func(c *gin.Context) {
		listEvents(c, st)
	})
}

func ingestEvents(c *gin.Context, st store.EventStore) {
	body, err := c.GetRawData()
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no JSON data provided"})
		return
	}

	var reqs []models.EventIngestRequest
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		if err := json.Unmarshal(body, &reqs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid JSON payload"})
			return
		}
	} else {
		var one models.EventIngestRequest
		if err := json.Unmarshal(body, &one); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid JSON payload"})
			return
		}
		reqs = []models.EventIngestRequest{one}
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "empty event batch"})
		return
	}

	resp := models.EventIngestResponse{Status: "success"}
	for _, req := range reqs {
		e, err := req.Event()
		if err != nil {
			resp.Errors = append(resp.Errors, err.Error())
			continue
		}
		_, inserted, err := st.InsertEvent(c.Request.Context(), e)
		if err != nil {
			respondError(c, err)
			return
		}
		if inserted {
			resp.Inserted++
		} else {
			resp.Duplicates++
		}
	}

	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

// listEvents serves the inspection listing, newest first.
func listEvents(c *gin.Context, st store.EventStore) {
	var f store.Filter
	f.WorkerID = c.Query("worker_id")
	f.StationID = c.Query("station_id")

	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "since must be RFC3339"})
			return
		}
		t = t.UTC()
		f.Since = &t
	}
	if v := c.Query("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "until must be RFC3339"})
			return
		}
		t = t.UTC()
		f.Until = &t
	}

	limit := defaultEventListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	events, err := st.QueryEvents(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].ID > events[j].ID
	})
	if len(events) > limit {
		events = events[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
