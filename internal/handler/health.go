package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyTimeout bounds a single readiness probe so a hung backend cannot stall the orchestrator.
var ReadyTimeout = 2 * time.Second

// Pinger is anything that can say whether job roles are servable right now.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	ready   Pinger
	started time.Time
}

// NewHealthHandler builds the probes. A nil ready is always ready.
func NewHealthHandler(ready Pinger) *HealthHandler {
	return &HealthHandler{ready: ready, started: time.Now()}
}

func (h *HealthHandler) Register(r gin.IRoutes) {
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
}

// Liveness never touches dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Readiness passes when job roles can be served, from the backend or the fallback snapshot.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.ready == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), ReadyTimeout)
	defer cancel()

	start := time.Now()
	err := h.ready.Ping(ctx)
	took := time.Since(start).Milliseconds()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error(), "took_ms": took})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "took_ms": took})
}
