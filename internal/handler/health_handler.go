package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	storage string
	ping    func(ctx context.Context) error
}

// NewHealthHandler creates a new HealthHandler. A nil db means the in-memory
// store is in use, which is always ready.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	if db == nil {
		return &HealthHandler{storage: "memory"}
	}
	return &HealthHandler{storage: "postgres", ping: db.PingContext}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"storage": h.storage,
				"error":   "database not reachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": h.storage})
}
