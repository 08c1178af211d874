package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sprintsync/sprintsync-api/internal/monitor"
	"github.com/sprintsync/sprintsync-api/internal/storage/pg"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string          `json:"status"`
	Timestamp   string          `json:"timestamp"`
	Environment string          `json:"environment"`
	Memory      *monitor.Usage  `json:"memory,omitempty"`
	Database    pg.HealthStatus `json:"database"`
	Uptime      float64         `json:"uptime"`
}

type healthHandler struct {
	environment string
	database    DatabaseChecker
	memory      *monitor.MemoryMonitor
	started     time.Time
}

// Health reports liveness. It answers 200 even when the database is down;
// the database field carries that state.
func (h *healthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
		Uptime:      time.Since(h.started).Seconds(),
	}

	if h.memory != nil {
		usage := h.memory.Usage()
		resp.Memory = &usage
	}

	if h.database != nil {
		resp.Database = h.database.HealthCheck(c.Request.Context())
	} else {
		resp.Database = pg.HealthStatus{Status: "unhealthy", Error: "database not configured"}
	}

	c.JSON(http.StatusOK, resp)
}
