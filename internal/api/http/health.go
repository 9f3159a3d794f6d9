package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

const pingTimeout = 1 * time.Second

// Check pings one dependency. A nil Check reports "disabled".
type Check func(ctx context.Context) error

type Dependency struct {
	Name  string
	Check Check
}

type SyncStats struct {
	Runs               int64   `json:"runs"`
	RunFailures        int64   `json:"run_failures"`
	ReposProcessed     int64   `json:"repos_processed"`
	Fallbacks          int64   `json:"fallbacks"`
	UpstreamCalls      int64   `json:"upstream_calls"`
	AvgUpstreamLatency float64 `json:"avg_upstream_latency_ms"`
	UpstreamErrorRate  float64 `json:"upstream_error_rate"`
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
	Sync         SyncStats         `json:"sync"`
}

type HealthHandler struct {
	serviceName string
	version     string
	deps        []Dependency
}

func NewHealthHandler(serviceName, version string, deps ...Dependency) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		deps:        deps,
	}
}

// HealthCheck always answers 200; a failed dependency turns the status to
// "degraded".
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	deps := make(map[string]string, len(h.deps))
	for _, d := range h.deps {
		if d.Check == nil {
			deps[d.Name] = "disabled"
			continue
		}
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		err := d.Check(pingCtx)
		cancel()
		if err != nil {
			deps[d.Name] = "down"
			status = "degraded"
		} else {
			deps[d.Name] = "up"
		}
	}

	m := service.GetMetrics()
	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		Dependencies: deps,
		Sync: SyncStats{
			Runs:               m.Runs(),
			RunFailures:        m.RunFailures(),
			ReposProcessed:     m.ReposProcessed(),
			Fallbacks:          m.Fallbacks(),
			UpstreamCalls:      m.UpstreamCalls(),
			AvgUpstreamLatency: m.AverageUpstreamLatency(),
			UpstreamErrorRate:  m.UpstreamErrorRate(),
		},
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
