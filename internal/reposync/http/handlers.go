package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

type Handler struct {
	runner *service.Runner
}

func NewHandler(runner *service.Runner) *Handler {
	return &Handler{runner: runner}
}

// Register mounts the sync routes on an admin group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sync", h.Sync)
	rg.GET("/sync/runs", h.ListRuns)
	rg.GET("/sync/runs/latest", h.LatestRun)
	rg.GET("/sync/runs/:id", h.GetRun)
}

// Sync runs the repository sync and returns the candidates for review
func (h *Handler) Sync(c *gin.Context) {
	run, candidates, err := h.runner.Sync(c.Request.Context(), service.TriggerAdmin)
	if errors.Is(err, domain.ErrMissingCredentials) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing API Keys in environment", "run_id": run.RunID})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error during Sync", "details": err.Error(), "run_id": run.RunID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": candidates, "run_id": run.RunID})
}

// ListRuns returns recorded run ids, newest first. ?limit= caps the list
// at 100.
func (h *Handler) ListRuns(c *gin.Context) {
	runs := h.runner.Runs()
	if runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sync history disabled"})
		return
	}

	limit := int64(defaultRunLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRunLimit)
	}

	ids, err := runs.ListIDs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sync runs", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": ids})
}

// LatestRun returns the most recent recorded sync run
func (h *Handler) LatestRun(c *gin.Context) {
	runs := h.runner.Runs()
	if runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sync history disabled"})
		return
	}
	run, err := runs.Latest(c.Request.Context())
	h.writeRun(c, run, err)
}

// GetRun returns one recorded sync run
func (h *Handler) GetRun(c *gin.Context) {
	runs := h.runner.Runs()
	if runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sync history disabled"})
		return
	}
	run, err := runs.Get(c.Request.Context(), c.Param("id"))
	h.writeRun(c, run, err)
}

func (h *Handler) writeRun(c *gin.Context, run *domain.Run, err error) {
	if errors.Is(err, domain.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sync run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sync run", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run})
}
