package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/admin/domain"
	"github.com/ChristianMLux/cml25-backend/internal/admin/service"
	"github.com/ChristianMLux/cml25-backend/internal/auth"
	"github.com/ChristianMLux/cml25-backend/internal/blob"
	content "github.com/ChristianMLux/cml25-backend/internal/content/domain"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
	rsdomain "github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

// Projects is the admin view of the content store.
type Projects interface {
	ListAll(ctx context.Context) ([]content.Project, error)
	Upsert(ctx context.Context, p content.ProjectPatch) error
}

type Handler struct {
	projects Projects
	uploader blob.Uploader
	sessions *service.SessionManager
	log      logging.Logger
}

func NewHandler(projects Projects, uploader blob.Uploader, sessions *service.SessionManager, log logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	if uploader == nil {
		uploader = blob.Disabled{}
	}
	return &Handler{projects: projects, uploader: uploader, sessions: sessions, log: log.With("component", "admin")}
}

// ListProjects returns every stored project, hidden ones included
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projects.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error(c.Request.Context(), "admin: list projects failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// UpsertProject merge-writes the given fields under the given id
func (h *Handler) UpsertProject(c *gin.Context) {
	var req content.ProjectPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Project ID"})
		return
	}

	if err := h.projects.Upsert(c.Request.Context(), req); err != nil {
		h.log.Error(c.Request.Context(), "admin: save project failed", "id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": req.ID})
}

// Upload stores the multipart "file" field and returns its public URL
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "details": err.Error()})
		return
	}
	defer f.Close()

	name := blob.ObjectName(fh.Filename, time.Now())
	url, err := h.uploader.Upload(c.Request.Context(), name, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.log.Error(c.Request.Context(), "admin: upload failed", "name", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Migrate writes the seed projects to the store. Requires ?confirm=true
// or {"confirm": true}.
func (h *Handler) Migrate(c *gin.Context) {
	res, err := h.session(c).Migrate(c.Request.Context(), confirmed(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"migrated": res.Migrated, "failed": res.Failed})
}

func (h *Handler) session(c *gin.Context) *service.Session {
	return h.sessions.Get(auth.UserFirebaseUID(c))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired), errors.Is(err, domain.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoDraft),
		errors.Is(err, domain.ErrUploadInProgress),
		errors.Is(err, service.ErrSyncInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, rsdomain.ErrMissingCredentials):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing API Keys in environment"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed", "details": err.Error()})
	}
}

func confirmed(c *gin.Context) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if c.Request.ContentLength > 0 && c.ShouldBindJSON(&body) == nil {
		return body.Confirm
	}
	return false
}
