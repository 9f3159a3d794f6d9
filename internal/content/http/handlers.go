package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/content/domain"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

// Reader is the read side of the content repository.
type Reader interface {
	ListByCategory(ctx context.Context, category string, loc locale.Code) []domain.Project
	GetByID(ctx context.Context, id string, loc locale.Code) (domain.Project, bool)
	GetRelated(ctx context.Context, category, excludeID string, loc locale.Code) []domain.Project
}

type Handler struct {
	projects Reader
	resolver *locale.Resolver
}

func NewHandler(projects Reader, resolver *locale.Resolver) *Handler {
	return &Handler{projects: projects, resolver: resolver}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/:id", h.GetProject)
}

// ListProjects returns the visible projects, optionally narrowed by ?category=.
func (h *Handler) ListProjects(c *gin.Context) {
	loc := h.locale(c)
	projects := h.projects.ListByCategory(c.Request.Context(), c.Query("category"), loc)
	c.JSON(http.StatusOK, gin.H{"locale": loc, "projects": projects})
}

// GetProject returns one visible project with its related projects.
func (h *Handler) GetProject(c *gin.Context) {
	loc := h.locale(c)
	ctx := c.Request.Context()

	p, ok := h.projects.GetByID(ctx, c.Param("id"), loc)
	if !ok || !p.IsVisible {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locale":  loc,
		"project": p,
		"related": h.projects.GetRelated(ctx, p.Category, p.ID, loc),
	})
}

// locale prefers ?locale=, then the cookie and Accept-Language signals.
func (h *Handler) locale(c *gin.Context) locale.Code {
	if code, ok := h.resolver.Registry().Parse(c.Query("locale")); ok {
		return code
	}
	cookie, _ := c.Cookie(locale.CookieName)
	return h.resolver.Preferred(cookie, c.GetHeader("Accept-Language"))
}
