// Package pages renders the locale-prefixed HTML pages.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/ChristianMLux/cml25-backend/internal/content/domain"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

const featuredLimit = 3

var pageNames = []string{"home", "about", "projects", "project", "contact", "notfound"}

// Reader is the read side of the content repository.
type Reader interface {
	ListVisible(ctx context.Context, loc locale.Code) []domain.Project
	ListByCategory(ctx context.Context, category string, loc locale.Code) []domain.Project
	GetByID(ctx context.Context, id string, loc locale.Code) (domain.Project, bool)
	GetRelated(ctx context.Context, category, excludeID string, loc locale.Code) []domain.Project
}

// Translator resolves catalog keys. *i18n.Catalog implements it.
type Translator interface {
	T(loc locale.Code, ns, key string) string
}

type Handler struct {
	projects  Reader
	tr        Translator
	reg       *locale.Registry
	templates map[string]*template.Template
	now       func() time.Time
}

func NewHandler(projects Reader, tr Translator, reg *locale.Registry) (*Handler, error) {
	funcs := template.FuncMap{
		"card": func(p page, project domain.Project) card { return card{Page: p, Project: project} },
	}
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/card.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &Handler{projects: projects, tr: tr, reg: reg, templates: templates, now: time.Now}, nil
}

// Register mounts one route group per supported locale.
func (h *Handler) Register(r gin.IRouter) {
	for _, code := range h.reg.Codes() {
		g := r.Group("/" + string(code))
		g.GET("", h.with(code, h.home))
		g.GET("/about", h.with(code, h.about))
		g.GET("/projects", h.with(code, h.projectList))
		g.GET("/projects/:id", h.with(code, h.projectDetail))
		g.GET("/contact", h.with(code, h.contact))
	}
}

// NotFound renders the 404 page for locale-prefixed paths and a JSON error
// for everything else.
func (h *Handler) NotFound(c *gin.Context) {
	code, rest, ok := h.reg.Split(c.Request.URL.Path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	p := h.page(code, rest)
	h.render(c, http.StatusNotFound, "notfound", p)
}

func (h *Handler) with(code locale.Code, fn func(*gin.Context, locale.Code)) gin.HandlerFunc {
	return func(c *gin.Context) {
		fn(c, code)
	}
}

func (h *Handler) home(c *gin.Context, loc locale.Code) {
	p := h.page(loc, "/")
	for _, project := range h.projects.ListVisible(c.Request.Context(), loc) {
		if !project.IsFeatured {
			continue
		}
		p.Projects = append(p.Projects, project)
		if len(p.Projects) == featuredLimit {
			break
		}
	}
	h.render(c, http.StatusOK, "home", p)
}

func (h *Handler) about(c *gin.Context, loc locale.Code) {
	h.render(c, http.StatusOK, "about", h.page(loc, "/about"))
}

func (h *Handler) contact(c *gin.Context, loc locale.Code) {
	h.render(c, http.StatusOK, "contact", h.page(loc, "/contact"))
}

func (h *Handler) projectList(c *gin.Context, loc locale.Code) {
	ctx := c.Request.Context()
	p := h.page(loc, "/projects")
	p.Category = c.DefaultQuery("category", domain.CategoryAll)
	p.Categories = categories(h.projects.ListVisible(ctx, loc))
	p.Projects = h.projects.ListByCategory(ctx, p.Category, loc)
	h.render(c, http.StatusOK, "projects", p)
}

func (h *Handler) projectDetail(c *gin.Context, loc locale.Code) {
	ctx := c.Request.Context()
	id := c.Param("id")

	project, ok := h.projects.GetByID(ctx, id, loc)
	if !ok || !project.IsVisible {
		p := h.page(loc, "/projects/"+id)
		p.Message = h.tr.T(loc, "projects", "ui.notFound")
		h.render(c, http.StatusNotFound, "notfound", p)
		return
	}

	p := h.page(loc, "/projects/"+id)
	p.Project = &project
	p.Related = h.projects.GetRelated(ctx, project.Category, project.ID, loc)
	h.render(c, http.StatusOK, "project", p)
}

func (h *Handler) page(loc locale.Code, path string) page {
	p := page{Locale: loc, Path: path, Year: h.now().Year(), tr: h.tr}
	for _, code := range h.reg.Codes() {
		p.Alternates = append(p.Alternates, alternate{
			Code:   code,
			URL:    locale.Localize(path, code),
			Active: code == loc,
		})
	}
	return p
}

func (h *Handler) render(c *gin.Context, status int, name string, p page) {
	c.Render(status, render.HTML{Template: h.templates[name], Name: "layout", Data: p})
}

// categories lists "all" followed by every category in first-seen order.
func categories(projects []domain.Project) []string {
	out := []string{domain.CategoryAll}
	seen := map[string]bool{domain.CategoryAll: true}
	for _, p := range projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
