package i18n

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

type Handler struct {
	catalog *Catalog
	reg     *locale.Registry
}

func NewHandler(catalog *Catalog, reg *locale.Registry) *Handler {
	return &Handler{catalog: catalog, reg: reg}
}

// Register mounts GET /locales/:locale/:file where file is "<namespace>.json".
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/locales/:locale/:file", h.GetNamespace)
}

func (h *Handler) GetNamespace(c *gin.Context) {
	code, ok := h.reg.Parse(c.Param("locale"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown locale"})
		return
	}
	ns, ok := strings.CutSuffix(c.Param("file"), ".json")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	tree, ok := h.catalog.Namespace(code, ns)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown namespace"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, tree)
}
