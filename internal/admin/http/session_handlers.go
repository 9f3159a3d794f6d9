package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/admin/domain"
	"github.com/ChristianMLux/cml25-backend/internal/auth"
	content "github.com/ChristianMLux/cml25-backend/internal/content/domain"
)

func (h *Handler) respond(c *gin.Context, extra gin.H) {
	body := gin.H{"session": h.session(c).View()}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) GetSession(c *gin.Context) {
	h.respond(c, nil)
}

// ResetSession throws away the caller's unsaved working set.
func (h *Handler) ResetSession(c *gin.Context) {
	h.sessions.Drop(auth.UserFirebaseUID(c))
	h.respond(c, nil)
}

func (h *Handler) LoadSession(c *gin.Context) {
	if err := h.session(c).Load(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, nil)
}

func (h *Handler) SyncSession(c *gin.Context) {
	added, err := h.session(c).Sync(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, gin.H{"added": added})
}

func (h *Handler) MigrateSession(c *gin.Context) {
	res, err := h.session(c).Migrate(c.Request.Context(), confirmed(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, gin.H{"migrated": res.Migrated, "failed": res.Failed})
}

func (h *Handler) StartEdit(c *gin.Context) {
	if err := h.session(c).StartEdit(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, nil)
}

func (h *Handler) PublishProject(c *gin.Context) {
	if err := h.session(c).Publish(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, nil)
}

func (h *Handler) UpdateDraft(c *gin.Context) {
	var patch content.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.session(c).UpdateDraft(patch); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, nil)
}

func (h *Handler) SaveDraft(c *gin.Context) {
	if err := h.session(c).SaveEdit(); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, nil)
}

func (h *Handler) DiscardDraft(c *gin.Context) {
	h.session(c).DiscardEdit()
	h.respond(c, nil)
}

// AttachImage uploads the multipart "file" field as the draft image
func (h *Handler) AttachImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.fail(c, domain.ErrNoFile)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	url, err := h.session(c).AttachImage(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, gin.H{"url": url})
}
