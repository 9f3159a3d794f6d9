package http

import "github.com/gin-gonic/gin"

// Register mounts the admin routes. rg must already require an admin.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.ListProjects)
	rg.POST("/projects", h.UpsertProject)
	rg.POST("/upload", h.Upload)
	rg.POST("/migrate", h.Migrate)

	s := rg.Group("/session")
	s.GET("", h.GetSession)
	s.DELETE("", h.ResetSession)
	s.POST("/load", h.LoadSession)
	s.POST("/sync", h.SyncSession)
	s.POST("/migrate", h.MigrateSession)
	s.POST("/projects/:id/edit", h.StartEdit)
	s.POST("/projects/:id/publish", h.PublishProject)
	s.PATCH("/draft", h.UpdateDraft)
	s.POST("/draft/save", h.SaveDraft)
	s.POST("/draft/discard", h.DiscardDraft)
	s.POST("/draft/image", h.AttachImage)
}
