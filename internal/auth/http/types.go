package http

import "github.com/ChristianMLux/cml25-backend/internal/auth/service"

type Handler struct {
	authService *service.AuthService
}

func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{authService: authService}
}
