package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMLux/cml25-backend/internal/auth"
	"github.com/ChristianMLux/cml25-backend/internal/auth/domain"
)

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), uid)
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SyncUser creates or refreshes the profile after Firebase sign-in.
// The optional body may carry displayName and photoURL; token claims are
// used when it does not.
func (h *Handler) SyncUser(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body struct {
		DisplayName *string `json:"displayName,omitempty"`
		PhotoURL    *string `json:"photoURL,omitempty"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
			return
		}
	}

	req := domain.SyncUserRequest{
		UID:         uid,
		Email:       auth.UserEmail(c),
		DisplayName: body.DisplayName,
		PhotoURL:    body.PhotoURL,
	}
	if req.DisplayName == nil {
		if name := c.GetString(auth.CtxDisplayName); name != "" {
			req.DisplayName = &name
		}
	}
	if req.PhotoURL == nil {
		if photo := c.GetString(auth.CtxPhotoURL); photo != "" {
			req.PhotoURL = &photo
		}
	}

	user, err := h.authService.SyncUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the user's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req struct {
		DisplayName *string `json:"displayName,omitempty"`
		PhotoURL    *string `json:"photoURL,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), uid, domain.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
