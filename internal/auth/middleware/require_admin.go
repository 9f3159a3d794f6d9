package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/ChristianMLux/cml25-backend/internal/auth"
)

// AdminChecker decides whether an authenticated user may use the admin
// surface. *service.AuthService implements it.
type AdminChecker interface {
	IsAdmin(ctx context.Context, uid, email string) bool
}

// RequireAdmin must run after FirebaseAuthMiddleware or DevUser.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := authctx.UserFirebaseUID(c)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}
		if !checker.IsAdmin(c.Request.Context(), uid, authctx.UserEmail(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
