package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const devUID = "dev-admin"

// DevUser sets a fixed identity without verifying any token.
// - X-User-Id and X-User-Email override the defaults.
// - Use this ONLY for local development (AUTH_DISABLED=true).
func DevUser(defaultEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = devUID
		}
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))
		if email == "" {
			email = defaultEmail
		}

		c.Set(CtxFirebaseUID, uid)
		c.Set(CtxEmail, email)
		c.Next()
	}
}
