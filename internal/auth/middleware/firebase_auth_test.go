package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authctx "github.com/ChristianMLux/cml25-backend/internal/auth"
)

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if t, ok := f[token]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

type fakeChecker map[string]bool

func (f fakeChecker) IsAdmin(_ context.Context, uid, _ string) bool {
	return f[uid]
}

func newRouter(v TokenVerifier, c AdminChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(FirebaseAuthMiddleware(v))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": authctx.UserFirebaseUID(c), "email": authctx.UserEmail(c)})
	})
	admin := r.Group("/admin", RequireAdmin(c))
	admin.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	v := fakeVerifier{
		"good":       {UID: "u1", Claims: map[string]interface{}{"email": "ann@example.com", "email_verified": true}},
		"unverified": {UID: "u2", Claims: map[string]interface{}{"email": "boss@example.com", "email_verified": false}},
		"no-flag":    {UID: "u3", Claims: map[string]interface{}{"email": "boss@example.com"}},
	}
	r := newRouter(v, fakeChecker{})

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization token")

	w = do(r, "/me", "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")

	w = do(r, "/me", "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"u1","email":"ann@example.com"}`, w.Body.String())

	w = do(r, "/me", "unverified")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"u2","email":""}`, w.Body.String())

	w = do(r, "/me", "no-flag")
	assert.JSONEq(t, `{"uid":"u3","email":""}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	v := fakeVerifier{
		"admin": {UID: "a1", Claims: map[string]interface{}{}},
		"user":  {UID: "u1", Claims: map[string]interface{}{}},
	}
	r := newRouter(v, fakeChecker{"a1": true})

	assert.Equal(t, http.StatusOK, do(r, "/admin/ping", "admin").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin/ping", "user").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin/ping", "").Code)
}
