package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/config"
	"github.com/ChristianMLux/cml25-backend/internal/auth"
	"github.com/ChristianMLux/cml25-backend/internal/auth/repository"
	"github.com/ChristianMLux/cml25-backend/internal/auth/service"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewAuthService(
		repository.NewUserRepository(docstore.NewMemory()),
		config.AuthConfig{AdminEmails: []string{"boss@example.com"}},
	)
	r := gin.New()
	g := r.Group("/api/auth", auth.DevUser("boss@example.com"))
	NewHandler(svc).Register(g)
	return r
}

func TestSyncThenProfile(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sync", strings.NewReader(`{"displayName":"Boss"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			UID         string `json:"uid"`
			Role        string `json:"role"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dev-admin", body.User.UID)
	assert.Equal(t, "admin", body.User.Role)
	assert.Equal(t, "Boss", body.User.DisplayName)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSync_InvalidBody(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sync", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/sync", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader(`{"photoURL":"https://img/x.png"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://img/x.png")
}
