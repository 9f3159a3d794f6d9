package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		deps   []Dependency
		status string
		want   map[string]string
	}{
		{
			name:   "all up",
			deps:   []Dependency{{Name: "store", Check: func(context.Context) error { return nil }}},
			status: "healthy",
			want:   map[string]string{"store": "up"},
		},
		{
			name: "redis down",
			deps: []Dependency{
				{Name: "store", Check: func(context.Context) error { return nil }},
				{Name: "redis", Check: func(context.Context) error { return errors.New("refused") }},
			},
			status: "degraded",
			want:   map[string]string{"store": "up", "redis": "down"},
		},
		{
			name:   "disabled",
			deps:   []Dependency{{Name: "redis"}},
			status: "healthy",
			want:   map[string]string{"redis": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler("cml25-backend", "1.2.3", tt.deps...).RegisterRoutes(r)

			for _, path := range []string{"/health", "/healthz"} {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				require.Equal(t, http.StatusOK, w.Code)

				var resp HealthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.status, resp.Status)
				assert.Equal(t, "cml25-backend", resp.Service)
				assert.Equal(t, "1.2.3", resp.Version)
				assert.Equal(t, tt.want, resp.Dependencies)
			}
		})
	}
}
