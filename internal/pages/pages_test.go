package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/internal/content/repository"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
	"github.com/ChristianMLux/cml25-backend/internal/i18n"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := locale.Default()
	catalog, err := i18n.Load(reg)
	require.NoError(t, err)

	store := docstore.NewMemory()
	ctx := context.Background()
	seed := map[string]map[string]any{
		"alpha":  {"title": "Alpha", "category": "web", "isFeatured": true},
		"beta":   {"title": "Beta", "category": "web"},
		"gamma":  {"title": "Gamma", "category": "design"},
		"secret": {"title": "Secret", "category": "web", "isVisible": false},
	}
	for _, id := range []string{"alpha", "beta", "gamma", "secret"} {
		require.NoError(t, store.Set(ctx, repository.Collection, id, seed[id], false))
	}

	h, err := NewHandler(repository.NewProjectRepository(store, catalog, nil), catalog, reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(locale.Middleware(locale.NewResolver(reg)))
	h.Register(r)
	r.NoRoute(h.NotFound)
	return r
}

func get(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHome(t *testing.T) {
	r := setup(t)

	w := get(r, "/de", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<html lang="de">`)
	assert.Contains(t, body, `href="/de/projects"`)
	assert.Contains(t, body, `href="/en"`)
	assert.Contains(t, body, "Alpha")
	assert.NotContains(t, body, "Beta")
}

func TestProjectList(t *testing.T) {
	r := setup(t)

	w := get(r, "/en/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Alpha")
	assert.Contains(t, body, "Gamma")
	assert.NotContains(t, body, "Secret")
	assert.Contains(t, body, `href="/en/projects?category=design"`)
	assert.Contains(t, body, `href="/de/projects"`)

	w = get(r, "/en/projects?category=design", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gamma")
	assert.NotContains(t, w.Body.String(), "<h3>Alpha</h3>")
}

func TestProjectDetail(t *testing.T) {
	r := setup(t)

	w := get(r, "/en/projects/alpha", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Alpha</h1>")
	assert.Contains(t, body, "Related projects")
	assert.Contains(t, body, `href="/en/projects/beta"`)
	assert.NotContains(t, body, `href="/en/projects/gamma"`)
	assert.Contains(t, body, `href="/de/projects/alpha"`)
}

func TestProjectDetail_NotFound(t *testing.T) {
	r := setup(t)

	for _, id := range []string{"secret", "missing"} {
		w := get(r, "/en/projects/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
		assert.Contains(t, w.Body.String(), "Project not found", id)
	}
}

func TestNotFound(t *testing.T) {
	r := setup(t)

	w := get(r, "/de/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `href="/de"`)

	w = get(r, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestRedirectThenRender(t *testing.T) {
	r := setup(t)

	w := get(r, "/projects", map[string]string{"Accept-Language": "en-US,en;q=0.9"})
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/en/projects", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "NEXT_LOCALE=en")

	w = get(r, "/en/projects", map[string]string{"Cookie": "NEXT_LOCALE=en"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Secret")
}
