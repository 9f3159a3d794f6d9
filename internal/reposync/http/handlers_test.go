package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/repository"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

type staticRepos []domain.Repo

func (s staticRepos) ListOwnRepos(context.Context, int) ([]domain.Repo, error) {
	return s, nil
}

type staticModel string

func (s staticModel) Complete(context.Context, string) (string, error) {
	return string(s), nil
}

func setup(t *testing.T, creds service.Credentials, withHistory bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var runs service.RunStore
	if withHistory {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		runs = repository.NewRunRepository(client)
	}

	job := service.NewJob(creds, staticRepos{{ID: 7, Name: "Foo.Bar"}}, staticModel(`{"title":"Foo"}`), nil)
	h := NewHandler(service.NewRunner(job, runs, nil))

	r := gin.New()
	h.Register(r.Group("/api/admin"))
	return r
}

func TestSync(t *testing.T) {
	r := setup(t, service.Credentials{GitHubToken: "gh", LLMAPIKey: "llm"}, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/sync", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		RunID    string             `json:"run_id"`
		Projects []domain.Candidate `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "foo-bar", body.Projects[0].ID)
	assert.Equal(t, "Foo", body.Projects[0].Title)
	assert.Equal(t, domain.StatusNew, body.Projects[0].Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs/latest", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), body.RunID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs/"+body.RunID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSync_MissingCredentials(t *testing.T) {
	r := setup(t, service.Credentials{}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/sync", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Missing API Keys")
}

func TestRuns_NotFoundAndDisabled(t *testing.T) {
	r := setup(t, service.Credentials{}, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	r = setup(t, service.Credentials{}, false)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs/latest", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListRuns(t *testing.T) {
	r := setup(t, service.Credentials{GitHubToken: "gh", LLMAPIKey: "llm"}, true)

	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/sync", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	var body struct {
		Runs []string `json:"runs"`
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Runs, 3)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs/latest", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var latest struct {
		Run domain.Run `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Contains(t, body.Runs, latest.Run.RunID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs?limit=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Runs, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRuns_Disabled(t *testing.T) {
	r := setup(t, service.Credentials{}, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/sync/runs", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
