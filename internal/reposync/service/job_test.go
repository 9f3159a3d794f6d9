package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

type fakeRepos struct {
	repos []domain.Repo
	err   error
	calls int
}

func (f *fakeRepos) ListOwnRepos(_ context.Context, limit int) ([]domain.Repo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

// fakeModel answers per repository name found in the prompt.
type fakeModel struct {
	mu      sync.Mutex
	answers map[string]string
	errs    map[string]error
	delays  map[string]time.Duration
	calls   int
}

func (f *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	for name, d := range f.delays {
		if strings.Contains(prompt, "Name: "+name+"\n") {
			time.Sleep(d)
		}
	}
	for name, err := range f.errs {
		if strings.Contains(prompt, "Name: "+name+"\n") {
			return "", err
		}
	}
	for name, a := range f.answers {
		if strings.Contains(prompt, "Name: "+name+"\n") {
			return a, nil
		}
	}
	return "{}", nil
}

var creds = Credentials{GitHubToken: "gh", LLMAPIKey: "llm"}

func TestRun_MissingCredentials(t *testing.T) {
	for _, c := range []Credentials{{}, {GitHubToken: "gh"}, {LLMAPIKey: "llm"}} {
		repos := &fakeRepos{}
		model := &fakeModel{}
		job := NewJob(c, repos, model, nil)

		out, err := job.Run(context.Background())
		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
		assert.Nil(t, out)
		assert.Zero(t, repos.calls)
		assert.Zero(t, model.calls)
	}
}

func TestRun_ListFailure(t *testing.T) {
	job := NewJob(creds, &fakeRepos{err: errors.New("github down")}, &fakeModel{}, nil)

	out, err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github down")
	assert.Nil(t, out)
}

func TestRun_BadModelOutputIsolated(t *testing.T) {
	repos := &fakeRepos{repos: []domain.Repo{
		{ID: 1, Name: "Alpha", Description: "a", Language: "Go", HTMLURL: "https://github.com/me/Alpha"},
		{ID: 2, Name: "Beta", Language: "Rust", HTMLURL: "https://github.com/me/Beta"},
		{ID: 3, Name: "Gamma_Web", Language: "TypeScript", HTMLURL: "https://github.com/me/Gamma_Web"},
	}}
	model := &fakeModel{answers: map[string]string{
		"Alpha":     `{"title":"Alpha Tool","description":"short","fullDescription":"long","technologies":["Go","Redis"],"tags":["CLI"]}`,
		"Beta":      "Sure! Here is your JSON:",
		"Gamma_Web": `{"title":"Gamma","technologies":["TS"],"tags":["Web"]}`,
	}}
	job := NewJob(creds, repos, model, nil)

	out, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	alpha := out[0]
	assert.Equal(t, "alpha", alpha.ID)
	assert.Equal(t, domain.StatusNew, alpha.Status)
	assert.Equal(t, "Alpha Tool", alpha.Title)
	assert.Equal(t, "long", alpha.FullDescription)
	assert.Equal(t, []string{"Go", "Redis"}, alpha.Technologies)
	assert.Equal(t, "https://github.com/me/Alpha", alpha.GithubURL)

	beta := out[1]
	assert.Equal(t, "beta", beta.ID)
	assert.Equal(t, domain.StatusError, beta.Status)
	assert.Equal(t, "Beta", beta.Title)
	assert.Equal(t, "Auto-imported", beta.Description)
	assert.Equal(t, []string{"Rust"}, beta.Technologies)
	assert.NotEmpty(t, beta.Error)

	gamma := out[2]
	assert.Equal(t, "gamma-web", gamma.ID)
	assert.Equal(t, domain.StatusNew, gamma.Status)
	assert.Equal(t, "Gamma", gamma.Title)
	assert.Equal(t, []string{"Web"}, gamma.Tags)
}

func TestRun_ModelErrorAndPrivateRepo(t *testing.T) {
	repos := &fakeRepos{repos: []domain.Repo{
		{ID: 1, Name: "secret", Private: true, HTMLURL: "https://github.com/me/secret"},
		{ID: 2, Name: "open", HTMLURL: "https://github.com/me/open"},
	}}
	model := &fakeModel{errs: map[string]error{"secret": errors.New("rate limited")}}
	job := NewJob(creds, repos, model, nil)

	out, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, domain.StatusError, out[0].Status)
	assert.Empty(t, out[0].GithubURL)
	assert.True(t, out[0].IsPrivate)
	assert.Equal(t, "secret", out[0].Title)
	assert.Equal(t, []string{"Unknown"}, out[0].Technologies)

	assert.Equal(t, domain.StatusNew, out[1].Status)
	assert.Equal(t, "https://github.com/me/open", out[1].GithubURL)
}

func TestRun_PreservesInputOrder(t *testing.T) {
	repos := &fakeRepos{repos: []domain.Repo{{Name: "slow"}, {Name: "fast"}}}
	model := &fakeModel{delays: map[string]time.Duration{"slow": 30 * time.Millisecond}}
	job := NewJob(creds, repos, model, nil)

	out, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "slow", out[0].ID)
	assert.Equal(t, "fast", out[1].ID)
}

func TestRun_RecordsMetrics(t *testing.T) {
	ResetMetrics()
	repos := &fakeRepos{repos: []domain.Repo{{Name: "a"}, {Name: "b"}}}
	model := &fakeModel{answers: map[string]string{"b": "not json"}}

	_, err := NewJob(creds, repos, model, nil).Run(context.Background())
	require.NoError(t, err)

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Runs())
	assert.Equal(t, int64(2), m.ReposProcessed())
	assert.Equal(t, int64(1), m.Fallbacks())
	assert.Equal(t, int64(3), m.UpstreamCalls())
	assert.Zero(t, m.UpstreamErrorRate())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "foo-bar", domain.Slug("Foo.Bar"))
	assert.Equal(t, "foo-bar", domain.Slug("foo_bar"))
	assert.Equal(t, "my-repo-2", domain.Slug("My Repo 2"))
	assert.Equal(t, "--", domain.Slug("äö"))
}
