package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/llm"
)

const (
	repoLimit       = 10
	fallbackSummary = "Auto-imported"
)

// RepoLister lists the token owner's repositories.
type RepoLister interface {
	ListOwnRepos(ctx context.Context, limit int) ([]domain.Repo, error)
}

// Completer sends one prompt to the model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Credentials struct {
	GitHubToken string
	LLMAPIKey   string
}

func (c Credentials) valid() bool {
	return strings.TrimSpace(c.GitHubToken) != "" && strings.TrimSpace(c.LLMAPIKey) != ""
}

// Job turns recently updated repositories into project candidates. It
// never writes to the content store.
type Job struct {
	creds Credentials
	repos RepoLister
	model Completer
	log   logging.Logger
}

func NewJob(creds Credentials, repos RepoLister, model Completer, log logging.Logger) *Job {
	if log == nil {
		log = logging.Nop()
	}
	return &Job{creds: creds, repos: repos, model: model, log: log.With("component", "reposync")}
}

// Run lists up to ten owned repositories and drafts one candidate per
// repository concurrently. Output order matches the listing. A failing
// repository yields an error candidate without affecting the others; only
// a failed listing fails the run.
func (j *Job) Run(ctx context.Context) ([]domain.Candidate, error) {
	if !j.creds.valid() {
		recordRun(domain.ErrMissingCredentials)
		return nil, domain.ErrMissingCredentials
	}

	start := time.Now()
	repos, err := j.repos.ListOwnRepos(ctx, repoLimit)
	recordUpstreamCall(time.Since(start), err)
	if err != nil {
		recordRun(err)
		j.log.Error(ctx, "sync: list repositories failed", "error", err)
		return nil, fmt.Errorf("sync: %w", err)
	}

	out := make([]domain.Candidate, len(repos))
	var wg sync.WaitGroup
	for i, repo := range repos {
		wg.Add(1)
		go func(i int, repo domain.Repo) {
			defer wg.Done()
			out[i] = j.process(ctx, repo)
		}(i, repo)
	}
	wg.Wait()

	j.warnDuplicates(ctx, out)
	recordRun(nil)
	j.log.Info(ctx, "sync completed", "repos", len(repos), "duration_ms", time.Since(start).Milliseconds())
	return out, nil
}

func (j *Job) process(ctx context.Context, repo domain.Repo) (c domain.Candidate) {
	base := domain.Fallback(repo)
	defer func() {
		if r := recover(); r != nil {
			c = failed(base, fmt.Errorf("panic: %v", r))
			j.log.Error(ctx, "sync: repository panicked", "repo", repo.Name, "panic", r)
		}
		recordRepo(c.Status == domain.StatusError)
	}()

	start := time.Now()
	content, err := j.model.Complete(ctx, llm.Prompt(repo))
	recordUpstreamCall(time.Since(start), err)
	if err != nil {
		j.log.Warn(ctx, "sync: model call failed", "repo", repo.Name, "error", err)
		return failed(base, err)
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &draft); err != nil {
		j.log.Warn(ctx, "sync: unparseable model output", "repo", repo.Name, "error", err)
		return failed(base, domain.ErrInvalidResponse)
	}

	c = base.Apply(draft)
	c.Status = domain.StatusNew
	return c
}

func failed(base domain.Candidate, err error) domain.Candidate {
	if base.Description == "" {
		base.Description = fallbackSummary
	}
	base.Status = domain.StatusError
	base.Error = err.Error()
	return base
}

// warnDuplicates logs ids that collide after slug normalization. All
// colliding candidates are kept; publishing the later one overwrites the
// earlier document.
func (j *Job) warnDuplicates(ctx context.Context, cs []domain.Candidate) {
	seen := make(map[string]string, len(cs))
	for _, c := range cs {
		if prev, ok := seen[c.ID]; ok {
			j.log.Warn(ctx, "sync: candidate id collision", "id", c.ID, "repo", c.Name, "other_repo", prev)
			continue
		}
		seen[c.ID] = c.Name
	}
}
