package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrMissingCredentials = errors.New("missing GITHUB_TOKEN or LLM_API_KEY")
	ErrRunNotFound        = errors.New("sync run not found")
	ErrInvalidResponse    = errors.New("model returned invalid JSON")
)

// CandidateStatus is the review state a sync result starts in.
type CandidateStatus string

const (
	StatusNew   CandidateStatus = "new"
	StatusError CandidateStatus = "error"
)

// Repo is the subset of a GitHub repository the job reads.
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Private     bool     `json:"private"`
	HTMLURL     string   `json:"html_url"`
}

// Draft is the structured text the model is asked to return.
type Draft struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Technologies    []string `json:"technologies"`
	Tags            []string `json:"tags"`
}

// Candidate is a not yet persisted project produced by a sync.
type Candidate struct {
	ID              string          `json:"id"`
	GithubID        int64           `json:"githubId"`
	Name            string          `json:"name"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	FullDescription string          `json:"fullDescription"`
	Technologies    []string        `json:"technologies"`
	Tags            []string        `json:"tags"`
	GithubURL       string          `json:"githubUrl,omitempty"`
	IsPrivate       bool            `json:"isPrivate"`
	Status          CandidateStatus `json:"status"`
	Error           string          `json:"error,omitempty"`
}

// RunStatus tracks a sync run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded execution of the sync job.
type Run struct {
	RunID       string      `json:"run_id"`
	Trigger     string      `json:"trigger"`
	Status      RunStatus   `json:"status"`
	Candidates  []Candidate `json:"candidates,omitempty"`
	Errors      int         `json:"errors"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]`)

// Slug derives a project id from a repository name: lower case, every
// character outside [a-z0-9] replaced by a hyphen.
func Slug(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(name), "-")
}

// Fallback builds the candidate used when the model output is unusable.
func Fallback(r Repo) Candidate {
	c := Candidate{
		ID:           Slug(r.Name),
		GithubID:     r.ID,
		Name:         r.Name,
		Title:        r.Name,
		Description:  r.Description,
		Technologies: []string{languageOrUnknown(r.Language)},
		Tags:         []string{},
		IsPrivate:    r.Private,
	}
	if !r.Private {
		c.GithubURL = r.HTMLURL
	}
	return c
}

// Apply merges the non-empty fields of d over c.
func (c Candidate) Apply(d Draft) Candidate {
	if d.Title != "" {
		c.Title = d.Title
	}
	if d.Description != "" {
		c.Description = d.Description
	}
	if d.FullDescription != "" {
		c.FullDescription = d.FullDescription
	}
	if d.Technologies != nil {
		c.Technologies = d.Technologies
	}
	if d.Tags != nil {
		c.Tags = d.Tags
	}
	return c
}

func languageOrUnknown(lang string) string {
	if lang == "" {
		return "Unknown"
	}
	return lang
}
