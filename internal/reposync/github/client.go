// Package github lists the authenticated user's repositories.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

const DefaultBaseURL = "https://api.github.com"

type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client that authenticates every request with token.
// No request is made until ListOwnRepos is called.
func NewClient(ctx context.Context, token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = timeout
	return &Client{http: hc, baseURL: strings.TrimRight(baseURL, "/")}
}

type repoPayload struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	Private     bool     `json:"private"`
	HTMLURL     string   `json:"html_url"`
}

// ListOwnRepos returns up to limit repositories owned by the token's user,
// most recently updated first.
func (c *Client) ListOwnRepos(ctx context.Context, limit int) ([]domain.Repo, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("type", "owner")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/repos?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("list repositories: github returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []repoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode repositories: %w", err)
	}

	if len(payload) > limit {
		payload = payload[:limit]
	}
	out := make([]domain.Repo, 0, len(payload))
	for _, p := range payload {
		r := domain.Repo{
			ID:      p.ID,
			Name:    p.Name,
			Topics:  p.Topics,
			Private: p.Private,
			HTMLURL: p.HTMLURL,
		}
		if p.Description != nil {
			r.Description = *p.Description
		}
		if p.Language != nil {
			r.Language = *p.Language
		}
		out = append(out, r)
	}
	return out, nil
}
