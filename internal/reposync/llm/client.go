// Package llm drafts portfolio text through an OpenAI-compatible chat
// completion endpoint.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"

	"github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "google/gemini-3-flash-preview"

	SystemPrompt = "You are a Tech Writer. Output ONLY valid JSON matching the schema: { title, description, fullDescription, technologies: [], tags: [] }."
)

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	RatePerSec float64
	Timeout    time.Duration
}

type Client struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
}

// NewClient builds the model client. Requests are fired once, without the
// SDK's automatic retries.
func NewClient(opt Options) *Client {
	if opt.BaseURL == "" {
		opt.BaseURL = DefaultBaseURL
	}
	if opt.Model == "" {
		opt.Model = DefaultModel
	}
	limit := rate.Inf
	if opt.RatePerSec > 0 {
		limit = rate.Limit(opt.RatePerSec)
	}

	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(opt.APIKey),
			option.WithBaseURL(opt.BaseURL),
			option.WithMaxRetries(0),
			option.WithHTTPClient(&http.Client{Timeout: opt.Timeout}),
		),
		model:   opt.Model,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Complete sends the repository prompt and returns the raw message content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w", domain.ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// Prompt describes one repository for the model.
func Prompt(r domain.Repo) string {
	desc := r.Description
	if desc == "" {
		desc = "No description provided."
	}
	lang := r.Language
	if lang == "" {
		lang = "Unknown"
	}
	topics := strings.Join(r.Topics, ", ")
	if topics == "" {
		topics = "None"
	}

	var b strings.Builder
	b.WriteString("Analyze this GitHub Repository and create a Portfolio Entry.\n")
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Description: %s\n", desc)
	fmt.Fprintf(&b, "Language: %s\n", lang)
	fmt.Fprintf(&b, "Topics: %s\n", topics)
	return b.String()
}
