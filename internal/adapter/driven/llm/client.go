// Package llm implements the Summarizer port against an OpenAI-compatible
// chat-completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// Defaults for the provider connection and the summary instruction.
const (
	DefaultBaseURL         = "https://api.anthropic.com/v1"
	DefaultModel           = "claude-3-5-haiku-20241022"
	DefaultSummaryLanguage = "Japanese"
	DefaultSummaryMaxChars = 144

	summaryMaxTokens    = 1000
	validationMaxTokens = 10
	validationPrompt    = "Hello"
)

const summaryPromptTemplate = `Summarize the following text in %d characters or fewer. Write concise, easy-to-understand %s and include the most important points.

Text:
%s`

// Compile-time interface satisfaction check.
var _ driven.Summarizer = (*Client)(nil)

// Config configures the provider endpoint and summary instruction.
type Config struct {
	BaseURL         string
	Model           string
	SummaryLanguage string
	SummaryMaxChars int
	HTTPClient      *http.Client // Optional; http.DefaultClient when nil.
}

// Client talks to the LLM provider. The API key is supplied per call and is
// never held by the client.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a Client, filling unset Config fields with defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SummaryLanguage == "" {
		cfg.SummaryLanguage = DefaultSummaryLanguage
	}
	if cfg.SummaryMaxChars <= 0 {
		cfg.SummaryMaxChars = DefaultSummaryMaxChars
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{cfg: cfg, logger: logger}
}

func (c *Client) api(apiKey string) *openai.Client {
	conf := openai.DefaultConfig(apiKey)
	conf.BaseURL = c.cfg.BaseURL
	if c.cfg.HTTPClient != nil {
		conf.HTTPClient = c.cfg.HTTPClient
	}
	return openai.NewClientWithConfig(conf)
}

// ValidateCredential sends a trivial request with apiKey. Any error the
// provider reports (bad key, bad request, rate limit) yields false, nil.
// Transport failures are returned wrapped in model.ErrProviderUnreachable.
func (c *Client) ValidateCredential(ctx context.Context, apiKey string) (bool, error) {
	_, err := c.api(apiKey).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: validationMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: validationPrompt},
		},
	})
	if err == nil {
		return true, nil
	}

	if status, ok := providerStatus(err); ok {
		c.logger.InfoContext(ctx, "api key rejected by provider", "status", status, "error", err)
		return false, nil
	}

	return false, fmt.Errorf("%w: %v", model.ErrProviderUnreachable, err)
}

// GenerateSummary asks the provider for a summary of text and returns the
// first non-empty text content of the response.
func (c *Client) GenerateSummary(ctx context.Context, apiKey, text string) (string, error) {
	resp, err := c.api(apiKey).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: summaryMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: c.summaryPrompt(text)},
		},
	})
	if err != nil {
		status, _ := providerStatus(err)
		c.logger.ErrorContext(ctx, "summary request failed", "status", status, "error", err)
		return "", model.ErrSummarization
	}

	summary, ok := firstText(resp)
	if !ok {
		c.logger.ErrorContext(ctx, "summary response had no text content", "choices", len(resp.Choices))
		return "", model.ErrSummarization
	}

	return summary, nil
}

func (c *Client) summaryPrompt(text string) string {
	return fmt.Sprintf(summaryPromptTemplate, c.cfg.SummaryMaxChars, c.cfg.SummaryLanguage, text)
}

// providerStatus reports the HTTP status when err came from the provider
// answering the request, as opposed to a transport failure.
func providerStatus(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}

func firstText(resp openai.ChatCompletionResponse) (string, bool) {
	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, true
		}
		for _, part := range choice.Message.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText && strings.TrimSpace(part.Text) != "" {
				return strings.TrimSpace(part.Text), true
			}
		}
	}
	return "", false
}
