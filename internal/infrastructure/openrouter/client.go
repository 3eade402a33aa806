package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bazarfresh/backend/config"
	"github.com/bazarfresh/backend/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the OpenRouter chat completions API. It implements
// domain.TextGenerator.
type Client struct {
	client      *resty.Client
	model       string
	maxTokens   int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates an OpenRouter client from configuration.
func NewClient(cfg config.OpenRouterConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", cfg.Referer). // required by OpenRouter
		SetHeader("X-Title", cfg.Title)

	// Free-tier models allow roughly 20 requests per minute; burst a little
	// since one chat message can need two completions.
	limiter := rate.NewLimiter(rate.Limit(0.33), 5)

	return &Client{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		rateLimiter: limiter,
		logger:      logger,
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Generate sends a single prompt and returns the model's text reply.
// Transient failures are retried twice with a short backoff; auth and quota
// errors are returned immediately.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		start := time.Now()
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(body).
			Post("/chat/completions")
		if err != nil {
			c.logger.Warn("openrouter request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			lastErr = err
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt*500) * time.Millisecond):
			}
			continue
		}

		// Auth and quota problems will not clear on retry.
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusPaymentRequired {
			return "", fmt.Errorf("%w: status %d: %s", domain.ErrGenerationUnavailable, resp.StatusCode(), resp.String())
		}

		if resp.StatusCode() != http.StatusOK {
			c.logger.Warn("openrouter returned error status",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode()),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrGenerationUnavailable, resp.StatusCode())
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt*500) * time.Millisecond):
			}
			continue
		}

		var parsed chatResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return "", fmt.Errorf("decode openrouter response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("%w: %s", domain.ErrGenerationUnavailable, parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("%w: no choices in response", domain.ErrGenerationUnavailable)
		}

		c.logger.Debug("openrouter completion",
			zap.String("model", c.model),
			zap.Duration("latency", time.Since(start)),
			zap.Int("prompt_len", len(prompt)),
		)
		return parsed.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, lastErr)
}
