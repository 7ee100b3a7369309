// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/shoprec/internal/metrics"
)

// maxResponseBytes bounds how much of a completion response is read.
const maxResponseBytes = 4 << 20

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("llm: api key not configured")

	// ErrEmptyResponse is returned when the endpoint answers without choices.
	ErrEmptyResponse = errors.New("llm: no choices returned")
)

// APIError is a non-2xx answer from the completion endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error (status %d): %s", e.StatusCode, e.Body)
}

// Config configures a Client.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration

	// RequestsPerSecond limits outbound calls; 0 disables limiting.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a completion client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger.With().Str("component", "llm").Str("model", cfg.Model).Logger(),
	}
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete sends one system and one user message and returns the text of
// the first choice.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	if c.apiKey == "" {
		metrics.RecordLLMRequest("error", 0)
		return "", ErrMissingAPIKey
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.RecordLLMRequest("rate_limited", 0)
			return "", fmt.Errorf("llm rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordLLMRequest("error", time.Since(start))
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordLLMRequest("error", elapsed)
		return "", fmt.Errorf("read llm response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordLLMRequest("error", elapsed)
		return "", &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), 512)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		metrics.RecordLLMRequest("error", elapsed)
		return "", fmt.Errorf("failed to parse llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		metrics.RecordLLMRequest("error", elapsed)
		return "", ErrEmptyResponse
	}

	metrics.RecordLLMRequest("success", elapsed)
	c.logger.Debug().
		Dur("duration", elapsed).
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Int("completion_tokens", parsed.Usage.CompletionTokens).
		Msg("Completion received")

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
