// internal/common/llm/client.go

// Package llm wraps the OpenAI chat API behind the narrow interface plan
// executors need: prompt in, text out. The query-understanding core never
// imports this package; only the plan-execution worker does.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shubhankar10/Map-Assistant/internal/common/config"

	openai "github.com/sashabaranov/go-openai"
)

var ErrEmptyCompletion = errors.New("llm returned empty completion")

// Client wraps the OpenAI API client with retry logic.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	maxRetries  int
	retryDelay  time.Duration
}

func NewClient(cfg config.LLMAPIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}

	return &Client{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		maxRetries:  cfg.MaxRetries,
		retryDelay:  time.Second,
	}, nil
}

// Complete sends a single-turn prompt and returns the completion text.
// Transient failures are retried with a fixed delay; context cancellation
// wins over retries.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = ErrEmptyCompletion
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("llm completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
