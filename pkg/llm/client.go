package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tutorguard/tutorguard/pkg/config"
	"github.com/tutorguard/tutorguard/pkg/observability/logging"
	"github.com/tutorguard/tutorguard/pkg/observability/metrics"
	"github.com/tutorguard/tutorguard/pkg/session"
)

// ErrNoAPIKey is returned when no backend API key is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// ErrEmptyResponse is returned when the backend answers without usable
// content. It is terminal for the turn, not retried.
var ErrEmptyResponse = errors.New("empty response from backend")

// Request is one upstream completion request.
type Request struct {
	SystemPrompt string
	History      []session.Message
	Message      string
}

// Result is the outcome of one upstream completion call.
type Result struct {
	Content   string
	Err       error
	Retryable bool
}

// Client performs chat-completion calls with bounded retries. The
// library's built-in retrying is disabled; backoff policy lives here so
// tests and the config surface control it fully.
type Client struct {
	api    openai.Client
	cfg    config.LLMConfig
	hasKey bool

	// sleep is swapped out in tests to observe backoff delays.
	sleep func(time.Duration)
}

// NewClient creates a completion client from configuration. The API key
// is resolved once, at construction.
func NewClient(cfg *config.Config) *Client {
	key := cfg.APIKey()
	return &Client{
		api: openai.NewClient(
			option.WithBaseURL(cfg.LLM.Endpoint),
			option.WithAPIKey(key),
			option.WithMaxRetries(0),
		),
		cfg:    cfg.LLM,
		hasKey: key != "",
		sleep:  time.Sleep,
	}
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// backoffDelay computes the capped exponential delay before the given
// zero-based retry attempt.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.cfg.BackoffBase() << attempt
	if maxDelay := c.cfg.BackoffCap(); delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// Complete sends the system prompt, trimmed history, and current message
// to the backend. Transient failures (429/5xx, transport errors) are
// retried with capped exponential backoff up to the configured attempt
// limit; any other failure is terminal for this turn.
func (c *Client) Complete(ctx context.Context, req Request) Result {
	if !c.hasKey {
		return Result{Err: ErrNoAPIKey}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	for _, msg := range req.History {
		switch msg.Role {
		case session.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case session.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(req.Message))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(c.cfg.Temperature),
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
	}

	attempts := c.cfg.RetryAttempts
	var lastErr error
	var lastRetryable bool

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.backoffDelay(attempt - 1)
			logging.Infof("Retrying completion call in %s (attempt %d/%d)", delay, attempt+1, attempts)
			metrics.RecordLLMRetry()
			c.sleep(delay)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
		resp, err := c.api.Chat.Completions.New(attemptCtx, params)
		cancel()

		if err != nil {
			var apierr *openai.Error
			if errors.As(err, &apierr) {
				lastRetryable = retryableStatus(apierr.StatusCode)
				lastErr = fmt.Errorf("backend HTTP %d: %w", apierr.StatusCode, err)
				if lastRetryable {
					continue
				}
				// Non-retryable status: one attempt, done.
				break
			}
			// Transport-level failure (timeout, connection refused).
			lastRetryable = true
			lastErr = fmt.Errorf("backend request failed: %w", err)
			continue
		}

		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			metrics.RecordLLMRequest("error")
			return Result{Err: ErrEmptyResponse}
		}

		metrics.RecordLLMRequest("success")
		return Result{Content: resp.Choices[0].Message.Content}
	}

	metrics.RecordLLMRequest("error")
	logging.Errorf("Completion call failed after %d attempt(s): %v", attempts, lastErr)
	return Result{Err: lastErr, Retryable: lastRetryable}
}
