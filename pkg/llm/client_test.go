package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorguard/tutorguard/pkg/config"
	"github.com/tutorguard/tutorguard/pkg/session"
)

func completionJSON(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	})
	return body
}

// newTestClient builds a client against the given test server and
// captures backoff delays instead of sleeping.
func newTestClient(t *testing.T, serverURL string, attempts int) (*Client, *[]time.Duration) {
	t.Helper()
	t.Setenv("TUTORGUARD_TEST_LLM_KEY", "test-key")

	cfg := config.Default()
	cfg.LLM.Endpoint = serverURL
	cfg.LLM.APIKeyEnv = "TUTORGUARD_TEST_LLM_KEY"
	cfg.LLM.RetryAttempts = attempts
	cfg.LLM.RequestTimeoutSec = 5

	client := NewClient(cfg)
	var delays []time.Duration
	client.sleep = func(d time.Duration) { delays = append(delays, d) }
	return client, &delays
}

func basicRequest() Request {
	return Request{
		SystemPrompt: "be helpful",
		History: []session.Message{
			{Role: session.RoleUser, Content: "earlier question"},
			{Role: session.RoleAssistant, Content: "earlier answer"},
		},
		Message: "what is 2+2",
	}
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionJSON("the answer is 4"))
	}))
	defer server.Close()

	client, delays := newTestClient(t, server.URL, 3)
	result := client.Complete(context.Background(), basicRequest())

	require.NoError(t, result.Err)
	assert.Equal(t, "the answer is 4", result.Content)
	assert.Empty(t, *delays)
}

func TestCompleteRetriesTransientFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionJSON("recovered"))
	}))
	defer server.Close()

	client, delays := newTestClient(t, server.URL, 3)
	result := client.Complete(context.Background(), basicRequest())

	require.NoError(t, result.Err)
	assert.Equal(t, "recovered", result.Content)
	assert.Equal(t, 3, calls)

	// Backoff delays must be strictly increasing.
	require.Len(t, *delays, 2)
	assert.Less(t, (*delays)[0], (*delays)[1])
}

func TestCompleteExhaustsRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, delays := newTestClient(t, server.URL, 3)
	result := client.Complete(context.Background(), basicRequest())

	require.Error(t, result.Err)
	assert.True(t, result.Retryable)
	assert.Equal(t, 3, calls)
	assert.Len(t, *delays, 2)
	assert.Empty(t, result.Content)
}

func TestCompleteDoesNotRetryTerminalStatus(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error": {"message": "bad key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, delays := newTestClient(t, server.URL, 3)
	result := client.Complete(context.Background(), basicRequest())

	require.Error(t, result.Err)
	assert.False(t, result.Retryable)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *delays)
}

func TestCompleteEmptyChoicesIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 3)
	result := client.Complete(context.Background(), basicRequest())

	assert.ErrorIs(t, result.Err, ErrEmptyResponse)
	assert.False(t, result.Retryable)
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKeyEnv = "TUTORGUARD_DEFINITELY_UNSET"

	client := NewClient(cfg)
	result := client.Complete(context.Background(), basicRequest())

	assert.ErrorIs(t, result.Err, ErrNoAPIKey)
	assert.False(t, result.Retryable)
}

func TestBackoffDelayIsCapped(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.BackoffBaseMs = 500
	cfg.LLM.BackoffCapMs = 2000

	client := &Client{cfg: cfg.LLM}
	assert.Equal(t, 500*time.Millisecond, client.backoffDelay(0))
	assert.Equal(t, time.Second, client.backoffDelay(1))
	assert.Equal(t, 2*time.Second, client.backoffDelay(2))
	assert.Equal(t, 2*time.Second, client.backoffDelay(5))
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(10, "Sam", false)

	assert.Contains(t, prompt, "The student's name is Sam.")
	assert.Contains(t, prompt, "approximately 10 years old")
	assert.Contains(t, prompt, "BETA SUBJECT SCOPE")
	assert.Contains(t, prompt, "DO NOT cover")
	assert.Contains(t, prompt, "Do not provide hotlines")
	assert.NotContains(t, prompt, "emotional distress")

	distressed := BuildSystemPrompt(10, "", true)
	assert.Contains(t, distressed, "emotional distress")
	assert.NotContains(t, distressed, "name is")
}
