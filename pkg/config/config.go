// Package config holds the externally supplied configuration for the
// moderation pipeline: the LLM backend contract, retry policy, history
// budget, server ports, and the session store backend.
package config

import "time"

// Config is the root configuration loaded from YAML.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session_store"`
}

// LLMConfig describes the chat-completion backend and the retry policy
// around it. The API key itself is never stored in YAML; APIKeyEnv names
// the environment variable that carries it.
type LLMConfig struct {
	Endpoint          string  `yaml:"endpoint"`
	APIKeyEnv         string  `yaml:"api_key_env"`
	Model             string  `yaml:"model"`
	Temperature       float64 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	RequestTimeoutSec int     `yaml:"request_timeout_seconds"`
	RetryAttempts     int     `yaml:"retry_attempts"`
	BackoffBaseMs     int     `yaml:"backoff_base_ms"`
	BackoffCapMs      int     `yaml:"backoff_cap_ms"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// BackoffBase returns the initial retry delay.
func (c LLMConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMs) * time.Millisecond
}

// BackoffCap returns the maximum retry delay.
func (c LLMConfig) BackoffCap() time.Duration {
	return time.Duration(c.BackoffCapMs) * time.Millisecond
}

// HistoryConfig bounds the conversation history sent upstream.
type HistoryConfig struct {
	TokenBudget int `yaml:"token_budget"`
}

// ServerConfig holds the HTTP serving surface ports.
type ServerConfig struct {
	APIPort     int `yaml:"api_port"`
	MetricsPort int `yaml:"metrics_port"`
}

// SessionConfig selects and configures the session store backend.
type SessionConfig struct {
	Backend    string      `yaml:"backend"` // "memory" or "redis"
	TTLSeconds int         `yaml:"ttl_seconds"`
	Memory     MemoryStore `yaml:"memory"`
	Redis      RedisStore  `yaml:"redis"`
}

// TTL returns the idle session retention time as a duration.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// MemoryStore configures the in-memory session backend.
type MemoryStore struct {
	MaxSessions int `yaml:"max_sessions"`
}

// RedisStore configures the Redis session backend.
type RedisStore struct {
	Address   string `yaml:"address"`
	Database  int    `yaml:"database"`
	Password  string `yaml:"password"`
	KeyPrefix string `yaml:"key_prefix"`
}

// Default returns a configuration with working defaults for every field
// an operator is allowed to omit.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Endpoint:          "https://api.groq.com/openai/v1",
			APIKeyEnv:         "GROQ_API_KEY",
			Model:             "llama3-70b-8192",
			Temperature:       0.7,
			MaxTokens:         1000,
			RequestTimeoutSec: 20,
			RetryAttempts:     3,
			BackoffBaseMs:     500,
			BackoffCapMs:      8000,
		},
		History: HistoryConfig{
			TokenBudget: 2400,
		},
		Server: ServerConfig{
			APIPort:     8080,
			MetricsPort: 9190,
		},
		Session: SessionConfig{
			Backend:    "memory",
			TTLSeconds: 3600,
			Memory:     MemoryStore{MaxSessions: 1000},
		},
	}
}
