package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tutorguard/tutorguard/pkg/observability/logging"
)

var (
	config   *Config
	configMu sync.RWMutex
)

// Load parses the configuration from the given YAML path and caches it
// globally for Get.
func Load(configPath string) (*Config, error) {
	cfg, err := Parse(configPath)
	if err != nil {
		return nil, err
	}
	configMu.Lock()
	config = cfg
	configMu.Unlock()
	return cfg, nil
}

// Parse parses the YAML config file without touching the global cache.
// Omitted fields keep their defaults.
func Parse(configPath string) (*Config, error) {
	// Resolve symlinks to handle Kubernetes ConfigMap mounts
	resolved, _ := filepath.EvalSymlinks(configPath)
	if resolved == "" {
		resolved = configPath
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logging.Infof("Config loaded: endpoint=%s model=%s retry_attempts=%d session_backend=%s",
		cfg.LLM.Endpoint, cfg.LLM.Model, cfg.LLM.RetryAttempts, cfg.Session.Backend)
	return cfg, nil
}

// Get returns the globally cached configuration, or nil if Load has not
// been called.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

// APIKey resolves the backend API key from the configured environment
// variable. An empty result means no key is configured.
func (c *Config) APIKey() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.LLM.APIKeyEnv)
}

// Validate checks structural invariants the rest of the pipeline relies on.
func Validate(cfg *Config) error {
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.RetryAttempts < 1 {
		return fmt.Errorf("llm.retry_attempts must be at least 1, got %d", cfg.LLM.RetryAttempts)
	}
	if cfg.LLM.RequestTimeoutSec <= 0 {
		return fmt.Errorf("llm.request_timeout_seconds must be positive, got %d", cfg.LLM.RequestTimeoutSec)
	}
	if cfg.LLM.BackoffBaseMs <= 0 || cfg.LLM.BackoffCapMs < cfg.LLM.BackoffBaseMs {
		return fmt.Errorf("llm backoff window is invalid: base=%dms cap=%dms",
			cfg.LLM.BackoffBaseMs, cfg.LLM.BackoffCapMs)
	}
	if cfg.History.TokenBudget <= 0 {
		return fmt.Errorf("history.token_budget must be positive, got %d", cfg.History.TokenBudget)
	}
	switch cfg.Session.Backend {
	case "memory", "":
	case "redis":
		if cfg.Session.Redis.Address == "" {
			return fmt.Errorf("session_store.redis.address is required for redis backend")
		}
	default:
		return fmt.Errorf("unknown session store backend: %s (supported: memory, redis)", cfg.Session.Backend)
	}
	return nil
}
