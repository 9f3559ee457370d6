package session

import (
	"fmt"

	"github.com/tutorguard/tutorguard/pkg/observability/logging"
)

// NewStore creates a session store from the configuration.
func NewStore(config StoreConfig) (Store, error) {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch config.Backend {
	case MemoryBackend, "":
		logging.Infof("Creating memory session store (max_sessions=%d, ttl=%s)",
			config.Memory.MaxSessions, ttl)
		return NewMemoryStore(config.Memory, ttl), nil

	case RedisBackend:
		return NewRedisStore(config.Redis, ttl)

	default:
		return nil, fmt.Errorf("unknown session store backend: %s (supported: memory, redis)", config.Backend)
	}
}
