package session

import (
	"context"
	"errors"
	"time"
)

// Standard errors for session store operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrStoreFull is returned when the store cannot accept new sessions.
	ErrStoreFull = errors.New("session store is full")

	// ErrInvalidID is returned when the session ID is empty or malformed.
	ErrInvalidID = errors.New("invalid session ID")
)

// Store persists session state across turns. Implementations must be
// safe for concurrent use; per-session turn serialization remains the
// caller's responsibility.
type Store interface {
	// Get retrieves a session by ID. Returns ErrNotFound if absent or
	// expired.
	Get(ctx context.Context, id string) (*State, error)

	// Put stores or replaces a session.
	Put(ctx context.Context, state *State) error

	// Delete removes a session. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}

// DefaultTTL is how long an idle session is retained.
const DefaultTTL = time.Hour

// BackendType selects a store implementation.
type BackendType string

const (
	// MemoryBackend is the in-memory store.
	MemoryBackend BackendType = "memory"

	// RedisBackend is the Redis-backed store.
	RedisBackend BackendType = "redis"
)

// StoreConfig configures the store factory.
type StoreConfig struct {
	Backend BackendType
	TTL     time.Duration

	Memory MemoryConfig
	Redis  RedisConfig
}

// MemoryConfig configures the in-memory store.
type MemoryConfig struct {
	// MaxSessions bounds resident sessions; the oldest-updated session
	// is evicted when the bound is reached.
	MaxSessions int
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Address   string
	Database  int
	Password  string
	KeyPrefix string
}
