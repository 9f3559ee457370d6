package session

import (
	"context"
	"sync"
	"time"
)

const defaultMaxSessions = 1000

type memoryEntry struct {
	state     *State
	expiresAt time.Time
}

// MemoryStore is an in-memory Store. Idle sessions expire after the
// configured TTL; when capacity is reached the oldest-updated session is
// evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry

	maxSessions int
	ttl         time.Duration

	done chan struct{}
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(config MemoryConfig, ttl time.Duration) *MemoryStore {
	maxSessions := config.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	store := &MemoryStore{
		sessions:    make(map[string]*memoryEntry),
		maxSessions: maxSessions,
		ttl:         ttl,
		done:        make(chan struct{}),
	}

	go store.cleanupExpired()
	return store
}

// Get retrieves a session by ID.
func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.state, nil
}

// Put stores or replaces a session.
func (m *MemoryStore) Put(_ context.Context, state *State) error {
	if state == nil || state.ID == "" {
		return ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[state.ID]; !exists && len(m.sessions) >= m.maxSessions {
		if !m.evictOldestLocked() {
			return ErrStoreFull
		}
	}

	m.sessions[state.ID] = &memoryEntry{
		state:     state,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	close(m.done)
	return nil
}

// Len returns the number of resident sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// evictOldestLocked removes the session with the oldest update time.
// Caller must hold the write lock.
func (m *MemoryStore) evictOldestLocked() bool {
	var oldestID string
	var oldest time.Time

	for id, entry := range m.sessions {
		at := entry.state.UpdatedAt
		if at.IsZero() {
			at = entry.state.CreatedAt
		}
		if oldestID == "" || at.Before(oldest) {
			oldestID = id
			oldest = at
		}
	}
	if oldestID == "" {
		return false
	}
	delete(m.sessions, oldestID)
	return true
}

func (m *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, entry := range m.sessions {
				if now.After(entry.expiresAt) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
