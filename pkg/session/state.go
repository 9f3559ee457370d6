// Package session provides the per-conversation state aggregate and the
// pluggable store that persists it across turns. It supports memory and
// Redis backends.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Message roles used in conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the mutable per-session aggregate the pipeline reads and
// writes. It is single-writer per session: concurrent turns for the same
// session must be serialized by the caller.
type State struct {
	ID string `json:"id"`

	// Conversation history, append-only within a session.
	Messages []Message `json:"messages"`

	// ConversationSummary, when set, is prepended to the history as a
	// system-role entry. Producing it is the caller's concern.
	ConversationSummary string `json:"conversation_summary,omitempty"`

	// Sticky student profile. Age and grade, once set, are never
	// overwritten within a session (first strong signal wins).
	StudentAge   int    `json:"student_age,omitempty"`
	StudentGrade int    `json:"student_grade,omitempty"`
	StudentName  string `json:"student_name,omitempty"`

	// Monotonic counters for future escalation policy.
	SafetyInterventions int `json:"safety_interventions"`
	HarmfulRequestCount int `json:"harmful_request_count"`
	BehaviorStrikes     int `json:"behavior_strikes"`
	InteractionCount    int `json:"interaction_count"`

	// PostCrisisMonitoring is set once a crisis is detected and is never
	// auto-cleared here; clearing it is an external policy decision.
	PostCrisisMonitoring bool `json:"post_crisis_monitoring"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	initialized bool
}

// NewState creates an initialized state with a fresh session ID.
func NewState() *State {
	s := &State{ID: uuid.NewString()}
	s.EnsureDefaults()
	return s
}

// EnsureDefaults makes sure every field the pipeline touches exists with
// a usable zero value. It is idempotent and safe to call every turn.
func (s *State) EnsureDefaults() {
	if s.initialized {
		return
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.initialized = true
}

// AppendMessage appends one history entry and bumps the update time.
func (s *State) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// HasAge reports whether a sticky age has been persisted.
func (s *State) HasAge() bool {
	return s.StudentAge != 0
}
