// Package history builds and bounds the prior-conversation payload sent
// to the upstream model.
package history

import "github.com/tutorguard/tutorguard/pkg/session"

// charsPerToken is the rough estimation ratio used for budgeting. It
// only needs to be stable, not exact.
const charsPerToken = 4

// Build assembles the conversation history for an upstream call: the
// persisted summary (if any) as a leading system entry, then every prior
// user/assistant turn in original order.
func Build(state *session.State) []session.Message {
	conv := make([]session.Message, 0, len(state.Messages)+1)
	if state.ConversationSummary != "" {
		conv = append(conv, session.Message{
			Role:    session.RoleSystem,
			Content: state.ConversationSummary,
		})
	}
	for _, msg := range state.Messages {
		if msg.Role == session.RoleUser || msg.Role == session.RoleAssistant {
			conv = append(conv, msg)
		}
	}
	return conv
}

// EstimateTokens approximates the token cost of a string.
func EstimateTokens(text string) int {
	if text == "" {
		return 1
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// Trim keeps the most recent messages whose combined estimated cost fits
// the budget, returned in chronological order. A message that would
// exceed the budget is excluded whole, never truncated mid-content.
func Trim(history []session.Message, budget int) []session.Message {
	total := 0
	kept := 0
	for i := len(history) - 1; i >= 0; i-- {
		cost := EstimateTokens(history[i].Content)
		if total+cost > budget {
			break
		}
		total += cost
		kept++
	}
	return history[len(history)-kept:]
}
