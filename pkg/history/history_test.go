package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorguard/tutorguard/pkg/session"
)

func TestBuildPrependsSummary(t *testing.T) {
	state := session.NewState()
	state.ConversationSummary = "earlier we worked on fractions"
	state.AppendMessage(session.RoleUser, "what about decimals")
	state.AppendMessage(session.RoleAssistant, "sure, let's start")

	conv := Build(state)
	require.Len(t, conv, 3)
	assert.Equal(t, session.RoleSystem, conv[0].Role)
	assert.Equal(t, "earlier we worked on fractions", conv[0].Content)
	assert.Equal(t, session.RoleUser, conv[1].Role)
	assert.Equal(t, session.RoleAssistant, conv[2].Role)
}

func TestBuildSkipsForeignRoles(t *testing.T) {
	state := session.NewState()
	state.Messages = []session.Message{
		{Role: "tool", Content: "ignored"},
		{Role: session.RoleUser, Content: "kept"},
	}

	conv := Build(state)
	require.Len(t, conv, 1)
	assert.Equal(t, "kept", conv[0].Content)
}

func TestBuildEmptyState(t *testing.T) {
	assert.Empty(t, Build(session.NewState()))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 1, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}

func TestTrimKeepsMostRecentSuffix(t *testing.T) {
	var hist []session.Message
	for i := 0; i < 10; i++ {
		hist = append(hist, session.Message{
			Role:    session.RoleUser,
			Content: fmt.Sprintf("message number %02d padded out to forty chars", i),
		})
	}
	perMessage := EstimateTokens(hist[0].Content)

	trimmed := Trim(hist, perMessage*3)
	require.Len(t, trimmed, 3)

	// The kept subset is the contiguous most-recent suffix, in order.
	assert.Equal(t, hist[7], trimmed[0])
	assert.Equal(t, hist[8], trimmed[1])
	assert.Equal(t, hist[9], trimmed[2])
}

func TestTrimNeverEmptyIfOneFits(t *testing.T) {
	hist := []session.Message{
		{Role: session.RoleUser, Content: strings.Repeat("a", 400)},
		{Role: session.RoleAssistant, Content: "ok"},
	}
	trimmed := Trim(hist, 5)
	require.Len(t, trimmed, 1)
	assert.Equal(t, "ok", trimmed[0].Content)
}

func TestTrimEmptyHistory(t *testing.T) {
	assert.Empty(t, Trim(nil, 100))
}

func TestTrimFitsEverything(t *testing.T) {
	hist := []session.Message{
		{Role: session.RoleUser, Content: "short"},
		{Role: session.RoleAssistant, Content: "also short"},
	}
	assert.Equal(t, hist, Trim(hist, 1000))
}
