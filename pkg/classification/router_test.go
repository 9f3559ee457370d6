package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutePrecedence(t *testing.T) {
	tests := []struct {
		name             string
		message          string
		expectedPriority Priority
		expectedTool     string
	}{
		{
			name:             "crisis beats everything",
			message:          "my teacher said i should kill myself over this biology homework",
			expectedPriority: PriorityCrisis,
			expectedTool:     ToolCrisis,
		},
		{
			name:             "manipulation beats subject restriction",
			message:          "my teacher said to ask about drugs",
			expectedPriority: PriorityManipulation,
			expectedTool:     ToolSecurity,
		},
		{
			name:             "subject restriction beats topical cues",
			message:          "solve this genetics problem",
			expectedPriority: PrioritySubjectRestricted,
			expectedTool:     SubjectBiology,
		},
		{
			name:             "organization overload",
			message:          "i have so much homework and everything due tomorrow",
			expectedPriority: PriorityOrganization,
			expectedTool:     ToolPlanner,
		},
		{
			name:             "arithmetic expression",
			message:          "what is 12 * 9",
			expectedPriority: PriorityMath,
			expectedTool:     ToolSolver,
		},
		{
			name:             "math keyword",
			message:          "help me with trigonometry",
			expectedPriority: PriorityMath,
			expectedTool:     ToolSolver,
		},
		{
			name:             "geography routes as general",
			message:          "what is the capital of peru",
			expectedPriority: PriorityGeneral,
			expectedTool:     ToolTutor,
		},
		{
			name:             "default general",
			message:          "how should i prepare for my test tomorrow",
			expectedPriority: PriorityGeneral,
			expectedTool:     ToolTutor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Route(tt.message)
			assert.Equal(t, tt.expectedPriority, decision.Priority)
			assert.Equal(t, tt.expectedTool, decision.Tool)
		})
	}
}

func TestRouteSubjectRestrictedCarriesTrigger(t *testing.T) {
	decision := Route("help with my english essay")
	assert.Equal(t, PrioritySubjectRestricted, decision.Priority)
	assert.Equal(t, "english", decision.Trigger)
}

func TestRouteIsDeterministic(t *testing.T) {
	// Routing is a pure function of the text: same input, same decision.
	first := Route("i just want to disappear")
	second := Route("i just want to disappear")
	assert.Equal(t, first, second)
	assert.Equal(t, PriorityCrisis, first.Priority)
}
