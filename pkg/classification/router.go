package classification

import (
	"regexp"
	"strings"

	"github.com/tutorguard/tutorguard/pkg/normalize"
)

// Priority is the single classification label assigned to one incoming
// message. It determines which response path runs.
type Priority string

const (
	PriorityCrisis            Priority = "crisis"
	PriorityManipulation      Priority = "manipulation"
	PrioritySubjectRestricted Priority = "subject_restricted"
	PriorityOrganization      Priority = "organization"
	PriorityMath              Priority = "math"
	PriorityGeneral           Priority = "general"
)

// Tool hints attached to a routing decision.
const (
	ToolCrisis   = "crisis"
	ToolSecurity = "security"
	ToolPlanner  = "planner"
	ToolSolver   = "solver"
	ToolTutor    = "tutor"
)

// Decision is the outcome of routing one message.
type Decision struct {
	Priority Priority
	Tool     string
	// Trigger carries the matched subject name for subject_restricted.
	Trigger string
}

var organizationIndicators = []string{
	"multiple assignments", "so much homework", "everything due", "need to organize",
	"overwhelmed with work", "too many projects",
}

var (
	arithmeticRx = regexp.MustCompile(`\d+\s*[+\-*/]\s*\d+`)

	mathScienceKeywords = []string{
		"solve", "calculate", "math problem", "math homework", "equation", "equations",
		"help with math", "do this math", "math question", "physics problem", "chemistry problem",
		"algebra", "geometry", "fraction", "fractions", "multiplication", "division", "addition", "subtraction",
		"trigonometry", "calculus", "physics", "chemistry", "molecular", "periodic table", "chemical reaction",
		"mechanics", "thermodynamics",
	}

	geoHistoryKeywords = []string{
		"geography", "map", "country", "continent", "capital", "physical geography",
		"history", "historical", "world war", "ancient", "timeline", "historical event",
	}
)

// Route classifies one message under strict precedence: crisis beats
// manipulation beats subject restriction beats topical heuristics.
// Evaluation stops at the first match. The topical cues at the bottom
// are best-effort; getting them wrong in the "general" direction is
// acceptable because the model's system prompt re-enforces scope.
func Route(message string) Decision {
	text := normalize.Lower(message)

	if DetectCrisis(text) {
		return Decision{Priority: PriorityCrisis, Tool: ToolCrisis}
	}

	if DetectManipulation(text) {
		return Decision{Priority: PriorityManipulation, Tool: ToolSecurity}
	}

	if restricted, subject := ClassifySubject(text); restricted {
		return Decision{Priority: PrioritySubjectRestricted, Tool: subject, Trigger: subject}
	}

	for _, indicator := range organizationIndicators {
		if strings.Contains(text, indicator) {
			return Decision{Priority: PriorityOrganization, Tool: ToolPlanner}
		}
	}

	if arithmeticRx.MatchString(text) || containsAny(text, mathScienceKeywords) {
		return Decision{Priority: PriorityMath, Tool: ToolSolver}
	}

	// Geography/history cues route as general; the tool hint is all
	// that differs.
	if containsAny(text, geoHistoryKeywords) {
		return Decision{Priority: PriorityGeneral, Tool: ToolTutor}
	}

	return Decision{Priority: PriorityGeneral, Tool: ToolTutor}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
