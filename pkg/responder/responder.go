// Package responder is the single public entry point of the moderation
// pipeline. It wires the age resolver, priority router, validators,
// history manager, and LLM client together, and it is the sole writer
// of session-state counters.
package responder

import (
	"context"
	"errors"
	"time"

	"github.com/tutorguard/tutorguard/pkg/classification"
	"github.com/tutorguard/tutorguard/pkg/config"
	"github.com/tutorguard/tutorguard/pkg/history"
	"github.com/tutorguard/tutorguard/pkg/llm"
	"github.com/tutorguard/tutorguard/pkg/observability/logging"
	"github.com/tutorguard/tutorguard/pkg/observability/metrics"
	"github.com/tutorguard/tutorguard/pkg/session"
)

// Badge labels shown alongside a reply.
const (
	BadgeCrisis   = "🚨 Crisis Response"
	BadgeSecurity = "🛡️ Security Response"
	BadgeSubject  = "📚 Beta Subject Focus"
	BadgeSafety   = "💙 Safety First"
	BadgeTutor    = "🤖 Tutor"
	BadgeError    = "⚠️ Error"
)

// genericApology is what the user sees when the backend fails. Raw
// error text never reaches the user; it rides in Result.Err for logs.
const genericApology = "⚠️ I'm having trouble answering right now. Please try again in a moment."

// Result is the structured reply for one turn.
type Result struct {
	Content  string
	Priority classification.Priority
	Badge    string

	// Err carries the raw backend error for diagnostics only. It is
	// never rendered to the end user.
	Err error
}

// CompletionClient is the upstream dependency of the responder. The
// production implementation is *llm.Client.
type CompletionClient interface {
	Complete(ctx context.Context, req llm.Request) llm.Result
}

// Responder orchestrates one conversation turn at a time.
type Responder struct {
	client CompletionClient
	cfg    *config.Config
}

// New creates a responder around the given completion client.
func New(client CompletionClient, cfg *config.Config) *Responder {
	return &Responder{client: client, cfg: cfg}
}

// Respond classifies one message and produces the reply for it. The
// crisis, manipulation, and subject-restriction paths return scripted
// replies without ever invoking the completion client. State mutation
// (sticky profile fields, counters, monitoring flag) happens only here.
func (r *Responder) Respond(ctx context.Context, state *session.State, message string) Result {
	start := time.Now()
	defer func() { metrics.RecordRespondDuration(time.Since(start)) }()

	state.EnsureDefaults()
	state.InteractionCount++

	decision := classification.Route(message)
	age := classification.ResolveAge(state, message)
	name := state.StudentName

	metrics.RecordClassification(string(decision.Priority))
	logging.Infof("Routed message: priority=%s tool=%s age=%d", decision.Priority, decision.Tool, age)

	switch decision.Priority {
	case classification.PriorityCrisis:
		state.SafetyInterventions++
		state.PostCrisisMonitoring = true
		metrics.RecordSafetyIntervention("crisis")
		return Result{
			Content:  classification.CrisisReply(age, name),
			Priority: decision.Priority,
			Badge:    BadgeCrisis,
		}

	case classification.PriorityManipulation:
		state.HarmfulRequestCount++
		metrics.RecordSafetyIntervention("manipulation")
		return Result{
			Content:  classification.ManipulationReply(age, name),
			Priority: decision.Priority,
			Badge:    BadgeSecurity,
		}

	case classification.PrioritySubjectRestricted:
		metrics.RecordSafetyIntervention("subject_restricted")
		return Result{
			Content:  classification.SubjectRestrictedReply(decision.Trigger, age, name),
			Priority: decision.Priority,
			Badge:    BadgeSubject,
		}
	}

	// Policy rejection: a failing input never reaches the model.
	if ok, pattern := classification.ValidateInput(message); !ok {
		state.HarmfulRequestCount++
		metrics.RecordValidatorRejection("input")
		logging.Warnf("Input validation rejected message (pattern=%q)", pattern)
		return Result{
			Content:  classification.InputRejectedReply(),
			Priority: decision.Priority,
			Badge:    BadgeSafety,
		}
	}

	conv := history.Trim(history.Build(state), r.cfg.History.TokenBudget)
	result := r.client.Complete(ctx, llm.Request{
		SystemPrompt: llm.BuildSystemPrompt(age, name, state.PostCrisisMonitoring),
		History:      conv,
		Message:      message,
	})

	if result.Err != nil {
		logging.Errorf("Completion failed for session %s: %v", state.ID, result.Err)
		return Result{
			Content:  genericApology,
			Priority: decision.Priority,
			Badge:    BadgeError,
			Err:      result.Err,
		}
	}

	// Output backstop: the model's own text is discarded if it trips
	// the same forbidden-pattern class the input is screened with.
	if ok, pattern := classification.ValidateOutput(result.Content); !ok {
		metrics.RecordValidatorRejection("output")
		logging.Warnf("Output validation rejected model reply (pattern=%q); this is a model compliance gap", pattern)
		return Result{
			Content:  classification.OutputRejectedReply(),
			Priority: decision.Priority,
			Badge:    BadgeSafety,
		}
	}

	return Result{
		Content:  result.Content,
		Priority: decision.Priority,
		Badge:    BadgeTutor,
	}
}

// IsTerminal reports whether a result error is certainly not worth a
// caller-side retry this turn.
func IsTerminal(err error) bool {
	return errors.Is(err, llm.ErrNoAPIKey) || errors.Is(err, llm.ErrEmptyResponse)
}
