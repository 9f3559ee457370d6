package classification

import (
	"regexp"

	"github.com/tutorguard/tutorguard/pkg/normalize"
)

// Forbidden instructional patterns checked on both sides of the model
// call: explicit self-harm method language, secrecy-from-parents
// language, and substance-ingestion instructions. Patterns run against
// normalized lowercase text.
var forbiddenResponseRxs = []*regexp.Regexp{
	regexp.MustCompile(`\bhow to hurt yourself\b`),
	regexp.MustCompile(`\bhow to kill yourself\b`),
	regexp.MustCompile(`\btake these pills\b`),
	regexp.MustCompile(`\bcut yourself here\b`),
	regexp.MustCompile(`\bhide it from your parents\b`),
	regexp.MustCompile(`\bdon't tell anyone\b`),
	regexp.MustCompile(`\bways to die\b`),
	regexp.MustCompile(`\bmethods of suicide\b`),
	regexp.MustCompile(`\bhide from parents\b`),
	regexp.MustCompile(`\buse a blade\b`),
	regexp.MustCompile(`\bmix(?:ed)?\s+(?:pills|drugs|chemicals)\b`),
	regexp.MustCompile(`\bsearch for methods\b`),
	regexp.MustCompile(`\bingest\s+(?:pills|chemicals|substances)\b`),
	regexp.MustCompile(`\btake\s+\d+\s+(?:pills|tablets)\b`),
}

// Jailbreak and persona-override phrasing, checked on input only. The
// model never sees these; the system prompt's refusal instruction is a
// second layer, not the first.
var forbiddenInputRxs = append(append([]*regexp.Regexp{}, forbiddenResponseRxs...), []*regexp.Regexp{
	regexp.MustCompile(`\bjailbreak\b.*\b(?:ignore|bypass|override)\b`),
	regexp.MustCompile(`\bpretend you are\b.*\b(?:not safe|harmful|dangerous)\b`),
	regexp.MustCompile(`\bact like\b.*\b(?:evil|harmful|bad)\b`),
}...)

// ValidateInput scans the user's message before any model call. It
// returns ok=false and the offending pattern when the message must be
// answered with a scripted deflection instead of reaching the model.
func ValidateInput(message string) (bool, string) {
	return scan(normalize.Lower(message), forbiddenInputRxs)
}

// ValidateOutput scans the model's reply. A failing reply is discarded
// by the caller and never shown to the user.
func ValidateOutput(response string) (bool, string) {
	return scan(normalize.Lower(response), forbiddenResponseRxs)
}

func scan(text string, patterns []*regexp.Regexp) (bool, string) {
	for _, rx := range patterns {
		if rx.MatchString(text) {
			return false, rx.String()
		}
	}
	return true, ""
}
