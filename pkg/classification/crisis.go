package classification

import (
	"regexp"

	"github.com/tutorguard/tutorguard/pkg/observability/logging"
)

// explicitCrisisRx matches unambiguous self-harm and suicide vocabulary.
// A hit here always wins, whatever else the message contains.
var explicitCrisisRx = regexp.MustCompile(`(?i)\b(?:kill myself|hurt myself|end my life|commit suicide|suicide|cut myself|i want to die|i want to kill myself|i will kill myself|i want to end my life)\b`)

// euphemismRule pairs a trigger pattern with an optional benign-context
// pattern. RE2 has no negative lookahead, so classroom idioms like
// "disappear from math class" are excluded by a second regex checked at
// each trigger position instead. The trigger's first capture group marks
// the euphemism word; benign must match exactly there to suppress that
// occurrence, so a separate bare trigger elsewhere in the message still
// fires.
type euphemismRule struct {
	name    string
	trigger *regexp.Regexp
	benign  *regexp.Regexp
}

const schoolContexts = `class|classroom|school|lesson|math|science|biology|chemistry|physics|english|history|geography|art|music|pe|gym`

var euphemismRules = []euphemismRule{
	{
		name:    "disappear",
		trigger: regexp.MustCompile(`(?i)\b(?:want\s+to\s+|wanna\s+|wish\s+i\s+could\s+)?((?:disappear|dissapear|disapear))\b`),
		benign:  regexp.MustCompile(`(?i)\b(?:disappear|dissapear|disapear)\s+(?:from\s+(?:` + schoolContexts + `)|into\s+the\s+crowd)\b`),
	},
	{
		name:    "vanish",
		trigger: regexp.MustCompile(`(?i)\b(?:want\s+to\s+|wanna\s+|wish\s+i\s+could\s+)?(vanish)\b`),
		benign:  regexp.MustCompile(`(?i)\bvanish\s+(?:from\s+(?:` + schoolContexts + `)|point)\b`),
	},
	{
		name:    "not-exist",
		trigger: regexp.MustCompile(`(?i)\b(i\s+don'?t\s+want\s+to\s+exist)\b`),
	},
	{
		name:    "end-it-all",
		trigger: regexp.MustCompile(`(?i)\b(end\s+it\s+all|end\s+everything)\b`),
	},
}

// DetectCrisis reports whether normalized lowercase text contains
// self-harm or suicidal-ideation language, explicit or euphemistic.
// False positives are acceptable; false negatives are not.
func DetectCrisis(text string) bool {
	if explicitCrisisRx.MatchString(text) {
		logging.Warnf("Crisis guard: explicit pattern matched")
		return true
	}
	for _, rule := range euphemismRules {
		for _, idx := range rule.trigger.FindAllStringSubmatchIndex(text, -1) {
			if rule.benign != nil {
				// idx[2] is where the euphemism word starts.
				if loc := rule.benign.FindStringIndex(text[idx[2]:]); loc != nil && loc[0] == 0 {
					continue
				}
			}
			logging.Warnf("Crisis guard: euphemism rule %q matched", rule.name)
			return true
		}
	}
	return false
}
