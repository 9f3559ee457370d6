package classification

import (
	"regexp"
	"strings"

	"github.com/tutorguard/tutorguard/pkg/observability/logging"
)

// SubjectBiology is the label carried by the biology/health layer. It
// gets the age-gated response template, so it takes labeling precedence
// over the literal subject-name layer.
const SubjectBiology = "biology"

// AllowedSubjects is the fixed tutoring scope enumerated to the model
// and echoed in scripted replies.
var AllowedSubjects = []string{"Math", "Physics", "Chemistry", "Geography", "History"}

// Biology/health vocabulary checked as whole words against the
// letters-and-digits projection of the message.
var biologyHealthKeywords = []string{
	"reproduce", "reproduction", "mating", "breeding", "sex", "sexual",
	"pregnancy", "pregnant", "birth", "babies", "puberty", "menstruation",
	"periods", "hormones", "gestation", "fertilize", "sperm", "egg", "ovulation",
	"anatomy", "physiology", "body parts", "private parts", "genitals",
	"sexual health", "reproductive system", "immune system", "digestive system",
	"nervous system", "circulatory system", "respiratory system",
	"evolution", "genetics", "dna", "genes", "heredity", "cells", "organisms",
	"ecosystems", "food chain", "photosynthesis", "photosynthesize", "mitosis", "meiosis",
	"drugs", "alcohol", "smoking", "vaping", "nutrition", "diet", "mental health",
	"depression", "anxiety", "eating disorders", "body image",
}

// Tokens sensitive enough to match even inside otherwise odd phrasing.
var criticalTokens = map[string]struct{}{
	"sex": {}, "dna": {}, "genes": {}, "genetics": {},
	"sperm": {}, "pregnant": {}, "ovulation": {},
}

// Restricted subjects outside the tutoring allow-list, matched by name.
var restrictedSubjects = []string{
	"english", "literature", "reading comprehension", "poetry", "novels", "shakespeare",
	"writing", "essays", "creative writing", "grammar", "vocabulary",
	"biology", "anatomy", "physiology", "human body", "life science", "genetics",
	"evolution", "ecosystems", "cells", "organisms",
	"social studies", "civics", "government", "politics", "economics", "sociology",
	"psychology", "philosophy", "ethics", "religion", "culture",
	"art", "music", "drama", "theater", "dance", "creative arts", "art history",
	"spanish", "french", "german", "chinese", "japanese", "foreign language",
	"health", "physical education", "fitness", "nutrition", "wellness",
}

var (
	biologyKeywordRx *regexp.Regexp
	nonAlnumRx       = regexp.MustCompile(`[^a-z0-9]+`)

	// Split-letter obfuscation of the two most sensitive tokens, e.g.
	// "d.n.a" or "s e x".
	splitDNARx = regexp.MustCompile(`(?i)\bd\W*n\W*a\b`)
	splitSexRx = regexp.MustCompile(`(?i)\bs\W*e\W*x\b`)
)

func init() {
	quoted := make([]string, len(biologyHealthKeywords))
	for i, kw := range biologyHealthKeywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	biologyKeywordRx = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ClassifySubject reports whether normalized lowercase text falls
// outside the tutoring allow-list, and which subject tripped it. The
// biology/health layer is checked first so its label wins when both
// layers could apply.
func ClassifySubject(text string) (bool, string) {
	squashed := strings.TrimSpace(nonAlnumRx.ReplaceAllString(text, " "))

	if biologyKeywordRx.MatchString(squashed) {
		logging.Debugf("Subject classifier: biology/health keyword matched")
		return true, SubjectBiology
	}
	for _, token := range strings.Fields(squashed) {
		if _, ok := criticalTokens[token]; ok {
			return true, SubjectBiology
		}
	}
	if splitDNARx.MatchString(text) || splitSexRx.MatchString(text) {
		logging.Debugf("Subject classifier: split-letter obfuscation matched")
		return true, SubjectBiology
	}

	for _, subject := range restrictedSubjects {
		if strings.Contains(text, subject) {
			logging.Debugf("Subject classifier: restricted subject %q matched", subject)
			return true, subject
		}
	}
	return false, ""
}
