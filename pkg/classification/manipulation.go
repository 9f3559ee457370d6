package classification

import (
	"regexp"
	"strings"

	"github.com/tutorguard/tutorguard/pkg/observability/logging"
)

// Social framings used to launder harmful requests through a claimed
// authority or assignment. A framing alone is harmless; it only counts
// when paired with harmful content or a red-flag keyword.
var manipulationFramings = []string{
	"my teacher said", "my mom said", "my dad said", "my parents said",
	"for a school project", "for homework", "for my assignment", "for my class",
	"my friend asked me", "someone asked me", "i heard that", "is it true that",
	"my teacher wants to know", "for educational purposes", "for learning",
	"helping my little brother", "helping my sister", "babysitting question",
}

// Explicitly harmful request patterns, word-bounded.
var harmfulContentRxs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:porn|pornography|sex videos|sexual content|nude|naked)\b`),
	regexp.MustCompile(`(?i)\b(?:how to make drugs|drug recipes|meth|cocaine|heroin|fentanyl)\b`),
	regexp.MustCompile(`(?i)\b(?:how to hurt|how to kill|making weapons|bomb making|violence against)\b`),
	regexp.MustCompile(`(?i)\b(?:how to steal|shoplifting|breaking into|illegal downloads|piracy)\b`),
	regexp.MustCompile(`(?i)\b(?:dangerous challenges|self harm methods|suicide methods|risky behaviors)\b`),
}

// Broader red flags: grooming language, secrecy requests, and
// romantic/substance-adjacent terms. Too broad on their own ("dangerous"
// is a legitimate science word), hence the framing requirement.
var redFlagKeywords = []string{
	"inappropriate touching", "touch me", "private parts", "genitals", "naked", "undressed", "shower", "bathroom",
	"send pics", "send nudes", "nudes", "sext", "sexting", "naked photos", "webcam", "video chat", "private video", "show me your",
	"groom", "grooming", "keep it secret", "don't tell your parents", "don't tell anyone", "this is between us", "our secret",
	"special friendship", "mature for your age",
	"drugs", "alcohol", "smoking", "vaping", "pills", "medication",
	"knife", "weapon", "hurt", "violence", "dangerous",
	"boyfriend", "girlfriend", "dating", "romantic", "love", "kissing", "sexual", "sexy", "attraction", "crush",
}

// DetectManipulation reports whether normalized lowercase text pairs a
// social-engineering framing with harmful or red-flag content.
func DetectManipulation(text string) bool {
	framed := false
	for _, framing := range manipulationFramings {
		if strings.Contains(text, framing) {
			framed = true
			break
		}
	}
	if !framed {
		return false
	}

	for _, rx := range harmfulContentRxs {
		if rx.MatchString(text) {
			logging.Warnf("Manipulation detector: framing paired with harmful content pattern")
			return true
		}
	}
	for _, flag := range redFlagKeywords {
		if strings.Contains(text, flag) {
			logging.Warnf("Manipulation detector: framing paired with red-flag keyword %q", flag)
			return true
		}
	}
	return false
}
