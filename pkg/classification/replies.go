package classification

import (
	"fmt"
	"strings"
)

// youngerAgeCutoff splits the scripted reply wording into the two age
// bands the templates support.
const youngerAgeCutoff = 11

// allowedSubjectList renders the allow-list for scripted replies.
func allowedSubjectList() string {
	return strings.Join(AllowedSubjects, ", ")
}

func namePrefix(name string) string {
	if name == "" {
		return ""
	}
	return name + ", "
}

// CrisisReply builds the age-adaptive crisis intervention. The reply is
// a supportive human-escalation message: no clinical language, no
// hotline numbers.
func CrisisReply(age int, name string) string {
	_ = age // same wording for both bands today; the signature keeps the contract
	return fmt.Sprintf(
		"💙 %sI'm really glad you told me. You matter. "+
			"Could you tell a trusted adult (parent/guardian, teacher, or school counselor) how you feel? "+
			"They can help you right now. "+
			"I'm here to listen — what's been the hardest part today?",
		namePrefix(name))
}

// ManipulationReply builds the scripted security response.
func ManipulationReply(age int, name string) string {
	if age <= youngerAgeCutoff {
		return fmt.Sprintf(
			"🛡️ %sI can't help with that request. If a grown-up asked you, please check with your parents or teacher directly. "+
				"Let's focus on safe learning instead! What math or science topic should we try?",
			namePrefix(name))
	}
	return fmt.Sprintf(
		"🛡️ %sI can't provide information on that topic regardless of framing. "+
			"For legitimate assignments, ask your teacher and use school-approved resources. "+
			"I can help with %s — what should we tackle?",
		namePrefix(name), allowedSubjectList())
}

// SubjectRestrictedReply builds the scripted out-of-scope response for
// the given subject label. Biology/health gets the more careful
// age-gated wording.
func SubjectRestrictedReply(subject string, age int, name string) string {
	lower := strings.ToLower(subject)

	if lower == SubjectBiology || lower == "health" {
		if age <= youngerAgeCutoff {
			return fmt.Sprintf(
				"🌿 %sThat's a thoughtful question! During beta I focus on %s. "+
					"Biology/health topics are best discussed with your parents, teacher, or school nurse. "+
					"Want to pick a math/science topic together?",
				namePrefix(name), allowedSubjectList())
		}
		return fmt.Sprintf(
			"🌿 %sImportant topic! During beta I specialize in %s. "+
				"For biology/health, please check with your parents/guardians or a health teacher. "+
				"Shall we dive into one of my beta subjects?",
			namePrefix(name), allowedSubjectList())
	}

	friendly := friendlySubjectName(subject)
	if age <= youngerAgeCutoff {
		return fmt.Sprintf(
			"📚 %sI can't help with **%s** during beta. I *can* help with %s. Which one should we pick?",
			namePrefix(name), friendly, allowedSubjectList())
	}
	return fmt.Sprintf(
		"📚 %sThanks for asking about **%s**. During beta I'm focusing on specific subjects. "+
			"I can help with %s — want to choose one?",
		namePrefix(name), friendly, allowedSubjectList())
}

// InputRejectedReply answers a message that failed input validation.
func InputRejectedReply() string {
	return fmt.Sprintf(
		"💙 I care about your safety and wellbeing, and I can't help with that request.\n\n"+
			"Please talk to a trusted adult (parent/guardian, teacher, or school counselor). "+
			"How can I help with %s today?", allowedSubjectList())
}

// OutputRejectedReply replaces a model reply that failed output
// validation. The model's own text is never shown in that case.
func OutputRejectedReply() string {
	return fmt.Sprintf(
		"💙 I understand you might be going through something difficult.\n\n"+
			"Please talk to a trusted adult (parent/guardian, teacher, or school counselor). "+
			"How can I help you with %s today?", allowedSubjectList())
}

func friendlySubjectName(subject string) string {
	switch strings.ToLower(subject) {
	case "pe", "p.e.", "physical education", "gym":
		return "PE"
	case "":
		return "that subject"
	}
	// Title-case each word without pulling in x/text/cases for one label.
	words := strings.Fields(subject)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
