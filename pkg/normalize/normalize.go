// Package normalize canonicalizes raw chat text before any classifier
// sees it. Obfuscation through Unicode tricks (zero-width characters,
// curly punctuation, accented letters) must not survive this step.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Compatibility-decompose, drop combining marks, then recompose. This
// folds "ｓｅｘ" to "sex" and "séx" to "sex" in one pass.
var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var (
	// Zero-width space/joiners, the word joiner, and the BOM.
	invisibleRx  = regexp.MustCompile(`[\x{200B}-\x{200D}\x{2060}\x{FEFF}]`)
	whitespaceRx = regexp.MustCompile(`\s+`)
)

var punctReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "ʼ", "'", "‛", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	"…", "...",
	" ", " ",
)

// Message canonicalizes raw text: trim, Unicode compatibility
// normalization, invisible-character removal, punctuation unification,
// combining-mark stripping, and whitespace collapse. Each step is
// idempotent; the function never fails and maps empty input to "".
func Message(message string) string {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return ""
	}

	msg = invisibleRx.ReplaceAllString(msg, "")
	msg = punctReplacer.Replace(msg)

	if folded, _, err := transform.String(foldTransformer, msg); err == nil {
		msg = folded
	}

	msg = whitespaceRx.ReplaceAllString(msg, " ")
	return strings.TrimSpace(msg)
}

// Lower returns the canonical lowercase form used by the classifiers.
func Lower(message string) string {
	return strings.ToLower(Message(message))
}
