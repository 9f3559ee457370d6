// Package classification contains the deterministic detectors of the
// moderation pipeline: age resolution, crisis and manipulation
// detection, subject scoping, forbidden-pattern validation, and the
// priority router that orders them. All detectors are pure functions of
// normalized text and persisted session state; none of them perform I/O.
package classification

import (
	"regexp"
	"strconv"

	"github.com/tutorguard/tutorguard/pkg/normalize"
	"github.com/tutorguard/tutorguard/pkg/observability/logging"
	"github.com/tutorguard/tutorguard/pkg/session"
)

// Clamp bounds for the student profile.
const (
	MinAge   = 6
	MaxAge   = 18
	MinGrade = 1
	MaxGrade = 12

	// DefaultAge is assumed when no signal has ever been seen.
	DefaultAge = 12
)

var (
	gradeRx = regexp.MustCompile(`(?i)\b(?:(?:grade\s*(\d{1,2})(?:st|nd|rd|th)?)|(?:(\d{1,2})(?:st|nd|rd|th)?\s*grade)|(\d{1,2})\s*(?:th|st|nd|rd)\s*grader)\b`)
	ageRx   = regexp.MustCompile(`(?i)\b(?:i[' ]?m|i am)\s+(\d{1,2})\b`)

	// RE2 has no lookahead, so "not itself a grade phrase" is a
	// separate check on the text following the number.
	gradeSuffixRx = regexp.MustCompile(`(?i)^\s*(?:st|nd|rd|th)\s*grade`)
)

// GradeToAge derives an approximate age from a grade level.
func GradeToAge(grade int) int {
	return clamp(grade+5, MinAge, MaxAge)
}

// AgeToGrade derives a grade level from an age.
func AgeToGrade(age int) int {
	return clamp(age-5, MinGrade, MaxGrade)
}

// ResolveAge returns the student's approximate age, persisting the first
// strong signal seen. Precedence: an already-persisted age is sticky and
// always wins; a grade mention beats a bare age statement; with no
// signal at all, DefaultAge is persisted. Stickiness is deliberate: a
// later contradictory statement must not move the apparent age, or
// subject restrictions could be talked around.
func ResolveAge(state *session.State, message string) int {
	if state.HasAge() {
		return state.StudentAge
	}

	text := normalize.Lower(message)

	if m := gradeRx.FindStringSubmatch(text); m != nil {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			grade, err := strconv.Atoi(g)
			if err != nil {
				continue
			}
			grade = clamp(grade, MinGrade, MaxGrade)
			state.StudentGrade = grade
			state.StudentAge = GradeToAge(grade)
			logging.Debugf("Resolved age %d from grade mention (grade=%d)", state.StudentAge, grade)
			return state.StudentAge
		}
	}

	if idx := ageRx.FindStringSubmatchIndex(text); idx != nil && !gradeSuffixRx.MatchString(text[idx[3]:]) {
		if age, err := strconv.Atoi(text[idx[2]:idx[3]]); err == nil && age >= MinAge && age <= MaxAge {
			state.StudentAge = age
			if state.StudentGrade == 0 {
				state.StudentGrade = AgeToGrade(age)
			}
			logging.Debugf("Resolved age %d from self-statement", age)
			return age
		}
	}

	state.StudentAge = DefaultAge
	if state.StudentGrade == 0 {
		state.StudentGrade = AgeToGrade(DefaultAge)
	}
	return DefaultAge
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
