package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tutorguard/tutorguard/pkg/session"
)

func TestResolveAgeFromGradeMention(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		expectedAge   int
		expectedGrade int
	}{
		{name: "grade N", message: "I'm in grade 5", expectedAge: 10, expectedGrade: 5},
		{name: "Nth grade", message: "i am in 5th grade", expectedAge: 10, expectedGrade: 5},
		{name: "Nth grader", message: "I'm a 7th grader", expectedAge: 12, expectedGrade: 7},
		{name: "grade clamped high", message: "grade 15 stuff", expectedAge: 17, expectedGrade: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := session.NewState()
			age := ResolveAge(state, tt.message)
			assert.Equal(t, tt.expectedAge, age)
			assert.Equal(t, tt.expectedAge, state.StudentAge)
			assert.Equal(t, tt.expectedGrade, state.StudentGrade)
		})
	}
}

func TestResolveAgeFromSelfStatement(t *testing.T) {
	state := session.NewState()
	age := ResolveAge(state, "hi, I'm 14 and need help")

	assert.Equal(t, 14, age)
	assert.Equal(t, 14, state.StudentAge)
	assert.Equal(t, 9, state.StudentGrade)
}

func TestResolveAgeGradeBeatsAge(t *testing.T) {
	// Both signals present: the grade mention is the stronger one.
	state := session.NewState()
	age := ResolveAge(state, "I'm 14 but I'm in 5th grade")

	assert.Equal(t, 10, age)
	assert.Equal(t, 5, state.StudentGrade)
}

func TestResolveAgeIsSticky(t *testing.T) {
	state := session.NewState()
	first := ResolveAge(state, "I'm 10")
	assert.Equal(t, 10, first)

	// A later contradictory statement must not move the persisted age.
	second := ResolveAge(state, "actually I'm 17")
	assert.Equal(t, 10, second)
	assert.Equal(t, 10, state.StudentAge)
}

func TestResolveAgeDefault(t *testing.T) {
	state := session.NewState()
	age := ResolveAge(state, "can you help me with my homework")

	assert.Equal(t, DefaultAge, age)
	assert.Equal(t, DefaultAge, state.StudentAge)
	assert.Equal(t, AgeToGrade(DefaultAge), state.StudentGrade)
}

func TestResolveAgeOutOfRangeSelfStatementIgnored(t *testing.T) {
	state := session.NewState()
	age := ResolveAge(state, "I'm 42 you know")
	assert.Equal(t, DefaultAge, age)
}

func TestGradeAgeDerivation(t *testing.T) {
	assert.Equal(t, 10, GradeToAge(5))
	assert.Equal(t, 6, GradeToAge(-3))
	assert.Equal(t, 18, GradeToAge(30))
	assert.Equal(t, 7, AgeToGrade(12))
	assert.Equal(t, 1, AgeToGrade(3))
	assert.Equal(t, 12, AgeToGrade(40))
}
