package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "solve 2x+3=7",
			expected: "solve 2x+3=7",
		},
		{
			name:     "trims and collapses whitespace",
			input:    "  hello   \t world \n",
			expected: "hello world",
		},
		{
			name:     "removes zero-width characters",
			input:    "se​x‍ ed",
			expected: "sex ed",
		},
		{
			name:     "unifies curly punctuation",
			input:    "“don’t” — ok…",
			expected: `"don't" - ok...`,
		},
		{
			name:     "strips accents",
			input:    "séx éducation",
			expected: "sex education",
		},
		{
			name:     "folds fullwidth compatibility forms",
			input:    "ｓｅｘ",
			expected: "sex",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "      ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.input))
		})
	}
}

func TestMessageIsIdempotent(t *testing.T) {
	input := "  “déja” – vu​  "
	once := Message(input)
	assert.Equal(t, once, Message(once))
}

func TestLower(t *testing.T) {
	assert.Equal(t, "my teacher said", Lower("  My TEACHER said "))
}
