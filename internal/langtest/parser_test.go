package langtest

import (
	"errors"
	"strings"
	"testing"

	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
  "questions": [
    {"question": "Que veut dire bonjour ?", "options": ["hello", "goodbye", "thanks", "please"],
     "correct_answer": "hello", "explanation": "Bonjour is a greeting.", "topic": "greetings"},
    {"question": "Choose the past tense of aller", "options": ["allé", "aller", "allons", "allez"],
     "correct_answer": "allé", "explanation": "Participe passé.", "topic": "past tense"},
    {"question": "Merci means?", "options": ["thanks", "sorry", "yes", "no"],
     "correct_answer": "thanks", "explanation": "Merci = thanks.", "topic": "politeness"}
  ]
}`

func TestParseValidResponse(t *testing.T) {
	draft, err := ParseTestResponse(validResponse, level.A2)
	require.NoError(t, err)
	require.Len(t, draft.Questions, 3)
	assert.Empty(t, draft.Warnings)

	for i, q := range draft.Questions {
		assert.Equal(t, i, q.OrderIndex)
		assert.Equal(t, level.A2, q.Difficulty)
		assert.Contains(t, []string(q.Options), q.CorrectAnswer)
	}
	assert.Equal(t, "greetings", draft.Questions[0].Topic)
}

func TestParseStripsCodeFence(t *testing.T) {
	raw := "```json\n" + validResponse + "\n```"
	draft, err := ParseTestResponse(raw, level.B1)
	require.NoError(t, err)
	assert.Len(t, draft.Questions, 3)
}

func TestParseWarnsOnOptionCount(t *testing.T) {
	raw := `{"questions":[{"question":"Q","options":["A","B","A"],"correct_answer":"A","explanation":"E","topic":"T"}]}`
	draft, err := ParseTestResponse(raw, level.A1)
	require.NoError(t, err)
	require.Len(t, draft.Warnings, 2)
	assert.Contains(t, draft.Warnings[0], "3 entries")
	assert.Contains(t, draft.Warnings[1], "duplicates")
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		location string
	}{
		{"empty", "   ", ""},
		{"not json", "Here are your questions!", ""},
		{"missing questions key", `{"question":"Q","options":["A","B","C","D"],"correct_answer":"A"}`, "questions"},
		{"empty questions", `{"questions": []}`, "questions"},
		{"answer not in options",
			`{"questions": [{"question":"Q","options":["A","B","C","D"],"correct_answer":"X","explanation":"E","topic":"T"}]}`,
			"questions[0].correct_answer"},
		{"case differs",
			`{"questions": [{"question":"Q","options":["A","B","C","D"],"correct_answer":"a","explanation":"E","topic":"T"}]}`,
			"questions[0].correct_answer"},
		{"missing explanation",
			`{"questions": [{"question":"Q","options":["A","B","C","D"],"correct_answer":"A","topic":"T"}]}`,
			"questions[0].explanation"},
		{"blank topic",
			`{"questions": [{"question":"Q","options":["A","B","C","D"],"correct_answer":"A","explanation":"E","topic":"  "}]}`,
			"questions[0].topic"},
		{"single option",
			`{"questions": [{"question":"Q","options":["A"],"correct_answer":"A","explanation":"E","topic":"T"}]}`,
			"questions[0].options"},
		{"missing options",
			`{"questions": [{"question":"Q","correct_answer":"A","explanation":"E","topic":"T"}]}`,
			"questions[0].options"},
		{"second entry broken",
			`{"questions": [{"question":"Q","options":["A","B"],"correct_answer":"A","explanation":"E","topic":"T"},
			{"question":"","options":["A","B"],"correct_answer":"A","explanation":"E","topic":"T"}]}`,
			"questions[1].question"},
		{"wrong options type",
			`{"questions": [{"question":"Q","options":"A,B,C,D","correct_answer":"A","explanation":"E","topic":"T"}]}`,
			""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft, err := ParseTestResponse(tc.raw, level.A2)
			require.Error(t, err)
			assert.Nil(t, draft)
			assert.True(t, errors.Is(err, ErrTestGenerationParse))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.location, pe.Location)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseTestResponse(`{"questions": []}`, level.A2)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse test response at questions"))
}
