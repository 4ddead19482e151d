package prompt

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/lingua-lambda/internal/conversation"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
)

// DefaultQuestionCount is used when a caller asks for a non-positive number of questions.
const DefaultQuestionCount = 3

// Redirect is the fixed reply the tutor must give to off-topic queries.
func Redirect(language string) string {
	return fmt.Sprintf("I'm not sure, let's focus on learning %s.", language)
}

func Tutor(message, language string, lvl level.Level) string {
	return fmt.Sprintf(`You are a helpful language tutor teaching %[1]s.
The level of the student is: %[2]s
Respond to: %[3]s
Any queries outside the scope of language learning should be responded to with: %[4]s`,
		language, level.Directive(lvl), strings.TrimSpace(message), Redirect(language))
}

// Transcript joins turn contents in order, one per line.
func Transcript(turns []conversation.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.Content)
	}
	return strings.Join(lines, "\n")
}

func Test(turns []conversation.Turn, language string, lvl level.Level, n int) string {
	if n <= 0 {
		n = DefaultQuestionCount
	}

	questionLanguage := language
	if lvl.BelowIntermediate() {
		questionLanguage = "English"
	}

	return fmt.Sprintf(`Based on this conversation about %[1]s, create exactly %[2]d multiple-choice test questions.
Write every question in %[3]s. %[4]s
Return only JSON, with no text before or after it, in this exact format:
{
  "questions": [
    {
      "question": "question text in %[3]s",
      "options": ["option1", "option2", "option3", "option4"],
      "correct_answer": "exact text of correct option",
      "explanation": "explanation in English",
      "topic": "main topic covered"
    }
  ]
}
Rules:
- "questions" must contain exactly %[2]d entries.
- "options" must contain exactly 4 distinct entries.
- "correct_answer" must be character-for-character identical to one of the entries in "options".

Context:
%[5]s

Level: %[6]s
Language: %[1]s`,
		language, n, questionLanguage, level.Directive(lvl), Transcript(turns), level.Normalize(lvl))
}
