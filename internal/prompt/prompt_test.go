package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/lingua-lambda/internal/conversation"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"github.com/stretchr/testify/assert"
)

func TestTutorPrompt(t *testing.T) {
	p := Tutor("  Comment dit-on 'cat' ?  ", "French", level.B2)

	assert.Contains(t, p, "teaching French")
	assert.Contains(t, p, level.Directive(level.B2))
	assert.Contains(t, p, "Respond to: Comment dit-on 'cat' ?\n")
	assert.Contains(t, p, "I'm not sure, let's focus on learning French.")
}

func TestTutorPromptUnknownLevel(t *testing.T) {
	p := Tutor("hola", "Spanish", level.Level("expert"))
	assert.Contains(t, p, level.Directive(level.A2))
}

func turns(contents ...string) []conversation.Turn {
	out := make([]conversation.Turn, 0, len(contents))
	for i, c := range contents {
		role := conversation.RoleUser
		if i%2 == 1 {
			role = conversation.RoleAssistant
		}
		out = append(out, conversation.NewTurn(role, c, "German", time.Now()))
	}
	return out
}

func TestTranscriptKeepsOrder(t *testing.T) {
	assert.Equal(t, "Hallo\nHallo! Wie geht's?\nGut", Transcript(turns("Hallo", "Hallo! Wie geht's?", "Gut")))
}

func TestTestPromptBeginnerUsesEnglish(t *testing.T) {
	p := Test(turns("Hallo", "Hallo!"), "German", level.A1, 3)

	assert.Contains(t, p, "exactly 3 multiple-choice")
	assert.Contains(t, p, "Write every question in English.")
	assert.Contains(t, p, `"questions": [`)
	assert.Contains(t, p, "exactly 4 distinct entries")
	assert.Contains(t, p, "character-for-character identical")
	assert.Contains(t, p, "Context:\nHallo\nHallo!\n")
	assert.True(t, strings.HasSuffix(p, "Level: A1\nLanguage: German"))
}

func TestTestPromptIntermediateUsesTargetLanguage(t *testing.T) {
	p := Test(turns("Hallo"), "German", level.B1, 5)
	assert.Contains(t, p, "Write every question in German.")
	assert.Contains(t, p, "exactly 5 entries")
}

func TestTestPromptDefaultsCount(t *testing.T) {
	p := Test(turns("Hallo"), "German", level.C1, 0)
	assert.Contains(t, p, "exactly 3 multiple-choice")
}
