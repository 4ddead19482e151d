package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewStubClient returns a deterministic client for local development without an API key.
// Test prompts get a fixed three-question answer; anything else is echoed back.
func NewStubClient() Client {
	return &retryingClient{
		name:     "stub",
		generate: stubGenerate,
		classify: func(error) FailureReason { return ReasonUpstream },
	}
}

func stubGenerate(ctx context.Context, _ string, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(prompt, `"questions"`) {
		return stubTestResponse, nil
	}
	last := prompt
	if i := strings.LastIndex(prompt, "Respond to:"); i >= 0 {
		last = strings.TrimSpace(prompt[i+len("Respond to:"):])
		if j := strings.Index(last, "\n"); j >= 0 {
			last = last[:j]
		}
	}
	return fmt.Sprintf("You said: %s", strings.TrimSpace(last)), nil
}

const stubTestResponse = `{"questions": [
  {"question": "What does the greeting at the start of the conversation mean?",
   "options": ["Hello", "Goodbye", "Thank you", "Sorry"],
   "correct_answer": "Hello", "explanation": "It is the standard greeting.", "topic": "greetings"},
  {"question": "Which word is polite when asking for something?",
   "options": ["Please", "Never", "Quickly", "Tomorrow"],
   "correct_answer": "Please", "explanation": "Please marks a polite request.", "topic": "politeness"},
  {"question": "Which reply accepts an offer?",
   "options": ["Yes, thank you", "No idea", "Good night", "See you"],
   "correct_answer": "Yes, thank you", "explanation": "It accepts and thanks.", "topic": "responses"}
]}`
