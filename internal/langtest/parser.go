package langtest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/lingua-lambda/internal/level"
)

var ErrTestGenerationParse = errors.New("failed to generate structured test response")

// ParseError reports why a model response could not become a test.
// Location is a path into the response such as "questions[2].options".
type ParseError struct {
	Location string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("parse test response: %v", e.Err)
	}
	return fmt.Sprintf("parse test response at %s: %v", e.Location, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrTestGenerationParse
}

func (e *ParseError) HTTPStatus() int {
	return 502
}

// Draft is a validated question set that has not been attached to a test yet.
type Draft struct {
	Questions []Question
	Warnings  []string
}

type rawResponse struct {
	Questions *[]rawQuestion `json:"questions"`
}

type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

const expectedOptions = 4

// ParseTestResponse turns raw model output into questions tagged with difficulty.
// Any schema violation fails the whole parse.
func ParseTestResponse(raw string, difficulty level.Level) (*Draft, error) {
	clean := stripCodeFence(raw)
	if clean == "" {
		return nil, &ParseError{Err: errors.New("empty response")}
	}

	var resp rawResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, &ParseError{Err: err}
	}
	if resp.Questions == nil {
		return nil, &ParseError{Location: "questions", Err: errors.New("missing")}
	}
	if len(*resp.Questions) == 0 {
		return nil, &ParseError{Location: "questions", Err: errors.New("empty")}
	}

	draft := &Draft{Questions: make([]Question, 0, len(*resp.Questions))}
	for i, rq := range *resp.Questions {
		loc := fmt.Sprintf("questions[%d]", i)
		if err := rq.validate(); err != nil {
			err.Location = loc + err.Location
			return nil, err
		}

		if len(rq.Options) != expectedOptions {
			draft.Warnings = append(draft.Warnings,
				fmt.Sprintf("%s.options has %d entries, expected %d", loc, len(rq.Options), expectedOptions))
		}
		if hasDuplicates(rq.Options) {
			draft.Warnings = append(draft.Warnings, loc+".options contains duplicates")
		}

		draft.Questions = append(draft.Questions, Question{
			OrderIndex:    i,
			Text:          rq.Question,
			Options:       append([]string(nil), rq.Options...),
			CorrectAnswer: rq.CorrectAnswer,
			Explanation:   rq.Explanation,
			Topic:         rq.Topic,
			Difficulty:    difficulty,
		})
	}

	return draft, nil
}

func (q rawQuestion) validate() *ParseError {
	required := []struct {
		field string
		value string
	}{
		{"question", q.Question},
		{"correct_answer", q.CorrectAnswer},
		{"explanation", q.Explanation},
		{"topic", q.Topic},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ParseError{Location: "." + r.field, Err: errors.New("missing or empty")}
		}
	}

	if len(q.Options) == 0 {
		return &ParseError{Location: ".options", Err: errors.New("missing or empty")}
	}
	if len(q.Options) < 2 {
		return &ParseError{Location: ".options", Err: fmt.Errorf("need at least 2 options, got %d", len(q.Options))}
	}
	for j, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return &ParseError{Location: fmt.Sprintf(".options[%d]", j), Err: errors.New("empty option")}
		}
	}

	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return &ParseError{
		Location: ".correct_answer",
		Err:      fmt.Errorf("%q is not one of the options", q.CorrectAnswer),
	}
}

func stripCodeFence(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimPrefix(clean, "```JSON")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	}
	return strings.TrimSpace(clean)
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
