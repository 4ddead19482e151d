package level

import "strings"

// Level is a CEFR proficiency band.
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

// Default is used whenever a label is missing or unrecognised.
const Default = A2

var All = []Level{A1, A2, B1, B2, C1, C2}

var directives = map[Level]string{
	A1: "Use basic vocabulary and simple present tense. Keep sentences short.",
	A2: "Use elementary vocabulary and simple past tense. Include basic questions.",
	B1: "Use intermediate vocabulary. Mix different tenses.",
	B2: "Use advanced vocabulary and complex sentence structures.",
	C1: "Use sophisticated vocabulary and idioms.",
	C2: "Use native-level language with cultural references.",
}

func (l Level) IsValid() bool {
	_, ok := directives[l]
	return ok
}

// Rank is the 1-based position of l in All, or 0 when l is not a recognised band.
func (l Level) Rank() int {
	for i, v := range All {
		if v == l {
			return i + 1
		}
	}
	return 0
}

// BelowIntermediate reports whether learners at l should get English instructions.
func (l Level) BelowIntermediate() bool {
	return Normalize(l).Rank() < B1.Rank()
}

func (l Level) String() string {
	return string(l)
}

// Directive never fails: unknown levels get the A2 directive.
func Directive(l Level) string {
	if d, ok := directives[l]; ok {
		return d
	}
	return directives[Default]
}

// Parse accepts labels case-insensitively and reports whether the label was recognised.
func Parse(raw string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(raw)))
	if l.IsValid() {
		return l, true
	}
	return Default, false
}

func Normalize(l Level) Level {
	n, _ := Parse(string(l))
	return n
}
