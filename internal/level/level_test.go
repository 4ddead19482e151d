package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectiveDistinctPerBand(t *testing.T) {
	seen := map[string]Level{}
	for _, l := range All {
		d := Directive(l)
		assert.NotEmpty(t, d, "band %s", l)
		if prev, dup := seen[d]; dup {
			t.Fatalf("bands %s and %s share a directive", prev, l)
		}
		seen[d] = l
	}
	assert.Len(t, seen, 6)
}

func TestDirectiveFallsBackToElementary(t *testing.T) {
	for _, raw := range []string{"", "Z9", "beginner", "a2 ", "native"} {
		assert.Equal(t, Directive(A2), Directive(Level(raw)), "label %q", raw)
	}
}

func TestParse(t *testing.T) {
	l, ok := Parse(" b2 ")
	assert.True(t, ok)
	assert.Equal(t, B2, l)

	l, ok = Parse("expert")
	assert.False(t, ok)
	assert.Equal(t, A2, l)
}

func TestBelowIntermediate(t *testing.T) {
	assert.True(t, A1.BelowIntermediate())
	assert.True(t, A2.BelowIntermediate())
	assert.False(t, B1.BelowIntermediate())
	assert.False(t, C2.BelowIntermediate())
	assert.True(t, Level("unknown").BelowIntermediate())
}

func TestRank(t *testing.T) {
	assert.Equal(t, 1, A1.Rank())
	assert.Equal(t, 6, C2.Rank())
	assert.Equal(t, 0, Level("X").Rank())
}
