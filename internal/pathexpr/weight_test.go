package pathexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightRequiredScores(t *testing.T) {
	path := []Fragment{"a", "b"}

	ab := MustParse("$.a.b")
	assert.Equal(t, 16, Score(ab, path))

	starB := MustParse("$.*.b")
	assert.Equal(t, 8, Score(starB, path))

	aStar := MustParse("$.a.*")
	assert.Equal(t, 8, Score(aStar, path))

	nonMatching := MustParse("$.x.y")
	assert.Equal(t, 0, Score(nonMatching, path))
}

func TestWeightWorkedExample(t *testing.T) {
	// Extends the worked example from the original matching engine's
	// documentation (body { item1: { level: [ {id:100}, {id:101}, {id:102},
	// {id:103} ] } }, item under consideration at level[1]) with this
	// spec's score = weight × token_count multiplier.
	path := []Fragment{"item1", "level", "1", "id"}

	cases := []struct {
		expr string
		want int
	}{
		{"$.item1", 4},
		{"$.item2", 0},
		{"$.item1.level", 16},
		{"$.item1.level[1]", 48},
		{"$.item1.level[1].id", 128},
		{"$.item1.level[1].name", 0},
		{"$.item1.level[2]", 0},
		{"$.item1.level[2].id", 0},
		{"$.item1.level[*].id", 64},
		{"$.*.level[*].id", 32},
	}
	for _, c := range cases {
		e, err := Parse(c.expr)
		require.NoError(t, err)
		assert.Equal(t, c.want, Score(e, path), c.expr)
	}
}

func TestWeightExpressionLongerThanPathDoesNotApply(t *testing.T) {
	e := MustParse("$.a.b.c")
	_, ok := Weight(e, []Fragment{"a"})
	assert.False(t, ok)
}

func TestParseRejectsMissingRoot(t *testing.T) {
	_, err := Parse("a.b")
	assert.Error(t, err)
}

func TestParseRoundTrip(t *testing.T) {
	e := MustParse("$.foo[3][*].bar")
	assert.Equal(t, "$.foo[3][*].bar", e.String())
}
