package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBestMatchTieBreaksToFirstInserted(t *testing.T) {
	c := NewCategory(CategoryBody)
	require.NoError(t, c.Set("$.a.b", NewRuleList(Regex{Pattern: "first"})))
	require.NoError(t, c.Set("$.a.*", NewRuleList(Regex{Pattern: "second"})))

	// $.a.b and $.a.* on path [a,b] both score differently: $.a.b=16, $.a.*=8,
	// so $.a.b wins outright here; construct a genuine tie instead.
	d := NewCategory(CategoryBody)
	require.NoError(t, d.Set("$.a.b", NewRuleList(Regex{Pattern: "one"})))
	require.NoError(t, d.Set("$['a'].b", NewRuleList(Regex{Pattern: "two"})))

	rl, ok := c.BestMatch([]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, Regex{Pattern: "first"}, rl.Rules[0])

	rl, ok = d.BestMatch([]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, Regex{Pattern: "one"}, rl.Rules[0])
}

func TestCategoryUnionMatchCollectsAllApplicable(t *testing.T) {
	c := NewCategory(CategoryHeader)
	require.NoError(t, c.Set("$.HEADERY", RuleList{Rules: []Rule{Include{Substr: "ValueA"}, Include{Substr: "ValueB"}}, Logic: OR}))

	rl, ok := c.UnionMatch([]string{"HEADERY"})
	require.True(t, ok)
	assert.Equal(t, OR, rl.Logic)
	assert.Len(t, rl.Rules, 2)
}

func TestCategoryNoApplicableExpression(t *testing.T) {
	c := NewCategory(CategoryBody)
	require.NoError(t, c.Set("$.a.b", NewRuleList(Equality{})))
	_, ok := c.BestMatch([]string{"x", "y"})
	assert.False(t, ok)
}
