package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireV3RoundTrip(t *testing.T) {
	m := NewMap()
	body := m.Category(CategoryBody)
	require.NoError(t, body.Set("$.related", NewRuleList(MinMaxType{Min: 1, Max: 10})))

	header := m.Category(CategoryHeader)
	require.NoError(t, header.Set("$.HEADERY", RuleList{
		Rules: []Rule{Include{Substr: "ValueA"}, Include{Substr: "ValueB"}},
		Logic: OR,
	}))

	wire := ToWireV3(m)
	back, err := FromWireV3(wire)
	require.NoError(t, err)

	rl, ok := back.Category(CategoryBody).BestMatch([]string{"related"})
	require.True(t, ok)
	require.Len(t, rl.Rules, 1)
	assert.Equal(t, MinMaxType{Min: 1, Max: 10}, rl.Rules[0])

	hrl, ok := back.Category(CategoryHeader).UnionMatch([]string{"HEADERY"})
	require.True(t, ok)
	assert.Equal(t, OR, hrl.Logic)
	assert.Len(t, hrl.Rules, 2)
}

func TestToWireV2DropsArrayContains(t *testing.T) {
	m := NewMap()
	body := m.Category(CategoryBody)
	require.NoError(t, body.Set("$.a", NewRuleList(Regex{Pattern: "x"})))
	require.NoError(t, body.Set("$.arr", NewRuleList(ArrayContains{})))

	wire := ToWireV2(m)
	_, hasA := wire["body.a"]
	_, hasArr := wire["body.arr"]
	assert.True(t, hasA)
	assert.False(t, hasArr)
}
