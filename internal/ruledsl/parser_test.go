package ruledsl

import (
	"testing"

	"github.com/pact-foundation/pact-core-go/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatchingRegex(t *testing.T) {
	def, err := Parse(`matching(regex,'\d+','123')`)
	require.NoError(t, err)
	require.Len(t, def.Rules.Rules, 1)
	assert.Equal(t, rules.Regex{Pattern: `\d+`}, def.Rules.Rules[0])
	assert.Equal(t, "123", def.Example)
}

func TestParseNotEmpty(t *testing.T) {
	def, err := Parse(`notEmpty('x')`)
	require.NoError(t, err)
	assert.Equal(t, rules.NotEmpty{}, def.Rules.Rules[0])
	assert.Equal(t, "x", def.Example)
}

func TestParseEachKey(t *testing.T) {
	def, err := Parse(`eachKey(matching(type,'x'))`)
	require.NoError(t, err)
	require.Len(t, def.Rules.Rules, 1)
	ek, ok := def.Rules.Rules[0].(rules.EachKey)
	require.True(t, ok)
	assert.Equal(t, rules.TypeMatch{}, ek.Definition.Rules.Rules[0])
}

func TestParseMergeComposesAndWidens(t *testing.T) {
	def, err := Parse(`matching(type,'x'),matching(regex,'[a-z]+','x')`)
	require.NoError(t, err)
	assert.Len(t, def.Rules.Rules, 2)
	assert.Equal(t, rules.ValueString, def.ValueType)
}

func TestParseMergeConflictingExampleKeepsFirst(t *testing.T) {
	def, err := Parse(`matching(equalTo,'a'),matching(equalTo,'b')`)
	require.NoError(t, err)
	assert.Equal(t, "a", def.Example)
	assert.True(t, def.Conflict)
}

func TestParseErrorHasSpanAndSuggestion(t *testing.T) {
	_, err := Parse(`matching(regex,\d+,'123')`)
	require.Error(t, err)
	diag, ok := err.(Diagnostic)
	require.True(t, ok)
	assert.NotEmpty(t, diag.Suggestion)
	assert.Equal(t, 15, diag.Start)
	assert.Equal(t, 16, diag.End)
}

func TestParseUnknownFunction(t *testing.T) {
	_, err := Parse(`bogus('x')`)
	require.Error(t, err)
}

func TestParseReference(t *testing.T) {
	def, err := Parse(`matching($'other')`)
	require.NoError(t, err)
	assert.Equal(t, "$other", def.Example)
}
