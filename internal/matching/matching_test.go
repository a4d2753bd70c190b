package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

func queryMap(t *testing.T, pairs ...[2]string) *content.OrderedMap {
	t.Helper()
	m := content.NewOrderedMap()
	for _, p := range pairs {
		m.Add(p[0], p[1])
	}
	return m
}

func TestMatchRequestExact(t *testing.T) {
	expected := ExpectedRequest{Request: content.Request{
		Method: "GET",
		Path:   "/mallory",
		Query:  queryMap(t, [2]string{"name", "ron"}, [2]string{"status", "good"}),
	}}
	actual := ExpectedRequest{Request: content.Request{
		Method: "GET",
		Path:   "/mallory",
		Query:  queryMap(t, [2]string{"name", "ron"}, [2]string{"status", "good"}),
	}}
	result := MatchRequest(expected, actual)
	assert.True(t, result.AllMatched())
	assert.Empty(t, result.Mismatches())
}

func TestMatchBodyMinMaxType(t *testing.T) {
	m := rules.NewMap()
	m.Category(rules.CategoryBody).Set("$.related", rules.NewRuleList(rules.MinMaxType{Min: 1, Max: 10}))

	jsonCT := content.ParseContentType("application/json")
	expBody := content.NewPresentBody([]byte(`{"related":[1,2,3]}`), &jsonCT)

	okActual := content.NewPresentBody([]byte(`{"related":[1,2,3,4,5,6,7,8,9,10]}`), &jsonCT)
	result := MatchBody(m, expBody, okActual)
	assert.Nil(t, result.TypeMismatch)
	assert.Empty(t, result.Mismatches)

	badActual := content.NewPresentBody([]byte(`{"related":[]}`), &jsonCT)
	result = MatchBody(m, expBody, badActual)
	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, "$.related", result.Mismatches[0].Path)
	assert.Contains(t, result.Mismatches[0].Message, "length 0 below minimum 1")
}

func TestMatchHeaderRegexOr(t *testing.T) {
	cat := rules.NewCategory(rules.CategoryHeader)
	require.NoError(t, cat.Set("$.HEADERY", rules.RuleList{
		Rules: []rules.Rule{rules.Include{Substr: "ValueA"}, rules.Include{Substr: "ValueB"}},
		Logic: rules.OR,
	}))

	expected := content.NewOrderedMap()
	expected.Add("HEADERY", "ignored")
	actual := content.NewOrderedMap()
	actual.Add("HEADERY", "prefix-ValueB-suffix")

	ms := MatchHeaders(cat, expected, actual, false)
	assert.Empty(t, ms)
}

func TestMatchXMLRootMismatch(t *testing.T) {
	ms := MatchXMLBody(nil, []byte(`<foo/>`), []byte(`<bar/>`))
	require.Len(t, ms, 1)
	assert.Equal(t, "$.foo", ms[0].Path)
	assert.Equal(t, "Expected 'foo' to be equal to 'bar'", ms[0].Message)
}

func TestMatchQueryOutOfOrder(t *testing.T) {
	expected := queryMap(t, [2]string{"q", "p"}, [2]string{"q", "p2"})
	actual := queryMap(t, [2]string{"q", "p2"}, [2]string{"q", "p"})

	out := MatchQuery(nil, expected, actual)
	require.Contains(t, out, "q")
	require.Len(t, out["q"], 2)
	assert.Equal(t, "$.q.0", out["q"][0].Path)
	assert.Equal(t, "$.q.1", out["q"][1].Path)
}

func TestMatchMethodCaseInsensitive(t *testing.T) {
	assert.Nil(t, MatchMethod("get", "GET"))
}

func TestHeaderWhitespaceNormalisation(t *testing.T) {
	assert.Equal(t, normalizeHeaderValue("a, b"), normalizeHeaderValue("a,  b"))
}
