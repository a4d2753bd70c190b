package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReplacesFieldByPath(t *testing.T) {
	cat := &Category{Generator: map[string]Generator{
		"$.id": ProviderStateGenerator{Expression: "userId"},
	}}
	ctx := &Context{Params: map[string]interface{}{"userId": "abc-123"}}

	value := map[string]interface{}{"id": "placeholder", "name": "x"}
	out, err := Apply(cat, ProviderState, ctx, value)
	require.NoError(t, err)

	m := out.(map[string]interface{})
	assert.Equal(t, "abc-123", m["id"])
	assert.Equal(t, "x", m["name"])
}

func TestApplyFallsBackWhenParamMissing(t *testing.T) {
	cat := &Category{Generator: map[string]Generator{
		"$.id": ProviderStateGenerator{Expression: "missing"},
	}}
	value := map[string]interface{}{"id": "keep-me"}
	out, err := Apply(cat, ProviderState, &Context{}, value)
	require.NoError(t, err)
	assert.Equal(t, "keep-me", out.(map[string]interface{})["id"])
}

func TestRandomIntInRange(t *testing.T) {
	g := RandomInt{Min: 5, Max: 5}
	v, err := g.Generate(Generate, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestUUIDFormats(t *testing.T) {
	v, err := UUID{}.Generate(Generate, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, v.(string), "-")

	simple, err := UUID{Format: "simple"}.Generate(Generate, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, simple.(string), "-")
}
