package pactio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

func samplePact() *Pact {
	m := rules.NewMap()
	m.Category(rules.CategoryBody).Set("$.name", rules.NewRuleList(rules.TypeMatch{}))
	return &Pact{
		Consumer:    Party{Name: "web"},
		Provider:    Party{Name: "orders"},
		SpecVersion: V3,
		Interactions: []*Interaction{
			{
				Description: "a request for an order",
				Request: matching.ExpectedRequest{
					Request: content.Request{Method: "GET", Path: "/orders/1"},
				},
				Response: matching.ExpectedResponse{
					Response: content.Response{
						Status: 200,
						Body:   content.NewPresentBody([]byte(`{"name":"ron"}`), ctPtr("application/json")),
					},
					Rules: m,
				},
			},
		},
	}
}

func ctPtr(mime string) *content.ContentType {
	ct := content.ParseContentType(mime)
	return &ct
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	p := samplePact()

	require.NoError(t, Write(dir, p, nil))

	loaded, err := Load(filepath.Join(dir, p.DefaultFilename()))
	require.NoError(t, err)

	assert.Equal(t, "web", loaded.Consumer.Name)
	assert.Equal(t, "orders", loaded.Provider.Name)
	assert.Equal(t, V3, loaded.SpecVersion)
	require.Len(t, loaded.Interactions, 1)
	in := loaded.Interactions[0]
	assert.Equal(t, "a request for an order", in.Description)
	assert.Equal(t, "GET", in.Request.Method)
	assert.Equal(t, "/orders/1", in.Request.Path)
	assert.EqualValues(t, 200, in.Response.Status)
	assert.True(t, in.Response.Body.IsPresent())
	assert.JSONEq(t, `{"name":"ron"}`, string(in.Response.Body.Bytes()))
}

func TestWriteRejectsEmptyPact(t *testing.T) {
	dir := t.TempDir()
	p := &Pact{Consumer: Party{Name: "web"}, Provider: Party{Name: "orders"}, SpecVersion: V3}
	err := Write(dir, p, nil)
	require.Error(t, err)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, WriteNoInteractions, we.Kind)
}

func TestMergeConsumerProviderMismatch(t *testing.T) {
	a := samplePact()
	b := samplePact()
	b.Provider.Name = "other"
	_, err := Merge(a, b)
	require.Error(t, err)
	var me *MergeError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, MergeConsumerProviderMismatch, me.Kind)
}

func TestMergeUpgradesSpecVersion(t *testing.T) {
	existing := samplePact()
	existing.SpecVersion = V1_1

	incoming := samplePact()
	incoming.SpecVersion = V4
	incoming.Interactions = []*Interaction{
		{
			Description: "a new interaction",
			Request: matching.ExpectedRequest{
				Request: content.Request{Method: "DELETE", Path: "/orders/1"},
			},
			Response: matching.ExpectedResponse{
				Response: content.Response{Status: 204},
			},
		},
	}

	merged, err := Merge(existing, incoming)
	require.NoError(t, err)
	assert.Equal(t, V4, merged.SpecVersion)
	require.Len(t, merged.Interactions, 2)

	dir := t.TempDir()
	require.NoError(t, Write(dir, merged, nil))
	reloaded, err := Load(filepath.Join(dir, merged.DefaultFilename()))
	require.NoError(t, err)
	assert.Equal(t, V4, reloaded.SpecVersion)
	assert.Len(t, reloaded.Interactions, 2)
}

func TestMergeConflictingInteractionFails(t *testing.T) {
	existing := samplePact()
	incoming := samplePact()
	incoming.Interactions[0].Response.Status = 404

	_, err := Merge(existing, incoming)
	require.Error(t, err)
	var me *MergeError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, MergeConflict, me.Kind)
	assert.Contains(t, me.Keys, "a request for an order")
}

func TestSpecVersionStringAndParseRoundTrip(t *testing.T) {
	for _, v := range []SpecVersion{V1, V1_1, V2, V3, V4} {
		assert.Equal(t, v, ParseSpecVersion(v.String()))
	}
}
