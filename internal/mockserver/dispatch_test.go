package mockserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

func TestActualRequestFromPreservesQueryOrdering(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mallory?b=2&a=1&b=3", nil)
	actual, err := actualRequestFrom(req)
	require.NoError(t, err)

	vals, ok := actual.Query.Get("b")
	require.True(t, ok)
	assert.Equal(t, content.Values{"2", "3"}, vals)
	assert.Equal(t, []string{"b", "a"}, actual.Query.Names())
}

func TestSelectInteractionPicksHighestScoringSurvivor(t *testing.T) {
	jsonCT := content.ParseContentType("application/json")
	exact := &pactio.Interaction{
		Description: "exact match",
		Request: matching.ExpectedRequest{Request: content.Request{
			Method: "POST",
			Path:   "/widgets",
			Body:   content.NewPresentBody([]byte(`{"id":1}`), &jsonCT),
		}},
	}
	partial := &pactio.Interaction{
		Description: "wrong body",
		Request: matching.ExpectedRequest{Request: content.Request{
			Method: "POST",
			Path:   "/widgets",
			Body:   content.NewPresentBody([]byte(`{"id":2}`), &jsonCT),
		}},
	}
	mismatchedPath := &pactio.Interaction{
		Description: "different path",
		Request: matching.ExpectedRequest{Request: content.Request{
			Method: "POST",
			Path:   "/gadgets",
		}},
	}
	pact := &pactio.Pact{Interactions: []*pactio.Interaction{mismatchedPath, partial, exact}}

	actual := matching.ExpectedRequest{Request: content.Request{
		Method: "POST",
		Path:   "/widgets",
		Body:   content.NewPresentBody([]byte(`{"id":1}`), &jsonCT),
	}}

	sel := selectInteraction(pact, actual)
	require.True(t, sel.found)
	assert.Equal(t, "exact match", sel.interaction.Description)
	assert.Equal(t, OutcomeMatched, outcomeFor(sel))
}

func TestSelectInteractionNoSurvivorIsUnexpected(t *testing.T) {
	pact := &pactio.Pact{Interactions: []*pactio.Interaction{
		{Description: "only", Request: matching.ExpectedRequest{Request: content.Request{Method: "GET", Path: "/a"}}},
	}}
	actual := matching.ExpectedRequest{Request: content.Request{Method: "GET", Path: "/b"}}

	sel := selectInteraction(pact, actual)
	assert.False(t, sel.found)
	assert.Equal(t, OutcomeUnexpected, outcomeFor(sel))
}
