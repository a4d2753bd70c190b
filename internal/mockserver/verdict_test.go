package mockserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

func TestComputeVerdictMatchedWhenEveryInteractionExercised(t *testing.T) {
	pact := samplePact()
	entry := &Entry{Pact: pact}
	entry.appendEvent(Event{
		Outcome:            OutcomeMatched,
		MatchedInteraction: pact.Interactions[0],
	})

	v := ComputeVerdict(entry)
	assert.True(t, v.Matched)
	assert.Empty(t, v.Rows)
}

func TestComputeVerdictReportsPartialMismatchRows(t *testing.T) {
	pact := samplePact()
	entry := &Entry{Pact: pact}
	result := matching.RequestMatchResult{
		Headers: map[string][]matching.Mismatch{
			"X-Custom": {{Kind: matching.HeaderMismatch, Path: "$.headers.X-Custom", Expected: "a", Actual: "b", Message: "values differ"}},
		},
	}
	entry.appendEvent(Event{
		Outcome:            OutcomePartial,
		MatchedInteraction: pact.Interactions[0],
		Result:             result,
	})

	v := ComputeVerdict(entry)
	assert.False(t, v.Matched)
	if assert.Len(t, v.Rows, 1) {
		assert.Equal(t, string(matching.HeaderMismatch), v.Rows[0].Type)
		assert.Equal(t, "values differ", v.Rows[0].Mismatch)
	}
}

func TestComputeVerdictNilPactOnlyReportsUnexpected(t *testing.T) {
	entry := &Entry{}
	entry.appendEvent(Event{
		Outcome: OutcomeUnexpected,
		Request: matching.ExpectedRequest{Request: content.Request{Method: "GET", Path: "/gone"}},
	})

	v := ComputeVerdict(entry)
	assert.False(t, v.Matched)
	if assert.Len(t, v.Rows, 1) {
		assert.Equal(t, "unexpected-request", v.Rows[0].Type)
	}
}
