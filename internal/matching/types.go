package matching

import (
	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// ExpectedRequest is the consumer's expected request, annotated with the
// matching rules governing how it is compared to an actual request.
type ExpectedRequest struct {
	content.Request
	Rules *rules.Map
}

// ExpectedResponse is the consumer's expected response.
type ExpectedResponse struct {
	content.Response
	Rules *rules.Map
}

// ExpectedMessage is the consumer's expected asynchronous message.
type ExpectedMessage struct {
	content.Message
	Rules *rules.Map
}

func rulesOf(m *rules.Map) *rules.Map {
	if m == nil {
		return rules.NewMap()
	}
	return m
}

// RequestMatchResult is the total result of MatchRequest.
type RequestMatchResult struct {
	Method  *Mismatch
	Path    []Mismatch
	Query   map[string][]Mismatch
	Headers map[string][]Mismatch
	Body    BodyMatchResult
	// Score is +1 per matched and -1 per mismatched facet for method, path
	// and body (the body counts as one facet), plus -1 for each query or
	// header name that has mismatches; matched query and header names and
	// individual body paths add nothing. Used by the mock server to rank
	// partial matches.
	Score int
}

// AllMatched reports whether every facet matched: equivalent to
// Mismatches() being empty.
func (r RequestMatchResult) AllMatched() bool {
	return len(r.Mismatches()) == 0
}

// MethodOrPathMismatch reports a hard mismatch that short-circuits
// interaction selection at the mock server.
func (r RequestMatchResult) MethodOrPathMismatch() bool {
	return r.Method != nil || len(r.Path) > 0
}

// Mismatches flattens every mismatch across all facets, in a stable
// method/path/query/headers/body order.
func (r RequestMatchResult) Mismatches() []Mismatch {
	var out []Mismatch
	if r.Method != nil {
		out = append(out, *r.Method)
	}
	out = append(out, r.Path...)
	for _, name := range sortedKeys(r.Query) {
		out = append(out, r.Query[name]...)
	}
	for _, name := range sortedKeys(r.Headers) {
		out = append(out, r.Headers[name]...)
	}
	if r.Body.TypeMismatch != nil {
		out = append(out, *r.Body.TypeMismatch)
	}
	out = append(out, r.Body.Mismatches...)
	return out
}

// BodyMatchResult is the result of MatchBody.
type BodyMatchResult struct {
	// TypeMismatch is set when the content types are not equivalent and
	// no Content-Type matcher applies; in that case Mismatches is empty
	// and the body was not descended into.
	TypeMismatch *Mismatch
	Mismatches   []Mismatch
}

func sortedKeys(m map[string][]Mismatch) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
