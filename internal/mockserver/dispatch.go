package mockserver

import (
	"io"
	"net/http"
	"strings"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

// actualRequestFrom normalises an inbound *http.Request to the content
// model.
func actualRequestFrom(r *http.Request) (matching.ExpectedRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return matching.ExpectedRequest{}, err
	}

	var ct *content.ContentType
	if h := r.Header.Get("Content-Type"); h != "" {
		parsed := content.ParseContentType(h)
		ct = &parsed
	}

	var optBody content.OptionalBody
	switch {
	case len(body) == 0:
		optBody = content.NewMissingBody()
	default:
		optBody = content.NewPresentBody(body, ct)
	}

	headers := content.NewOrderedMap()
	for name, vals := range r.Header {
		for _, v := range vals {
			headers.Add(name, v)
		}
	}

	query := content.NewOrderedMap()
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		name, val, _ := strings.Cut(pair, "=")
		query.Add(name, val)
	}

	return matching.ExpectedRequest{
		Request: content.Request{
			Method:  strings.ToUpper(r.Method),
			Path:    r.URL.Path,
			Query:   query,
			Headers: headers,
			Body:    optBody,
		},
	}, nil
}

// selection is the outcome of picking a candidate interaction for an
// actual request.
type selection struct {
	interaction *pactio.Interaction
	result      matching.RequestMatchResult
	found       bool
}

// selectInteraction scores actual against every interaction in pact,
// discards any with a method-or-path mismatch, and
// returns the highest-scoring survivor; ties keep whichever interaction
// was declared first.
func selectInteraction(pact *pactio.Pact, actual matching.ExpectedRequest) selection {
	best := selection{}
	bestScore := 0
	first := true
	for _, in := range pact.Interactions {
		result := matching.MatchRequest(in.Request, actual)
		if result.MethodOrPathMismatch() {
			continue
		}
		if first || result.Score > bestScore {
			best = selection{interaction: in, result: result, found: true}
			bestScore = result.Score
			first = false
		}
	}
	return best
}

func outcomeFor(sel selection) OutcomeKind {
	if !sel.found {
		return OutcomeUnexpected
	}
	if sel.result.AllMatched() {
		return OutcomeMatched
	}
	return OutcomePartial
}
