package matching

import "github.com/pact-foundation/pact-core-go/internal/rules"

// MatchRequest compares an actual request against the expected one,
// aggregating every sub-matcher and computing the selection score used by
// the mock server to rank partial matches.
func MatchRequest(expected ExpectedRequest, actual ExpectedRequest) RequestMatchResult {
	rm := rulesOf(expected.Rules)

	result := RequestMatchResult{
		Method:  MatchMethod(expected.Method, actual.Method),
		Path:    MatchPath(rm.Category(rules.CategoryPath), expected.Path, actual.Path),
		Query:   MatchQuery(rm.Category(rules.CategoryQuery), expected.Query, actual.Query),
		Headers: MatchHeaders(rm.Category(rules.CategoryHeader), expected.Headers, actual.Headers, true),
		Body:    MatchBody(rm, expected.Body, actual.Body),
	}
	result.Score = scoreRequest(result)
	return result
}

func scoreRequest(r RequestMatchResult) int {
	score := 0
	if r.Method == nil {
		score++
	} else {
		score--
	}
	if len(r.Path) == 0 {
		score++
	} else {
		score--
	}
	for _, ms := range r.Query {
		if len(ms) == 0 {
			score++
		} else {
			score--
		}
	}
	for _, ms := range r.Headers {
		if len(ms) == 0 {
			score++
		} else {
			score--
		}
	}
	if r.Body.TypeMismatch == nil && len(r.Body.Mismatches) == 0 {
		score++
	} else {
		score--
	}
	return score
}
