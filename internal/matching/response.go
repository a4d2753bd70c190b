package matching

import "github.com/pact-foundation/pact-core-go/internal/rules"

// MatchResponse compares an actual response against the expected one,
// flattening every sub-matcher's mismatches into a single sequence.
func MatchResponse(expected, actual ExpectedResponse) []Mismatch {
	rm := rulesOf(expected.Rules)

	var out []Mismatch
	if m := MatchStatus(rm.Category(rules.CategoryStatus), expected.Status, actual.Status); m != nil {
		out = append(out, *m)
	}
	headerMismatches := MatchHeaders(rm.Category(rules.CategoryHeader), expected.Headers, actual.Headers, false)
	for _, name := range sortedKeys(headerMismatches) {
		out = append(out, headerMismatches[name]...)
	}
	body := MatchBody(rm, expected.Body, actual.Body)
	if body.TypeMismatch != nil {
		out = append(out, *body.TypeMismatch)
	}
	out = append(out, body.Mismatches...)
	return out
}
