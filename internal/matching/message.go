package matching

import "github.com/pact-foundation/pact-core-go/internal/rules"

// MatchMessage compares an actual asynchronous message against the
// expected one: its contents via the body matcher, and its metadata map
// under the "metadata" category.
func MatchMessage(expected, actual ExpectedMessage) []Mismatch {
	rm := rulesOf(expected.Rules)

	var out []Mismatch
	body := MatchBody(rm, expected.Contents, actual.Contents)
	if body.TypeMismatch != nil {
		out = append(out, *body.TypeMismatch)
	}
	out = append(out, body.Mismatches...)
	out = append(out, matchMetadata(rm.Category(rules.CategoryMetadata), expected.Metadata, actual.Metadata)...)
	return out
}

func matchMetadata(cat *rules.Category, expected, actual map[string]interface{}) []Mismatch {
	var out []Mismatch
	for key, expVal := range expected {
		actVal, ok := actual[key]
		if !ok {
			out = append(out, mismatch(MetadataMismatch, "$."+key, expVal, nil,
				"expected metadata key %q but it was missing", key))
			continue
		}
		if cat != nil {
			if rl, ok := cat.UnionMatch([]string{key}); ok {
				if ok, reason := EvaluateRuleList(rl, expVal, actVal); !ok {
					out = append(out, mismatch(MetadataMismatch, "$."+key, expVal, actVal, "metadata %q %s", key, reason))
				}
				continue
			}
		}
		if !valuesEqual(expVal, actVal) {
			out = append(out, mismatch(MetadataMismatch, "$."+key, expVal, actVal,
				"expected metadata %q to equal %v but received %v", key, expVal, actVal))
		}
	}
	return out
}
