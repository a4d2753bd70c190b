package matching

import (
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchPath compares two request paths. If a matcher is defined at
// the empty path under category "path", it is applied; otherwise the two
// strings must be exactly equal.
func MatchPath(cat *rules.Category, expected, actual string) []Mismatch {
	if cat != nil && !cat.IsEmpty() {
		if rl, ok := cat.UnionMatch(nil); ok {
			if ok, reason := EvaluateRuleList(rl, expected, actual); !ok {
				return []Mismatch{mismatch(PathMismatch, "$", expected, actual, "path %s", reason)}
			}
			return nil
		}
	}
	if expected == actual {
		return nil
	}
	return []Mismatch{mismatch(PathMismatch, "$", expected, actual,
		"expected path %q but received %q", expected, actual)}
}
