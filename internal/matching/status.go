package matching

import (
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchStatus compares two HTTP status codes. If a matcher is
// defined under category "status", it is applied to the numeric value;
// otherwise plain integer equality is used.
func MatchStatus(cat *rules.Category, expected, actual uint16) *Mismatch {
	if cat != nil && !cat.IsEmpty() {
		if rl, ok := cat.UnionMatch(nil); ok {
			if ok, reason := EvaluateRuleList(rl, expected, actual); !ok {
				m := mismatch(StatusMismatch, "$", expected, actual, "status %s", reason)
				return &m
			}
			return nil
		}
	}
	if expected == actual {
		return nil
	}
	m := mismatch(StatusMismatch, "$", expected, actual,
		"expected status %d but received %d", expected, actual)
	return &m
}
