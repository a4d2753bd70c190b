package matching

import (
	"strconv"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/pathexpr"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchQuery compares two query-string multimaps: every expected
// name must be present in actual, its ordered values compared pairwise
// (each delegating to any matcher at "$.<name>.<index>", else equality),
// and any name present only in actual is reported as unexpected.
func MatchQuery(cat *rules.Category, expected, actual *content.OrderedMap) map[string][]Mismatch {
	out := make(map[string][]Mismatch)
	if expected == nil {
		expected = content.NewOrderedMap()
	}
	if actual == nil {
		actual = content.NewOrderedMap()
	}
	for _, name := range expected.Names() {
		expVals, _ := expected.Get(name)
		actVals, ok := actual.Get(name)
		if !ok {
			out[name] = []Mismatch{mismatch(QueryMismatch, "$."+name, expVals, nil,
				"expected query parameter %q but it was missing", name)}
			continue
		}
		var ms []Mismatch
		if len(expVals) != len(actVals) {
			ms = append(ms, mismatch(QueryMismatch, "$."+name, expVals, actVals,
				"expected %d value(s) for query parameter %q but received %d", len(expVals), name, len(actVals)))
		}
		n := len(expVals)
		if len(actVals) < n {
			n = len(actVals)
		}
		for i := 0; i < n; i++ {
			path := []pathexpr.Fragment{name, strconv.Itoa(i)}
			if cat != nil {
				if rl, ok := cat.UnionMatch(path); ok {
					if ok, reason := EvaluateRuleList(rl, expVals[i], actVals[i]); !ok {
						ms = append(ms, mismatch(QueryMismatch, "$."+name+"."+strconv.Itoa(i), expVals[i], actVals[i],
							"query parameter %q[%d] %s", name, i, reason))
					}
					continue
				}
			}
			if expVals[i] != actVals[i] {
				ms = append(ms, mismatch(QueryMismatch, "$."+name+"."+strconv.Itoa(i), expVals[i], actVals[i],
					"expected query parameter %q[%d] to equal %q but received %q", name, i, expVals[i], actVals[i]))
			}
		}
		if len(ms) > 0 {
			out[name] = ms
		}
	}
	for _, name := range actual.Names() {
		if _, ok := expected.Get(name); ok {
			continue
		}
		actVals, _ := actual.Get(name)
		out[name] = []Mismatch{mismatch(QueryMismatch, "$."+name, nil, actVals,
			"unexpected query parameter %q", name)}
	}
	return out
}
