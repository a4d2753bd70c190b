package matching

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/pathexpr"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

var commaSpace = regexp.MustCompile(`,\s+`)

// normalizeHeaderValue strips whitespace immediately after commas and
// normalises to NFC so visually identical values compare equal regardless
// of composed/decomposed Unicode form.
func normalizeHeaderValue(v string) string {
	return norm.NFC.String(commaSpace.ReplaceAllString(v, ","))
}

// MatchHeaders compares two header multimaps case-insensitively by name.
// When isRequest is true, Cookie is excluded from ordinary header
// matching and instead checked for set-containment (expected subset of
// actual) if both sides carry cookies.
func MatchHeaders(cat *rules.Category, expected, actual *content.OrderedMap, isRequest bool) map[string][]Mismatch {
	out := make(map[string][]Mismatch)
	if expected == nil {
		expected = content.NewOrderedMap()
	}
	if actual == nil {
		actual = content.NewOrderedMap()
	}

	names := expected.Names()
	sort.Slice(names, func(i, j int) bool { return strings.ToLower(names[i]) < strings.ToLower(names[j]) })

	for _, name := range names {
		if isRequest && strings.EqualFold(name, "Cookie") {
			if ms := matchCookie(expected, actual); len(ms) > 0 {
				out[name] = ms
			}
			continue
		}
		expVals, _ := expected.Get(name)
		actVals, ok := actual.GetFold(name)
		if !ok {
			out[name] = []Mismatch{mismatch(HeaderMismatch, "$."+name, expVals, nil,
				"expected header %q but it was missing", name)}
			continue
		}
		var ms []Mismatch
		if len(expVals) != len(actVals) {
			ms = append(ms, mismatch(HeaderMismatch, "$."+name, expVals, actVals,
				"expected %d value(s) for header %q but received %d", len(expVals), name, len(actVals)))
		}
		n := len(expVals)
		if len(actVals) < n {
			n = len(actVals)
		}
		for i := 0; i < n; i++ {
			exp, act := normalizeHeaderValue(expVals[i]), normalizeHeaderValue(actVals[i])
			path := []pathexpr.Fragment{name}
			if cat != nil {
				if rl, ok := cat.UnionMatch(path); ok {
					if ok, reason := EvaluateRuleList(rl, exp, act); !ok {
						ms = append(ms, mismatch(HeaderMismatch, "$."+name, expVals[i], actVals[i],
							"header %q %s", name, reason))
					}
					continue
				}
			}
			if exp != act {
				ms = append(ms, mismatch(HeaderMismatch, "$."+name, expVals[i], actVals[i],
					"expected header %q to equal %q but received %q", name, exp, act))
			}
		}
		if len(ms) > 0 {
			out[name] = ms
		}
	}

	for _, name := range actual.Names() {
		if isRequest && strings.EqualFold(name, "Cookie") {
			continue
		}
		if _, ok := expected.GetFold(name); ok {
			continue
		}
		// unexpected headers are not reported: only expected names must be
		// present and matching, mirroring the AllowUnexpectedKeys default
		// for headers.
	}
	return out
}

// matchCookie checks set-containment: every cookie pair on the expected
// side must appear in the actual side.
func matchCookie(expected, actual *content.OrderedMap) []Mismatch {
	expVals, expOK := expected.GetFold("Cookie")
	actVals, actOK := actual.GetFold("Cookie")
	if !expOK {
		return nil
	}
	if !actOK {
		return []Mismatch{mismatch(HeaderMismatch, "$.Cookie", expVals, nil, "expected cookies but none were received")}
	}
	actSet := make(map[string]bool, len(actVals))
	for _, v := range actVals {
		for _, part := range strings.Split(v, ";") {
			actSet[strings.TrimSpace(part)] = true
		}
	}
	var missing []string
	for _, v := range expVals {
		for _, part := range strings.Split(v, ";") {
			p := strings.TrimSpace(part)
			if !actSet[p] {
				missing = append(missing, p)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []Mismatch{mismatch(HeaderMismatch, "$.Cookie", expVals, actVals,
		"expected cookies %v to be a subset of actual cookies but missing %v", expVals, missing)}
}
