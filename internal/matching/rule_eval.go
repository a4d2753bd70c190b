package matching

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// EvaluateRule applies a single matching rule to a scalar (or
// length-bearing) pair of values, returning whether it passed and, if not,
// a human-readable reason. Structural rules that require recursion
// (Values, EachKey, EachValue, ArrayContains) are handled by the JSON/XML
// body matchers directly and always report true here so that callers
// combining them into a RuleList don't double-count a structural failure.
func EvaluateRule(r rules.Rule, expected, actual interface{}) (bool, string) {
	switch v := r.(type) {
	case rules.Equality:
		if valuesEqual(expected, actual) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v to be equal to %v", expected, actual)
	case rules.Regex:
		s := toText(actual)
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return false, fmt.Sprintf("invalid regex %q: %v", v.Pattern, err)
		}
		if re.MatchString(s) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %q to match pattern %q", s, v.Pattern)
	case rules.TypeMatch:
		if sameType(expected, actual) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v to be the same type as %v", actual, expected)
	case rules.MinType:
		if !sameType(expected, actual) {
			return false, fmt.Sprintf("expected %v to be the same type as %v", actual, expected)
		}
		if n, ok := lengthOf(actual); ok && n < v.Min {
			return false, fmt.Sprintf("length %d below minimum %d", n, v.Min)
		}
		return true, ""
	case rules.MaxType:
		if !sameType(expected, actual) {
			return false, fmt.Sprintf("expected %v to be the same type as %v", actual, expected)
		}
		if n, ok := lengthOf(actual); ok && n > v.Max {
			return false, fmt.Sprintf("length %d above maximum %d", n, v.Max)
		}
		return true, ""
	case rules.MinMaxType:
		if !sameType(expected, actual) {
			return false, fmt.Sprintf("expected %v to be the same type as %v", actual, expected)
		}
		if n, ok := lengthOf(actual); ok {
			if n < v.Min {
				return false, fmt.Sprintf("length %d below minimum %d", n, v.Min)
			}
			if n > v.Max {
				return false, fmt.Sprintf("length %d above maximum %d", n, v.Max)
			}
		}
		return true, ""
	case rules.Timestamp:
		return matchTimeFormat(v.Format, toText(actual), "timestamp")
	case rules.Time:
		return matchTimeFormat(v.Format, toText(actual), "time")
	case rules.Date:
		return matchTimeFormat(v.Format, toText(actual), "date")
	case rules.Include:
		if strings.Contains(toText(actual), v.Substr) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %q to include %q", toText(actual), v.Substr)
	case rules.Number:
		if isNumber(actual) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v to be a number", actual)
	case rules.Integer:
		if n, ok := asFloat(actual); ok && n == float64(int64(n)) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v to be an integer", actual)
	case rules.Decimal:
		if n, ok := asFloat(actual); ok && n != float64(int64(n)) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v to be a decimal", actual)
	case rules.Null:
		if actual == nil {
			return true, ""
		}
		return false, fmt.Sprintf("expected null but received %v", actual)
	case rules.ContentType:
		return true, "" // the octet-stream matcher applies this directly against raw bytes
	case rules.Boolean:
		if _, ok := actual.(bool); ok {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v to be a boolean", actual)
	case rules.NotEmpty:
		if n, ok := lengthOf(actual); ok {
			if n > 0 {
				return true, ""
			}
			return false, "expected a non-empty value"
		}
		return true, ""
	case rules.Semver:
		s := toText(actual)
		if semverPattern.MatchString(s) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %q to be a valid semantic version", s)
	case rules.Values, rules.EachKey, rules.EachValue, rules.ArrayContains:
		return true, ""
	default:
		return true, ""
	}
}

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

// EvaluateRuleList applies a RuleList's AND/OR logic over its rules,
// returning the combined result and, on failure, the first failing rule's
// reason (under OR, a failure is reported only when every rule fails).
func EvaluateRuleList(rl rules.RuleList, expected, actual interface{}) (bool, string) {
	if len(rl.Rules) == 0 {
		return EvaluateRule(rules.Equality{}, expected, actual)
	}
	var firstReason string
	if rl.Logic == rules.OR {
		for _, r := range rl.Rules {
			if ok, reason := EvaluateRule(r, expected, actual); ok {
				return true, ""
			} else if firstReason == "" {
				firstReason = reason
			}
		}
		return false, firstReason
	}
	for _, r := range rl.Rules {
		if ok, reason := EvaluateRule(r, expected, actual); !ok {
			return false, reason
		}
	}
	return true, ""
}

func valuesEqual(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	if ef, ok := asFloat(expected); ok {
		if af, ok := asFloat(actual); ok {
			return ef == af
		}
	}
	return fmt.Sprint(expected) == fmt.Sprint(actual) && sameType(expected, actual)
}

func sameType(a, b interface{}) bool {
	return classify(a) == classify(b)
}

func classify(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	default:
		if isNumber(v) {
			return "number"
		}
		return "unknown"
	}
}

func isNumber(v interface{}) bool {
	_, ok := asFloat(v)
	return ok
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func lengthOf(v interface{}) (int, bool) {
	switch t := v.(type) {
	case string:
		return len(t), true
	case []interface{}:
		return len(t), true
	case map[string]interface{}:
		return len(t), true
	default:
		return 0, false
	}
}

func toText(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
