package matching

import (
	"fmt"
	"sort"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/pathexpr"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchJSONBody compares two JSON documents under cat's body rules.
func MatchJSONBody(cat *rules.Category, expected, actual []byte) []Mismatch {
	expVal, err := content.ParseJSON(expected)
	if err != nil {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "failed to parse expected JSON body: %v", err)}
	}
	actVal, err := content.ParseJSON(actual)
	if err != nil {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "failed to parse actual JSON body: %v", err)}
	}
	return matchJSONValue(cat, nil, "$", expVal, actVal)
}

func hasRuleKind(rl rules.RuleList, kind rules.Type) bool {
	for _, r := range rl.Rules {
		if r.Kind() == kind {
			return true
		}
	}
	return false
}

func findArrayContains(rl rules.RuleList) (rules.ArrayContains, bool) {
	for _, r := range rl.Rules {
		if ac, ok := r.(rules.ArrayContains); ok {
			return ac, true
		}
	}
	return rules.ArrayContains{}, false
}

func matchJSONValue(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual interface{}) []Mismatch {
	switch exp := expected.(type) {
	case map[string]interface{}:
		act, ok := actual.(map[string]interface{})
		if !ok {
			return []Mismatch{mismatch(BodyMismatch, pathStr, expected, actual, "expected an object but received %T", actual)}
		}
		return matchJSONObject(cat, path, pathStr, exp, act)
	case []interface{}:
		act, ok := actual.([]interface{})
		if !ok {
			return []Mismatch{mismatch(BodyMismatch, pathStr, expected, actual, "expected an array but received %T", actual)}
		}
		return matchJSONArray(cat, path, pathStr, exp, act)
	default:
		if cat != nil {
			if rl, ok := cat.BestMatch(path); ok {
				if ok, reason := EvaluateRuleList(rl, expected, actual); !ok {
					return []Mismatch{mismatch(BodyMismatch, pathStr, expected, actual, "%s", reason)}
				}
				return nil
			}
		}
		if !valuesEqual(expected, actual) {
			return []Mismatch{mismatch(BodyMismatch, pathStr, expected, actual,
				"expected %v but received %v", expected, actual)}
		}
		return nil
	}
}

func matchJSONObject(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual map[string]interface{}) []Mismatch {
	if cat != nil {
		if rl, ok := cat.BestMatch(path); ok && hasRuleKind(rl, rules.TypeValues) {
			return matchValuesObject(cat, path, pathStr, expected, actual)
		}
	}
	return matchKeySetObject(cat, path, pathStr, expected, actual, AllowUnexpectedKeys)
}

func firstMapValue(m map[string]interface{}) interface{} {
	keys := sortedMapKeys(m)
	if len(keys) == 0 {
		return nil
	}
	return m[keys[0]]
}

func sortedMapKeys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// matchValuesObject implements the "values matcher" object mode:
// every actual key is checked, against the same-named expected key when
// present, else against the first expected value as a schema-by-example.
func matchValuesObject(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual map[string]interface{}) []Mismatch {
	var out []Mismatch
	for _, key := range sortedMapKeys(actual) {
		schema, ok := expected[key]
		if !ok {
			schema = firstMapValue(expected)
		}
		childPath := append(append([]pathexpr.Fragment{}, path...), key)
		out = append(out, matchJSONValue(cat, childPath, pathStr+"."+key, schema, actual[key])...)
	}
	return out
}

func matchKeySetObject(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual map[string]interface{}, diff DiffConfig) []Mismatch {
	var out []Mismatch
	for _, key := range sortedMapKeys(expected) {
		childPath := append(append([]pathexpr.Fragment{}, path...), key)
		actVal, ok := actual[key]
		if !ok {
			out = append(out, mismatch(BodyMismatch, pathStr+"."+key, expected[key], nil,
				"expected key %q but it was missing", key))
			continue
		}
		out = append(out, matchJSONValue(cat, childPath, pathStr+"."+key, expected[key], actVal)...)
	}
	if diff == NoUnexpectedKeys {
		for _, key := range sortedMapKeys(actual) {
			if _, ok := expected[key]; !ok {
				out = append(out, mismatch(BodyMismatch, pathStr+"."+key, nil, actual[key],
					"unexpected key %q", key))
			}
		}
	}
	return out
}

func matchJSONArray(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual []interface{}) []Mismatch {
	if cat != nil {
		if rl, ok := cat.BestMatch(path); ok {
			if ac, ok := findArrayContains(rl); ok {
				return matchArrayContains(ac, pathStr, expected, actual)
			}
			if hasRuleKind(rl, rules.TypeType) {
				if ok, reason := EvaluateRuleList(rl, expected, actual); !ok {
					return []Mismatch{mismatch(BodyMismatch, pathStr, expected, actual, "%s", reason)}
				}
				return matchArrayPadded(cat, path, pathStr, expected, actual)
			}
		}
	}
	return matchArrayPositional(cat, path, pathStr, expected, actual)
}

// matchArrayPadded repeats expected's first element to actual's length
// before comparing positionally, once a cardinality (type) matcher governs
// the array itself.
func matchArrayPadded(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual []interface{}) []Mismatch {
	if len(expected) == 0 || len(actual) == 0 {
		return nil
	}
	var out []Mismatch
	template := expected[0]
	for i := range actual {
		childPath := append(append([]pathexpr.Fragment{}, path...), fmt.Sprint(i))
		out = append(out, matchJSONValue(cat, childPath, fmt.Sprintf("%s[%d]", pathStr, i), template, actual[i])...)
	}
	return out
}

func matchArrayPositional(cat *rules.Category, path []pathexpr.Fragment, pathStr string, expected, actual []interface{}) []Mismatch {
	var out []Mismatch
	n := len(expected)
	if len(actual) < n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		childPath := append(append([]pathexpr.Fragment{}, path...), fmt.Sprint(i))
		out = append(out, matchJSONValue(cat, childPath, fmt.Sprintf("%s[%d]", pathStr, i), expected[i], actual[i])...)
	}
	for i := len(actual); i < len(expected); i++ {
		out = append(out, mismatch(BodyMismatch, fmt.Sprintf("%s[%d]", pathStr, i), expected[i], nil,
			"expected element at index %d but actual array was shorter", i))
	}
	for i := len(expected); i < len(actual); i++ {
		out = append(out, mismatch(BodyMismatch, fmt.Sprintf("%s[%d]", pathStr, i), nil, actual[i],
			"unexpected element at index %d", i))
	}
	return out
}

func matchArrayContains(ac rules.ArrayContains, pathStr string, expected, actual []interface{}) []Mismatch {
	var out []Mismatch
	for _, variant := range ac.Variants {
		var schema interface{}
		if variant.Index >= 0 && variant.Index < len(expected) {
			schema = expected[variant.Index]
		} else if len(expected) > 0 {
			schema = expected[0]
		}
		found := false
		for _, elem := range actual {
			if ms := matchJSONValue(variant.Rules, nil, pathStr, schema, elem); len(ms) == 0 {
				found = true
				break
			}
		}
		if !found {
			out = append(out, mismatch(BodyMismatch, pathStr, schema, actual,
				"expected the array to contain an element matching variant %d", variant.Index))
		}
	}
	return out
}
