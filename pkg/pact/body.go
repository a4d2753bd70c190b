package pact

import (
	"fmt"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// buildBody walks value (a tree of map[string]interface{}, []interface{},
// Matcher, and plain leaves: the shape json.Marshal itself accepts)
// replacing every Matcher with its example value and recording its
// matching rule against the body category, using the same path
// convention internal/matching's JSON body matcher walks ("$" root,
// ".key" for object members, "[i]" for array elements, "[*]" for every
// element of an EachLike-templated array).
func buildBody(value interface{}) ([]byte, *rules.Map, error) {
	rl := rules.NewMap()
	literal := collectMatchers(value, "$", rl.Category(rules.CategoryBody))
	b, err := content.MarshalJSON(literal)
	if err != nil {
		return nil, nil, fmt.Errorf("pact: encoding body: %w", err)
	}
	return b, rl, nil
}

func collectMatchers(value interface{}, path string, cat *rules.Category) interface{} {
	switch v := value.(type) {
	case eachLikeMatcher:
		_ = cat.Set(path, rules.NewRuleList(v.Rule()))
		item := collectMatchers(v.contents, path+"[*]", cat)
		out := make([]interface{}, v.min)
		for i := range out {
			out[i] = item
		}
		return out
	case Matcher:
		_ = cat.Set(path, rules.NewRuleList(v.Rule()))
		return v.GetValue()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, child := range v {
			out[k] = collectMatchers(child, path+"."+k, cat)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, child := range v {
			out[i] = collectMatchers(child, fmt.Sprintf("%s[%d]", path, i), cat)
		}
		return out
	default:
		return v
	}
}
