package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToWireV3 renders m in the V3/V4 structured shape:
//
//	{category: {path: {combine: "AND"|"OR", matchers: [...]}}}
func ToWireV3(m *Map) map[string]interface{} {
	out := make(map[string]interface{})
	for _, name := range m.Names() {
		cat := m.Category(name)
		paths := make(map[string]interface{})
		for _, e := range cat.entries {
			matchers := make([]interface{}, 0, len(e.rules.Rules))
			for _, r := range e.rules.Rules {
				matchers = append(matchers, encodeRule(r))
			}
			combine := "AND"
			if e.rules.Logic == OR {
				combine = "OR"
			}
			paths[e.expr.Raw] = map[string]interface{}{
				"combine":  combine,
				"matchers": matchers,
			}
		}
		out[string(name)] = map[string]interface{}{"matchers": paths}
	}
	return out
}

// FromWireV3 parses the V3/V4 structured matchingRules object into a Map.
func FromWireV3(raw map[string]interface{}) (*Map, error) {
	m := NewMap()
	for catName, catRaw := range raw {
		catObj, ok := catRaw.(map[string]interface{})
		if !ok {
			continue
		}
		pathsRaw, _ := catObj["matchers"].(map[string]interface{})
		cat := m.Category(CategoryName(catName))
		for path, entryRaw := range pathsRaw {
			entryObj, ok := entryRaw.(map[string]interface{})
			if !ok {
				continue
			}
			logic := AND
			if c, _ := entryObj["combine"].(string); c == "OR" {
				logic = OR
			}
			matchersRaw, _ := entryObj["matchers"].([]interface{})
			rl := RuleList{Logic: logic}
			for _, mr := range matchersRaw {
				obj, ok := mr.(map[string]interface{})
				if !ok {
					continue
				}
				rule, err := decodeRule(obj)
				if err != nil {
					return nil, fmt.Errorf("rules: category %s path %s: %w", catName, path, err)
				}
				rl.Rules = append(rl.Rules, rule)
			}
			if err := cat.Set(path, rl); err != nil {
				return nil, fmt.Errorf("rules: category %s: %w", catName, err)
			}
		}
	}
	return m, nil
}

// ToWireV2 renders m as the legacy flat JSON-Path-keyed map: each
// path maps directly to a single matcher object (no combine/matchers
// wrapper, and only the first rule per path survives; V2 has no AND/OR).
// ArrayContains has no V2 representation: it is
// dropped here, and no warning is logged for it.
func ToWireV2(m *Map) map[string]interface{} {
	out := make(map[string]interface{})
	for _, name := range m.Names() {
		cat := m.Category(name)
		for _, e := range cat.entries {
			if len(e.rules.Rules) == 0 {
				continue
			}
			if _, isArray := e.rules.Rules[0].(ArrayContains); isArray {
				continue
			}
			out[string(name)+e.expr.Raw[1:]] = encodeRule(e.rules.Rules[0])
		}
	}
	return out
}

// v2CategoryNames lists every category in a fixed order so FromWireV2 can
// find the prefix a flat key starts with; none is a prefix of another, so
// simple iteration order does not matter for correctness.
var v2CategoryNames = []CategoryName{
	CategoryPath, CategoryQuery, CategoryHeader, CategoryBody,
	CategoryStatus, CategoryMetadata, CategoryContent,
}

// FromWireV2 parses the legacy flat JSON-Path-keyed map back into a Map,
// the inverse of ToWireV2. Each key is "<category><path-suffix>" with no
// separator (mirroring how ToWireV2 builds it), e.g. "body.related" for
// category "body" and path "$.related".
func FromWireV2(raw map[string]interface{}) (*Map, error) {
	m := NewMap()
	for key, v := range raw {
		obj, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		var catName CategoryName
		var suffix string
		for _, cn := range v2CategoryNames {
			if strings.HasPrefix(key, string(cn)) {
				catName = cn
				suffix = key[len(cn):]
				break
			}
		}
		if catName == "" {
			continue
		}
		rule, err := decodeRule(obj)
		if err != nil {
			return nil, fmt.Errorf("rules: key %q: %w", key, err)
		}
		if err := m.Category(catName).Set("$"+suffix, NewRuleList(rule)); err != nil {
			return nil, fmt.Errorf("rules: key %q: %w", key, err)
		}
	}
	return m, nil
}

func encodeRule(r Rule) map[string]interface{} {
	switch v := r.(type) {
	case Equality:
		return map[string]interface{}{"match": "equality"}
	case Regex:
		return map[string]interface{}{"match": "regex", "regex": v.Pattern}
	case TypeMatch:
		return map[string]interface{}{"match": "type"}
	case MinType:
		return map[string]interface{}{"match": "type", "min": v.Min}
	case MaxType:
		return map[string]interface{}{"match": "type", "max": v.Max}
	case MinMaxType:
		return map[string]interface{}{"match": "type", "min": v.Min, "max": v.Max}
	case Timestamp:
		return map[string]interface{}{"match": "timestamp", "timestamp": v.Format}
	case Time:
		return map[string]interface{}{"match": "time", "time": v.Format}
	case Date:
		return map[string]interface{}{"match": "date", "date": v.Format}
	case Include:
		return map[string]interface{}{"match": "include", "value": v.Substr}
	case Number:
		return map[string]interface{}{"match": "number"}
	case Integer:
		return map[string]interface{}{"match": "integer"}
	case Decimal:
		return map[string]interface{}{"match": "decimal"}
	case Null:
		return map[string]interface{}{"match": "null"}
	case ContentType:
		return map[string]interface{}{"match": "content-type", "value": v.MIME}
	case Values:
		return map[string]interface{}{"match": "values"}
	case Boolean:
		return map[string]interface{}{"match": "boolean"}
	case NotEmpty:
		return map[string]interface{}{"match": "notEmpty"}
	case Semver:
		return map[string]interface{}{"match": "semver"}
	case EachKey:
		return map[string]interface{}{"match": "eachKey", "rules": []interface{}{encodeRule(firstRule(v.Definition.Rules))}}
	case EachValue:
		return map[string]interface{}{"match": "eachValue", "rules": []interface{}{encodeRule(firstRule(v.Definition.Rules))}}
	case ArrayContains:
		variants := make([]interface{}, 0, len(v.Variants))
		for _, variant := range v.Variants {
			variants = append(variants, []interface{}{
				variant.Index,
				ToWireV3(&Map{categories: map[CategoryName]*Category{"": variant.Rules}}),
				variant.Generators,
			})
		}
		return map[string]interface{}{"match": "arrayContains", "variants": variants}
	default:
		return map[string]interface{}{"match": "equality"}
	}
}

func firstRule(rl RuleList) Rule {
	if len(rl.Rules) == 0 {
		return Equality{}
	}
	return rl.Rules[0]
}

func decodeRule(obj map[string]interface{}) (Rule, error) {
	match, _ := obj["match"].(string)
	switch match {
	case "", "equality":
		return Equality{}, nil
	case "regex":
		pattern, _ := obj["regex"].(string)
		return Regex{Pattern: pattern}, nil
	case "type":
		minV, hasMin := numField(obj, "min")
		maxV, hasMax := numField(obj, "max")
		switch {
		case hasMin && hasMax:
			return MinMaxType{Min: minV, Max: maxV}, nil
		case hasMin:
			return MinType{Min: minV}, nil
		case hasMax:
			return MaxType{Max: maxV}, nil
		default:
			return TypeMatch{}, nil
		}
	case "timestamp", "datetime":
		f, _ := obj["timestamp"].(string)
		if f == "" {
			f, _ = obj["format"].(string)
		}
		return Timestamp{Format: f}, nil
	case "time":
		f, _ := obj["time"].(string)
		return Time{Format: f}, nil
	case "date":
		f, _ := obj["date"].(string)
		return Date{Format: f}, nil
	case "include":
		v, _ := obj["value"].(string)
		return Include{Substr: v}, nil
	case "number":
		return Number{}, nil
	case "integer":
		return Integer{}, nil
	case "decimal":
		return Decimal{}, nil
	case "null":
		return Null{}, nil
	case "content-type", "contentType":
		v, _ := obj["value"].(string)
		return ContentType{MIME: v}, nil
	case "values":
		return Values{}, nil
	case "boolean":
		return Boolean{}, nil
	case "notEmpty":
		return NotEmpty{}, nil
	case "semver":
		return Semver{}, nil
	case "eachKey":
		def, err := decodeNestedDefinition(obj)
		if err != nil {
			return nil, err
		}
		return EachKey{Definition: def}, nil
	case "eachValue":
		def, err := decodeNestedDefinition(obj)
		if err != nil {
			return nil, err
		}
		return EachValue{Definition: def}, nil
	case "arrayContains":
		variantsRaw, _ := obj["variants"].([]interface{})
		var variants []ArrayContainsVariant
		for _, vr := range variantsRaw {
			tuple, ok := vr.([]interface{})
			if !ok || len(tuple) != 3 {
				continue
			}
			idx, _ := numField(map[string]interface{}{"i": tuple[0]}, "i")
			catRaw, _ := tuple[1].(map[string]interface{})
			subMap, err := FromWireV3(catRaw)
			if err != nil {
				return nil, err
			}
			gens, _ := tuple[2].(map[string]interface{})
			variants = append(variants, ArrayContainsVariant{
				Index:      idx,
				Rules:      subMap.Category(""),
				Generators: gens,
			})
		}
		return ArrayContains{Variants: variants}, nil
	default:
		return nil, fmt.Errorf("rules: unknown matcher type %q", match)
	}
}

func decodeNestedDefinition(obj map[string]interface{}) (Definition, error) {
	rulesRaw, _ := obj["rules"].([]interface{})
	var rl RuleList
	for _, rr := range rulesRaw {
		ro, ok := rr.(map[string]interface{})
		if !ok {
			continue
		}
		r, err := decodeRule(ro)
		if err != nil {
			return Definition{}, err
		}
		rl.Rules = append(rl.Rules, r)
	}
	return Definition{Rules: rl}, nil
}

func numField(obj map[string]interface{}, key string) (int, bool) {
	v, ok := obj[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
