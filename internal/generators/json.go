package generators

import "fmt"

// ToWire renders m as the pact `generators` object: `{category: {path:
// {type, ...fields}}}`.
func ToWire(m *Map) map[string]interface{} {
	out := make(map[string]interface{})
	if m == nil {
		return out
	}
	for _, name := range m.Names() {
		cat := m.Category(name)
		paths := make(map[string]interface{}, len(cat.Generator))
		for path, gen := range cat.Generator {
			paths[path] = encodeGenerator(gen)
		}
		out[string(name)] = paths
	}
	return out
}

// FromWire parses a `generators` object back into a Map.
func FromWire(raw map[string]interface{}) (*Map, error) {
	m := NewMap()
	for catName, v := range raw {
		paths, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("generators: category %q is not an object", catName)
		}
		cat := m.Category(CategoryName(catName))
		for path, gv := range paths {
			obj, ok := gv.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("generators: entry %q.%q is not an object", catName, path)
			}
			gen, err := decodeGenerator(obj)
			if err != nil {
				return nil, fmt.Errorf("generators: %q.%q: %w", catName, path, err)
			}
			cat.Generator[path] = gen
		}
	}
	return m, nil
}

func encodeGenerator(g Generator) map[string]interface{} {
	switch v := g.(type) {
	case RandomInt:
		return map[string]interface{}{"type": string(KindRandomInt), "min": v.Min, "max": v.Max}
	case RandomDecimal:
		return map[string]interface{}{"type": string(KindRandomDecimal), "digits": v.Digits}
	case RandomString:
		return map[string]interface{}{"type": string(KindRandomString), "size": v.Size}
	case RandomBoolean:
		return map[string]interface{}{"type": string(KindRandomBoolean)}
	case UUID:
		return map[string]interface{}{"type": string(KindUUID), "format": v.Format}
	case DateTime:
		return map[string]interface{}{"type": string(KindDateTime), "format": v.Format}
	case DateOnly:
		return map[string]interface{}{"type": string(KindDate), "format": v.Format}
	case TimeOnly:
		return map[string]interface{}{"type": string(KindTime), "format": v.Format}
	case Regex:
		return map[string]interface{}{"type": string(KindRegex), "regex": v.Pattern}
	case ProviderStateGenerator:
		return map[string]interface{}{"type": string(KindProviderState), "expression": v.Expression}
	case MockServerURLGenerator:
		return map[string]interface{}{"type": string(KindMockServerURL), "expression": v.Expression}
	default:
		return map[string]interface{}{"type": "Unknown"}
	}
}

func decodeGenerator(obj map[string]interface{}) (Generator, error) {
	kind, _ := obj["type"].(string)
	switch Kind(kind) {
	case KindRandomInt:
		return RandomInt{Min: intField(obj, "min"), Max: intField(obj, "max")}, nil
	case KindRandomDecimal:
		return RandomDecimal{Digits: int(intField(obj, "digits"))}, nil
	case KindRandomString:
		return RandomString{Size: int(intField(obj, "size"))}, nil
	case KindRandomBoolean:
		return RandomBoolean{}, nil
	case KindUUID:
		return UUID{Format: strField(obj, "format")}, nil
	case KindDateTime:
		return DateTime{Format: strField(obj, "format")}, nil
	case KindDate:
		return DateOnly{Format: strField(obj, "format")}, nil
	case KindTime:
		return TimeOnly{Format: strField(obj, "format")}, nil
	case KindRegex:
		return Regex{Pattern: strField(obj, "regex")}, nil
	case KindProviderState:
		return ProviderStateGenerator{Expression: strField(obj, "expression")}, nil
	case KindMockServerURL:
		return MockServerURLGenerator{Expression: strField(obj, "expression")}, nil
	default:
		return nil, fmt.Errorf("unknown generator type %q", kind)
	}
}

func intField(obj map[string]interface{}, key string) int64 {
	switch n := obj[key].(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

func strField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}
