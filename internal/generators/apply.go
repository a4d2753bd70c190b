package generators

// Apply walks value (a parsed JSON tree: map[string]interface{},
// []interface{}, or a scalar) applying every generator in cat whose path
// resolves against the current location, replacing the example value in
// place and returning the result. Only direct field/index paths
// are walked; "$" alone replaces the whole value.
func Apply(cat *Category, mode Mode, ctx *Context, value interface{}) (interface{}, error) {
	if cat == nil || len(cat.Generator) == 0 {
		return value, nil
	}
	if g, ok := cat.Generator["$"]; ok {
		return g.Generate(mode, ctx, value)
	}
	return applyWalk(cat, mode, ctx, value, "$")
}

func applyWalk(cat *Category, mode Mode, ctx *Context, value interface{}, prefix string) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		for k, child := range v {
			path := prefix + "." + k
			if g, ok := cat.Generator[path]; ok {
				replaced, err := g.Generate(mode, ctx, child)
				if err != nil {
					return nil, err
				}
				v[k] = replaced
				continue
			}
			replaced, err := applyWalk(cat, mode, ctx, child, path)
			if err != nil {
				return nil, err
			}
			v[k] = replaced
		}
		return v, nil
	case []interface{}:
		for i, child := range v {
			path := indexPath(prefix, i)
			if g, ok := cat.Generator[path]; ok {
				replaced, err := g.Generate(mode, ctx, child)
				if err != nil {
					return nil, err
				}
				v[i] = replaced
				continue
			}
			replaced, err := applyWalk(cat, mode, ctx, child, path)
			if err != nil {
				return nil, err
			}
			v[i] = replaced
		}
		return v, nil
	default:
		return v, nil
	}
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + itoa(i) + "]"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// ApplyArrayContainsVariant applies a variant's generator set to value
// only at serialisation time for that variant: each (index, category,
// generators) triple in an ArrayContains rule carries its own generators,
// independent of the interaction's top level generator map.
func ApplyArrayContainsVariant(variantGenerators map[string]interface{}, mode Mode, ctx *Context, value interface{}) (interface{}, error) {
	if len(variantGenerators) == 0 {
		return value, nil
	}
	cat := &Category{Generator: make(map[string]Generator)}
	for path, raw := range variantGenerators {
		g, ok := raw.(Generator)
		if !ok {
			continue
		}
		cat.Generator[path] = g
	}
	return Apply(cat, mode, ctx, value)
}
