package generators

import "sort"

// CategoryName mirrors rules.CategoryName, duplicated here to avoid an
// import cycle between internal/rules and internal/generators (both are
// leaves the matching engine depends on).
type CategoryName string

// Category names generators are organised under.
const (
	CategoryPath   CategoryName = "path"
	CategoryQuery  CategoryName = "query"
	CategoryHeader CategoryName = "header"
	CategoryBody   CategoryName = "body"
	CategoryStatus CategoryName = "status"
)

// Category is a generator bucket keyed by path-expression string.
type Category struct {
	Name      CategoryName
	Generator map[string]Generator
}

// Map is the full set of generator categories attached to an interaction.
type Map struct {
	categories map[CategoryName]*Category
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{categories: make(map[CategoryName]*Category)}
}

// Category returns the named category, creating it if absent.
func (m *Map) Category(name CategoryName) *Category {
	if c, ok := m.categories[name]; ok {
		return c
	}
	c := &Category{Name: name, Generator: make(map[string]Generator)}
	m.categories[name] = c
	return c
}

// Names returns every category name present, sorted for deterministic
// serialisation.
func (m *Map) Names() []CategoryName {
	out := make([]CategoryName, 0, len(m.categories))
	for n := range m.categories {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
