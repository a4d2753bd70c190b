package rules

import (
	"sort"

	"github.com/pact-foundation/pact-core-go/internal/pathexpr"
)

// Logic is the combination operator for a RuleList.
type Logic int

const (
	// AND requires every rule in the list to pass.
	AND Logic = iota
	// OR requires at least one rule in the list to pass.
	OR
)

// RuleList is a sequence of matching rules combined with AND/OR logic.
type RuleList struct {
	Rules []Rule
	Logic Logic
}

// NewRuleList builds a RuleList with AND logic (the default) from rs.
func NewRuleList(rs ...Rule) RuleList {
	return RuleList{Rules: rs, Logic: AND}
}

// CategoryName identifies which facet of an interaction a category
// governs.
type CategoryName string

// Category names.
const (
	CategoryPath     CategoryName = "path"
	CategoryQuery    CategoryName = "query"
	CategoryHeader   CategoryName = "header"
	CategoryBody     CategoryName = "body"
	CategoryStatus   CategoryName = "status"
	CategoryMetadata CategoryName = "metadata"
	CategoryContent  CategoryName = "content"
)

// entry pairs a parsed expression with its rule list and insertion order,
// so ties in the weighting algorithm break toward the first-inserted rule.
type entry struct {
	expr  pathexpr.Expression
	rules RuleList
	order int
}

// Category is a MatchingRuleCategory: a named bucket of matching rules
// keyed by path expression.
type Category struct {
	Name    CategoryName
	entries []entry
	byPath  map[string]int // raw expression -> index into entries, for Set/lookup by exact key
}

// NewCategory returns an empty category named name.
func NewCategory(name CategoryName) *Category {
	return &Category{Name: name, byPath: make(map[string]int)}
}

// Set attaches rules to the (parsed) path expression raw, overwriting any
// existing rules at that exact expression string.
func (c *Category) Set(raw string, rules RuleList) error {
	expr, err := pathexpr.Parse(raw)
	if err != nil {
		return err
	}
	if idx, ok := c.byPath[raw]; ok {
		c.entries[idx].rules = rules
		return nil
	}
	c.byPath[raw] = len(c.entries)
	c.entries = append(c.entries, entry{expr: expr, rules: rules, order: len(c.entries)})
	return nil
}

// Paths returns the raw expression strings in insertion order.
func (c *Category) Paths() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.expr.Raw
	}
	return out
}

// IsEmpty reports whether the category has no rules at all.
func (c *Category) IsEmpty() bool { return len(c.entries) == 0 }

// scored is an entry paired with its computed selection score, used by
// both selection strategies below.
type scored struct {
	entry entry
	score int
}

func (c *Category) scoreAll(path []pathexpr.Fragment) []scored {
	var out []scored
	for _, e := range c.entries {
		if w, ok := pathexpr.Weight(e.expr, path); ok && w > 0 {
			out = append(out, scored{entry: e, score: pathexpr.Score(e.expr, path)})
		}
	}
	return out
}

// BestMatch returns the single highest-scoring rule list for a concrete
// path, used by the body and content categories: "the best matcher
// for a concrete path is uniquely determined ... ties broken by rule-list
// ordering". Returns ok == false if no expression applies.
func (c *Category) BestMatch(path []pathexpr.Fragment) (RuleList, bool) {
	candidates := c.scoreAll(path)
	if len(candidates) == 0 {
		return RuleList{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].entry.order < candidates[j].entry.order
	})
	return candidates[0].entry.rules, true
}

// UnionMatch returns the union of every rule attached to an expression
// with non-zero weight on path, in first-inserted order: used by every
// category other than body and content.
func (c *Category) UnionMatch(path []pathexpr.Fragment) (RuleList, bool) {
	candidates := c.scoreAll(path)
	if len(candidates) == 0 {
		return RuleList{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].entry.order < candidates[j].entry.order })
	out := RuleList{Logic: AND}
	for _, c := range candidates {
		out.Rules = append(out.Rules, c.entry.rules.Rules...)
		if c.entry.rules.Logic == OR {
			out.Logic = OR
		}
	}
	return out, true
}

// Map is the full set of categories attached to an interaction, response,
// or message.
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
	c := NewCategory(name)
	m.categories[name] = c
	return c
}

// Has reports whether a category has been created (regardless of whether
// it holds any rules).
func (m *Map) Has(name CategoryName) bool {
	_, ok := m.categories[name]
	return ok
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
