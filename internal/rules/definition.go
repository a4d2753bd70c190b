package rules

// ValueType is the merged value-type lattice the rule-definition DSL uses
// when composing multiple rules over the same value: String is the
// most general, Unknown the least.
//
//	String ⊒ Decimal ⊒ Integer ⊒ Number ⊒ Boolean ⊒ Unknown
type ValueType int

const (
	ValueUnknown ValueType = iota
	ValueBoolean
	ValueNumber
	ValueInteger
	ValueDecimal
	ValueString
)

// Wider returns the more general of a and b per the lattice above.
func Wider(a, b ValueType) ValueType {
	if a > b {
		return a
	}
	return b
}

// Definition is a MatchingRuleDefinition: a rule list plus the example
// value and value-type it was derived from, and any generator attached at
// the same path. Merging two definitions over the same value
// widens ValueType, keeps the first Example/Generator and records that a
// conflict occurred.
type Definition struct {
	Rules     RuleList
	Example   interface{}
	ValueType ValueType
	Generator interface{} // a generators.Generator, kept untyped here to avoid an import cycle

	// Conflict is set when Merge found a differing example value or
	// generator and kept the first one.
	Conflict bool
}

// Merge combines other into d: rule lists concatenate, the value
// type widens, and the first example value / generator wins on conflict.
func (d Definition) Merge(other Definition) Definition {
	out := Definition{
		Rules:     RuleList{Logic: d.Rules.Logic, Rules: append(append([]Rule{}, d.Rules.Rules...), other.Rules.Rules...)},
		Example:   d.Example,
		ValueType: Wider(d.ValueType, other.ValueType),
		Generator: d.Generator,
	}
	if d.Example == nil {
		out.Example = other.Example
	} else if other.Example != nil && !equalExample(d.Example, other.Example) {
		out.Conflict = true
	}
	if d.Generator == nil {
		out.Generator = other.Generator
	} else if other.Generator != nil && d.Generator != other.Generator {
		out.Conflict = true
	}
	return out
}

func equalExample(a, b interface{}) bool {
	return a == b
}
