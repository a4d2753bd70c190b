// Package generators implements the value producers applied to turn an
// example value into a concrete one: random int/decimal/string/boolean,
// uuid, date/time/datetime, regex-derived, and the array-contains
// per-variant selector.
package generators

// Mode selects which of the two generator behaviours is used.
type Mode int

const (
	// ProviderState seeds generation from provider-supplied context values.
	ProviderState Mode = iota
	// Generate produces a fresh random value. The random generators ignore
	// context in this mode; ProviderStateGenerator and
	// MockServerURLGenerator still read it.
	Generate
)

// Kind names a generator variant.
type Kind string

const (
	KindRandomInt      Kind = "RandomInt"
	KindRandomDecimal  Kind = "RandomDecimal"
	KindRandomString   Kind = "RandomString"
	KindRandomBoolean  Kind = "RandomBoolean"
	KindUUID           Kind = "Uuid"
	KindDate           Kind = "Date"
	KindTime           Kind = "Time"
	KindDateTime       Kind = "DateTime"
	KindRegex          Kind = "Regex"
	KindProviderState  Kind = "ProviderState"
	KindMockServerURL  Kind = "MockServerURL"
	KindArrayContains  Kind = "ArrayContains"
)

// Generator is a pure function of (value, context, variant-matcher)
// returning a new value or an error. Implementations are value
// types so they can round-trip through JSON without pointers.
type Generator interface {
	Kind() Kind
	// Generate produces a replacement for current, using ctx when Mode is
	// ProviderState.
	Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error)
}

// Context carries the provider-state parameters and any already-generated
// values available to a generator invocation.
type Context struct {
	// Params comes from ProviderState.Params.
	Params map[string]interface{}
	// MockServerURL is available to the MockServerURL generator kind.
	MockServerURL string
}

// Lookup returns the provider-state parameter stored under name, and
// whether it is present. name is a plain key; dotted paths are not
// traversed.
func (c *Context) Lookup(name string) (interface{}, bool) {
	if c == nil || c.Params == nil {
		return nil, false
	}
	v, ok := c.Params[name]
	return v, ok
}
