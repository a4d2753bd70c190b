package content

import "strings"

// Values is an ordered sequence of string values for one name. Order within
// a single name is significant; order across distinct names is not.
type Values []string

// OrderedMap is a mapping from name to an ordered sequence of values, used
// for both query parameters and headers. Insertion order of names is
// preserved for deterministic serialisation, but it carries no matching
// semantics for headers/query beyond per-name value ordering.
type OrderedMap struct {
	keys   []string
	values map[string]Values
	// caseIndex maps a lower-cased name to the canonical stored name, used
	// only by header lookups.
	caseIndex map[string]string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Values), caseIndex: make(map[string]string)}
}

// Set replaces the values for name, preserving first-seen insertion order.
func (m *OrderedMap) Set(name string, vals ...string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = append(Values(nil), vals...)
	m.caseIndex[strings.ToLower(name)] = name
}

// Add appends a value to name's sequence.
func (m *OrderedMap) Add(name, val string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = append(m.values[name], val)
	m.caseIndex[strings.ToLower(name)] = name
}

// Get returns the ordered values for name (exact, case-sensitive key), and
// whether the name is present at all.
func (m *OrderedMap) Get(name string) (Values, bool) {
	v, ok := m.values[name]
	return v, ok
}

// GetFold is a case-insensitive lookup, used for header access.
func (m *OrderedMap) GetFold(name string) (Values, bool) {
	canon, ok := m.caseIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return m.Get(canon)
}

// Names returns the stored names in insertion order.
func (m *OrderedMap) Names() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of distinct names.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Request models an HTTP request as the matching engine sees it: an
// uppercased method, an exact path string, optional query and header
// multimaps, and a body.
type Request struct {
	Method  string
	Path    string
	Query   *OrderedMap
	Headers *OrderedMap
	Body    OptionalBody
}

// NormalizedMethod returns Method uppercased to plain ASCII.
func (r Request) NormalizedMethod() string {
	return strings.ToUpper(r.Method)
}

// Response models an HTTP response: a status code, optional headers, and a
// body.
type Response struct {
	Status  uint16
	Headers *OrderedMap
	Body    OptionalBody
}

// Message models an asynchronous message: contents plus free-form
// metadata, used for non-HTTP interactions.
type Message struct {
	Description string
	Contents    OptionalBody
	Metadata    map[string]interface{}
}

// Part is a single named section of a multipart/form-data body,
// parsed in encounter order.
type Part struct {
	Name    string
	Headers *OrderedMap
	Body    OptionalBody
}
