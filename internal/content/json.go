package content

import "github.com/ohler55/ojg/oj"

// ParseJSON decodes b into the tree of map[string]interface{} / []interface{}
// / string / number / bool / nil values the matching engine walks, using
// ojg's parser rather than encoding/json for speed. ojg decodes integral
// numbers as int64 and other numbers as float64.
func ParseJSON(b []byte) (interface{}, error) {
	return oj.Parse(b)
}

// MarshalJSON re-serialises a parsed tree, used when rendering a body back
// out for diagnostics (e.g. a schema-by-example fallback value in a
// mismatch message).
func MarshalJSON(v interface{}) ([]byte, error) {
	return oj.Marshal(v)
}
