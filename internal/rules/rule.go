// Package rules implements the matching-rule model: the typed variant
// hierarchy, rule lists with AND/OR combination, rule categories, and the
// V2/V3/V4 JSON encodings.
package rules

// Type names a matching-rule variant. These are also the values used in
// the "match" field of the V2/V3 JSON encoding.
type Type string

// Matching-rule variants.
const (
	TypeEquality    Type = "equality"
	TypeRegex       Type = "regex"
	TypeType        Type = "type"
	TypeMinType     Type = "type" // MinType/MaxType/MinMaxType share the "type" wire tag, disambiguated by min/max presence
	TypeTimestamp   Type = "timestamp"
	TypeTime        Type = "time"
	TypeDate        Type = "date"
	TypeInclude     Type = "include"
	TypeNumber      Type = "number"
	TypeInteger     Type = "integer"
	TypeDecimal     Type = "decimal"
	TypeNull        Type = "null"
	TypeContentType Type = "content-type"
	TypeArrayCont   Type = "arrayContains"
	TypeValues      Type = "values"
	TypeBoolean     Type = "boolean"
	TypeNotEmpty    Type = "notEmpty"
	TypeEachKey     Type = "eachKey"
	TypeEachValue   Type = "eachValue"
	TypeSemver      Type = "semver"
)

// Rule is one matching-rule variant. Each concrete type below implements
// it; Kind reports which variant it is so the matching engine and the JSON
// codec can switch on it without type assertions everywhere.
type Rule interface {
	Kind() Type
}

// Equality requires the two values be equal (the default rule when none is
// configured).
type Equality struct{}

func (Equality) Kind() Type { return TypeEquality }

// Regex requires the string representation of the actual value to match
// Pattern.
type Regex struct{ Pattern string }

func (Regex) Kind() Type { return TypeRegex }

// TypeMatch requires the two values to share a runtime type (object,
// array, string, number, bool, null); no cardinality constraint.
type TypeMatch struct{}

func (TypeMatch) Kind() Type { return TypeType }

// MinType is a TypeMatch plus: if the value is a collection, its length
// must be >= Min.
type MinType struct{ Min int }

func (MinType) Kind() Type { return TypeMinType }

// MaxType is a TypeMatch plus: if the value is a collection, its length
// must be <= Max.
type MaxType struct{ Max int }

func (MaxType) Kind() Type { return TypeMinType }

// MinMaxType combines MinType and MaxType.
type MinMaxType struct{ Min, Max int }

func (MinMaxType) Kind() Type { return TypeMinType }

// Timestamp matches a string against a date-time pattern (library-defined
// format string, e.g. Java SimpleDateFormat-style as the original source
// uses; this port accepts a Go reference-time layout, parsed directly by
// internal/matching's time-format matcher).
type Timestamp struct{ Format string }

func (Timestamp) Kind() Type { return TypeTimestamp }

// Time matches a string against a time-only pattern.
type Time struct{ Format string }

func (Time) Kind() Type { return TypeTime }

// Date matches a string against a date-only pattern.
type Date struct{ Format string }

func (Date) Kind() Type { return TypeDate }

// Include requires the actual string representation to contain Substr.
type Include struct{ Substr string }

func (Include) Kind() Type { return TypeInclude }

// Number matches any numeric value.
type Number struct{}

func (Number) Kind() Type { return TypeNumber }

// Integer matches a number with no fractional digits.
type Integer struct{}

func (Integer) Kind() Type { return TypeInteger }

// Decimal matches a number with at least one fractional digit.
type Decimal struct{}

func (Decimal) Kind() Type { return TypeDecimal }

// Null requires the actual value be JSON null.
type Null struct{}

func (Null) Kind() Type { return TypeNull }

// ContentType requires the actual bytes to be recognisable as MIME, either
// by a declared Content-Type header equivalent to MIME or (for binary
// bodies) by the bytes' magic signature.
type ContentType struct{ MIME string }

func (ContentType) Kind() Type { return TypeContentType }

// Values requires every key present in the actual map to also be checked
// against the matching rules (a "values matcher": compare by key when
// present, else schema-by-example against the first value) rather than
// being subject to a closed/open key-set Diff.
type Values struct{}

func (Values) Kind() Type { return TypeValues }

// Boolean matches any boolean value.
type Boolean struct{}

func (Boolean) Kind() Type { return TypeBoolean }

// NotEmpty requires a non-empty string, array, or object.
type NotEmpty struct{}

func (NotEmpty) Kind() Type { return TypeNotEmpty }

// EachKey applies Definition to every key of an object (as a string
// value), in addition to whatever rule governs the object itself.
type EachKey struct{ Definition Definition }

func (EachKey) Kind() Type { return TypeEachKey }

// EachValue applies Definition to every value of an object or array.
type EachValue struct{ Definition Definition }

func (EachValue) Kind() Type { return TypeEachValue }

// Semver requires the actual string to be a valid semantic version.
type Semver struct{}

func (Semver) Kind() Type { return TypeSemver }

// ArrayContainsVariant is one (index, category, generators) triple
// attached to an ArrayContains rule: the sub-matcher used to find a
// matching element, plus the generator set applied only when that variant
// is serialised.
type ArrayContainsVariant struct {
	Index      int
	Rules      *Category
	Generators map[string]interface{}
}

// ArrayContains requires that, for every configured Variant, at least one
// element of the actual array matches under that variant's sub-category.
type ArrayContains struct {
	Variants []ArrayContainsVariant
}

func (ArrayContains) Kind() Type { return TypeArrayCont }
