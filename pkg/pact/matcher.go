// Package pact is the one stable, documented surface intended for
// consumer test authors: a fluent builder over internal/ffi's handle
// operations, plus the matcher DSL (Like, EachLike, Term/Regex, and the
// timestamp/date/time/UUID helpers) used to describe a flexible body.
package pact

import (
	"time"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// Matcher marks a value produced by one of this package's constructors as
// something that contributes a matching rule rather than a literal value,
// a sum type over isMatcher/GetValue/Rule.
type Matcher interface {
	isMatcher()
	// GetValue returns the example value substituted into the literal
	// body/query/header the mock server actually serves.
	GetValue() interface{}
	// Rule returns the matching rule this value attaches at its path.
	Rule() rules.Rule
}

type likeMatcher struct{ value interface{} }

func (likeMatcher) isMatcher()              {}
func (m likeMatcher) GetValue() interface{} { return m.value }
func (likeMatcher) Rule() rules.Rule        { return rules.TypeMatch{} }

// Like matches value by runtime type only (object/array/string/number/
// bool/null), ignoring its literal contents.
func Like(value interface{}) Matcher { return likeMatcher{value: value} }

type eachLikeMatcher struct {
	contents interface{}
	min      int
}

func (eachLikeMatcher) isMatcher()              {}
func (m eachLikeMatcher) GetValue() interface{} { return m.contents }
func (m eachLikeMatcher) Rule() rules.Rule      { return rules.MinType{Min: m.min} }

// EachLike asserts every element of an array matches contents (which may
// itself contain nested matchers) and the array has at least min elements.
// min must be 1 or greater. The literal body repeats contents min times.
func EachLike(contents interface{}, min int) Matcher {
	if min < 1 {
		min = 1
	}
	return eachLikeMatcher{contents: contents, min: min}
}

type termMatcher struct {
	generate interface{}
	pattern  string
}

func (termMatcher) isMatcher()            {}
func (m termMatcher) GetValue() interface{} { return m.generate }
func (m termMatcher) Rule() rules.Rule      { return rules.Regex{Pattern: m.pattern} }

// Term matches a string against pattern, substituting generate as the
// literal example value.
func Term(generate, pattern string) Matcher {
	return termMatcher{generate: generate, pattern: pattern}
}

// Regex is a more descriptively named alias for Term.
var Regex = Term

// Integer matches any value of integer type, using example as the literal.
func Integer(example int64) Matcher { return integerMatcher{example: example} }

type integerMatcher struct{ example int64 }

func (integerMatcher) isMatcher()              {}
func (m integerMatcher) GetValue() interface{} { return m.example }
func (integerMatcher) Rule() rules.Rule        { return rules.Integer{} }

// Decimal matches any value of decimal (floating-point) type.
func Decimal(example float64) Matcher { return decimalMatcher{example: example} }

type decimalMatcher struct{ example float64 }

func (decimalMatcher) isMatcher()              {}
func (m decimalMatcher) GetValue() interface{} { return m.example }
func (decimalMatcher) Rule() rules.Rule        { return rules.Decimal{} }

// Bool matches any boolean value.
func Bool(example bool) Matcher { return boolMatcher{example: example} }

type boolMatcher struct{ example bool }

func (boolMatcher) isMatcher()              {}
func (m boolMatcher) GetValue() interface{} { return m.example }
func (boolMatcher) Rule() rules.Rule        { return rules.Boolean{} }

// Pattern constants mirroring well-known formats, grounded on the v3
// matcher DSL's regex table.
const (
	hexadecimalPattern = `[0-9a-fA-F]+`
	ipAddressPattern   = `(\d{1,3}\.)+\d{1,3}`
	uuidPattern        = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`
)

var referenceTime = time.Date(2000, 2, 1, 12, 30, 0, 0, time.UTC)

// HexValue matches hexadecimal-encoded strings.
func HexValue() Matcher { return Term("3F", hexadecimalPattern) }

// IPAddress matches a dotted-quad IPv4 address string.
func IPAddress() Matcher { return Term("127.0.0.1", ipAddressPattern) }

// UUID matches a canonical hyphenated UUID string.
func UUID() Matcher { return Term("fc763eba-0905-41c5-a27f-3934ab26786c", uuidPattern) }

// Timestamp matches a datetime string formatted per layout, a Go
// reference-time layout. An empty layout defaults to RFC3339, and the
// example value is the reference time 2000-02-01T12:30:00Z formatted the
// same way, matching the format the rule itself will check against.
func Timestamp(layout string) Matcher {
	if layout == "" {
		layout = time.RFC3339
	}
	return timeMatcher{example: referenceTime.Format(layout), layout: layout, kind: rules.TypeTimestamp}
}

// Date matches a date-only string formatted per layout ("2006-01-02" if
// empty).
func Date(layout string) Matcher {
	if layout == "" {
		layout = "2006-01-02"
	}
	return timeMatcher{example: referenceTime.Format(layout), layout: layout, kind: rules.TypeDate}
}

// Time matches a time-only string formatted per layout ("15:04:05" if
// empty).
func Time(layout string) Matcher {
	if layout == "" {
		layout = "15:04:05"
	}
	return timeMatcher{example: referenceTime.Format(layout), layout: layout, kind: rules.TypeTime}
}

type timeMatcher struct {
	example string
	layout  string
	kind    rules.Type
}

func (timeMatcher) isMatcher()              {}
func (m timeMatcher) GetValue() interface{} { return m.example }

func (m timeMatcher) Rule() rules.Rule {
	switch m.kind {
	case rules.TypeDate:
		return rules.Date{Format: m.layout}
	case rules.TypeTime:
		return rules.Time{Format: m.layout}
	default:
		return rules.Timestamp{Format: m.layout}
	}
}
