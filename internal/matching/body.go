package matching

import (
	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// DiffConfig governs how an object's key set is compared once no
// values-matcher applies.
type DiffConfig int

const (
	// AllowUnexpectedKeys requires expected ⊆ actual: every expected key
	// must be present and matching, extra actual keys are ignored. This is
	// the default for JSON/XML body matching.
	AllowUnexpectedKeys DiffConfig = iota
	// NoUnexpectedKeys requires exact key-set equality.
	NoUnexpectedKeys
)

// MatchBody dispatches on content type and the Missing/Null/Empty/Present
// lattice.
func MatchBody(cat *rules.Map, expected, actual content.OptionalBody) BodyMatchResult {
	if expected.IsMissing() {
		return BodyMatchResult{}
	}
	if expected.IsNullOrEmpty() {
		if actual.IsPresent() {
			return BodyMatchResult{Mismatches: []Mismatch{mismatch(BodyMismatch, "$", nil, actual.Bytes(),
				"expected empty/null body but received %d byte(s)", len(actual.Bytes()))}}
		}
		return BodyMatchResult{}
	}
	// expected.IsPresent()
	if actual.IsMissing() || actual.IsEmpty() {
		return BodyMatchResult{Mismatches: []Mismatch{mismatch(BodyMismatch, "$", expected.Bytes(), nil,
			"expected a body but actual was %s", actual.State())}}
	}

	expCT, actCT := ContentTypeOf(expected), ContentTypeOf(actual)
	if !expCT.Equivalent(actCT) {
		bodyCat := cat.Category(rules.CategoryHeader)
		if bodyCat == nil || !hasContentTypeMatcher(bodyCat) {
			m := mismatch(BodyTypeMismatch, "$", expCT.String(), actCT.String(),
				"expected content type %q but received %q", expCT.String(), actCT.String())
			return BodyMatchResult{TypeMismatch: &m}
		}
	}

	dispatchCT := expCT
	bodyRules := cat.Category(rules.CategoryBody)

	switch {
	case dispatchCT.IsJSON():
		return BodyMatchResult{Mismatches: MatchJSONBody(bodyRules, expected.Bytes(), actual.Bytes())}
	case dispatchCT.IsXML():
		return BodyMatchResult{Mismatches: MatchXMLBody(bodyRules, expected.Bytes(), actual.Bytes())}
	case dispatchCT.IsMultipart():
		return BodyMatchResult{Mismatches: MatchMultipartBody(cat, expected.Bytes(), actual.Bytes(), expCT)}
	case dispatchCT.IsOctetStream():
		return BodyMatchResult{Mismatches: MatchBinaryBody(bodyRules, expected.Bytes(), actual.Bytes())}
	default:
		return BodyMatchResult{Mismatches: MatchTextBody(bodyRules, expected.Bytes(), actual.Bytes())}
	}
}

// ContentTypeOf returns the body's declared content type, or the zero
// (text-dispatching) ContentType if none was set.
func ContentTypeOf(b content.OptionalBody) content.ContentType {
	if ct := b.ContentType(); ct != nil {
		return *ct
	}
	return content.ContentType{}
}

func hasContentTypeMatcher(headerCat *rules.Category) bool {
	if headerCat == nil {
		return false
	}
	_, ok := headerCat.UnionMatch([]string{"Content-Type"})
	return ok
}
