// Package content holds the typed representations of HTTP requests,
// responses, and asynchronous messages that the rest of the core compares,
// scores, and serialises: OptionalBody, the content-type classifier, and
// the ordered query/header multimaps.
package content

import "strings"

// BodyState distinguishes the four states a body can be in. Missing and
// Empty are not interchangeable: Missing means "no assertion was made
// about this body", Empty means "a zero-length body was explicitly
// expected/observed".
type BodyState int

const (
	// Missing means no assertion is made about the body at all.
	Missing BodyState = iota
	// Null means the body was explicitly present and null (e.g. JSON `null`).
	Null
	// Empty means the body is present and has zero length.
	Empty
	// Present means the body holds concrete bytes, optionally typed.
	Present
)

func (s BodyState) String() string {
	switch s {
	case Missing:
		return "Missing"
	case Null:
		return "Null"
	case Empty:
		return "Empty"
	case Present:
		return "Present"
	default:
		return "Unknown"
	}
}

// OptionalBody is the four-state body model used throughout the core.
// The zero value is Missing.
type OptionalBody struct {
	state       BodyState
	bytes       []byte
	contentType *ContentType
}

// NewMissingBody returns a body with no assertion made.
func NewMissingBody() OptionalBody { return OptionalBody{state: Missing} }

// NewNullBody returns a body that is explicitly null.
func NewNullBody() OptionalBody { return OptionalBody{state: Null} }

// NewEmptyBody returns a body that is explicitly present but zero-length.
func NewEmptyBody() OptionalBody { return OptionalBody{state: Empty} }

// NewPresentBody returns a body with concrete content. ct may be nil when
// the content type is unknown.
func NewPresentBody(b []byte, ct *ContentType) OptionalBody {
	if len(b) == 0 {
		return OptionalBody{state: Empty, contentType: ct}
	}
	return OptionalBody{state: Present, bytes: b, contentType: ct}
}

// State reports which of the four states the body is in.
func (b OptionalBody) State() BodyState { return b.state }

// IsMissing reports whether no assertion was made about this body.
func (b OptionalBody) IsMissing() bool { return b.state == Missing }

// IsNull reports whether the body is explicitly null.
func (b OptionalBody) IsNull() bool { return b.state == Null }

// IsEmpty reports whether the body is present but zero-length.
func (b OptionalBody) IsEmpty() bool { return b.state == Empty }

// IsPresent reports whether the body holds concrete bytes.
func (b OptionalBody) IsPresent() bool { return b.state == Present }

// IsNullOrEmpty reports whether the body is Null or Empty, the two states
// that the matching engine treats interchangeably against an empty actual.
func (b OptionalBody) IsNullOrEmpty() bool { return b.state == Null || b.state == Empty }

// Bytes returns the raw body content, or nil if not Present.
func (b OptionalBody) Bytes() []byte {
	if b.state != Present {
		return nil
	}
	return b.bytes
}

// ContentType returns the declared content type, or nil if none was set.
func (b OptionalBody) ContentType() *ContentType { return b.contentType }

// ContentType is a parsed MIME type: a base type ("application/json") and
// an optional structured-syntax suffix ("application/hal+json" has suffix
// "json"), plus parameters (e.g. charset).
type ContentType struct {
	Base   string // e.g. "application/json"
	Suffix string // e.g. "json" from "application/hal+json"; empty if none
	Params map[string]string
}

// ParseContentType parses a Content-Type header value. An empty or
// unparsable value yields the zero ContentType (Base == "").
func ParseContentType(header string) ContentType {
	if header == "" {
		return ContentType{}
	}
	parts := strings.Split(header, ";")
	base := strings.ToLower(strings.TrimSpace(parts[0]))

	ct := ContentType{Base: base}
	if idx := strings.LastIndex(base, "+"); idx >= 0 {
		ct.Suffix = base[idx+1:]
	}

	if len(parts) > 1 {
		ct.Params = make(map[string]string, len(parts)-1)
		for _, p := range parts[1:] {
			kv := strings.SplitN(strings.TrimSpace(p), "=", 2)
			if len(kv) == 2 {
				ct.Params[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.Trim(strings.TrimSpace(kv[1]), `"`)
			}
		}
	}
	return ct
}

// String renders the content type back to a header value, including
// parameters if present.
func (c ContentType) String() string {
	if c.Base == "" {
		return ""
	}
	if len(c.Params) == 0 {
		return c.Base
	}
	var b strings.Builder
	b.WriteString(c.Base)
	for k, v := range c.Params {
		b.WriteString("; ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(v)
	}
	return b.String()
}

// family strips suffix/tree prefixes to the two well-known families this
// core special-cases: "json" and "xml".
func (c ContentType) family() string {
	if c.Suffix == "json" || c.Base == "application/json" || c.Base == "text/json" ||
		strings.HasSuffix(c.Base, "/json") {
		return "json"
	}
	if c.Suffix == "xml" || c.Base == "application/xml" || c.Base == "text/xml" ||
		strings.HasSuffix(c.Base, "/xml") {
		return "xml"
	}
	return ""
}

// IsJSON reports whether this content type denotes JSON, including
// structured-syntax suffixes like "application/hal+json".
func (c ContentType) IsJSON() bool { return c.family() == "json" }

// IsXML reports whether this content type denotes XML, including
// structured-syntax suffixes like "application/atom+xml".
func (c ContentType) IsXML() bool { return c.family() == "xml" }

// IsMultipart reports whether this is a multipart body (multipart/form-data
// or any other multipart/* type).
func (c ContentType) IsMultipart() bool {
	return c.Base == "multipart/form-data" || strings.HasPrefix(c.Base, "multipart/")
}

// IsOctetStream reports whether this is an untyped binary body.
func (c ContentType) IsOctetStream() bool { return c.Base == "application/octet-stream" }

// IsText reports whether this is a plain-text body: any "text/*" type, or
// no recognised structured type at all.
func (c ContentType) IsText() bool {
	if c.Base == "" {
		return true
	}
	if strings.HasPrefix(c.Base, "text/") && !c.IsXML() && !c.IsJSON() {
		return true
	}
	return false
}

// Equivalent reports whether two content types denote the same base family
// for the purposes of body-type dispatch (parameters like charset are
// ignored).
func (c ContentType) Equivalent(other ContentType) bool {
	if c.Base == other.Base {
		return true
	}
	cf, of := c.family(), other.family()
	return cf != "" && cf == of
}
