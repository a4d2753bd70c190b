// Package pactio loads, merges, and writes pact files: the JSON document
// exchanged between consumer and provider tests.
package pactio

import (
	"github.com/pact-foundation/pact-core-go/internal/generators"
	"github.com/pact-foundation/pact-core-go/internal/matching"
)

// SpecVersion is a pact specification version.
type SpecVersion int

// Specification versions, ordered so the zero value is the least
// specific and comparisons (`max(a, b)`) pick the newer one.
const (
	Unknown SpecVersion = iota
	V1
	V1_1
	V2
	V3
	V4
)

func (v SpecVersion) String() string {
	switch v {
	case V1:
		return "1.0.0"
	case V1_1:
		return "1.1.0"
	case V2:
		return "2.0.0"
	case V3:
		return "3.0.0"
	case V4:
		return "4.0"
	default:
		return "unknown"
	}
}

// ParseSpecVersion maps a "pactSpecification.version" string to a
// SpecVersion, tolerating the legacy "1.0.0"/"2.0.0" forms and the bare
// "4.0" V4 uses.
func ParseSpecVersion(s string) SpecVersion {
	switch s {
	case "1.0.0", "1.0":
		return V1
	case "1.1.0", "1.1":
		return V1_1
	case "2.0.0", "2.0":
		return V2
	case "3.0.0", "3.0":
		return V3
	case "4.0.0", "4.0":
		return V4
	default:
		return Unknown
	}
}

// Party is a named consumer or provider.
type Party struct {
	Name string
}

// ProviderState is a named precondition with free-form parameters.
type ProviderState struct {
	Name   string
	Params map[string]interface{}
}

// RequestGenerators/ResponseGenerators live alongside the matching.Expected*
// types rather than inside internal/content, since generators (like
// matching rules) are a concern attached to a request/response by the pact
// document, not an intrinsic property of the content model itself.

// Interaction is a synchronous HTTP request/response pair. Request
// and Response carry their matching rules inline (matching.ExpectedRequest
// / ExpectedResponse); Generators mirror that split so a generator applied
// to a request path and one applied to a response path don't collide in
// one flat map.
type Interaction struct {
	Description      string
	ProviderStates   []ProviderState
	Request          matching.ExpectedRequest
	Response         matching.ExpectedResponse
	RequestGenerators  *generators.Map
	ResponseGenerators *generators.Map
}

// Message is an asynchronous interaction: contents plus metadata, no
// request/response pair.
type Message struct {
	Description    string
	ProviderStates []ProviderState
	Contents       matching.ExpectedMessage
	Generators     *generators.Map
}

// SynchronousMessage is the V4-only request/response-as-messages kind
// used for non-HTTP RPC contracts.
type SynchronousMessage struct {
	Description        string
	ProviderStates      []ProviderState
	Request             matching.ExpectedMessage
	Response             matching.ExpectedMessage
	RequestGenerators    *generators.Map
	ResponseGenerators   *generators.Map
}

// Pact is the root document: a consumer, a provider, an ordered
// interaction list, pact-level metadata, and the specification version it
// was (or will be) written at.
type Pact struct {
	Consumer            Party
	Provider             Party
	Interactions         []*Interaction
	Messages             []*Message
	SynchronousMessages  []*SynchronousMessage
	Metadata             map[string]map[string]string
	SpecVersion          SpecVersion
}

// DefaultFilename returns "<consumer>-<provider>.json".
func (p *Pact) DefaultFilename() string {
	return p.Consumer.Name + "-" + p.Provider.Name + ".json"
}
