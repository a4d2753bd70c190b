package ffi

import (
	"bytes"
	"mime/multipart"
	"net/textproto"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/generators"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// Part selects which side of an interaction a With* operation mutates,
// mirroring the real FFI's `InteractionPart` enum.
type Part int

const (
	PartRequest Part = iota
	PartResponse
)

// NewPact registers a new HTTP pact under construction and returns its
// handle.
func NewPact(consumer, provider string) PactHandle {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.nextPact++
	h := PactHandle(global.nextPact)
	global.pacts[h] = &pactio.Pact{
		Consumer:    pactio.Party{Name: consumer},
		Provider:    pactio.Party{Name: provider},
		Metadata:    map[string]map[string]string{},
		SpecVersion: pactio.V3,
	}
	return h
}

// NewInteraction appends a new interaction with the given description and
// returns its handle.
func NewInteraction(pact PactHandle, description string) (InteractionHandle, error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	p, ok := global.pacts[pact]
	if !ok {
		return 0, ErrInvalidHandle
	}
	p.Interactions = append(p.Interactions, &pactio.Interaction{Description: description})
	global.nextInteraction++
	h := InteractionHandle(global.nextInteraction)
	global.interactions[h] = &interactionRef{pact: pact, index: len(p.Interactions) - 1}
	return h, nil
}

// UponReceiving overwrites the interaction's description.
func UponReceiving(h InteractionHandle, description string) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		in.Description = description
		return nil
	})
}

// Given adds a provider state with no parameters.
func Given(h InteractionHandle, state string) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		in.ProviderStates = append(in.ProviderStates, pactio.ProviderState{Name: state})
		return nil
	})
}

// GivenWithParam adds a provider state carrying one parameter, merging into
// an existing state of the same name if one was already added.
func GivenWithParam(h InteractionHandle, state, key string, value interface{}) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		for i := range in.ProviderStates {
			if in.ProviderStates[i].Name == state {
				if in.ProviderStates[i].Params == nil {
					in.ProviderStates[i].Params = map[string]interface{}{}
				}
				in.ProviderStates[i].Params[key] = value
				return nil
			}
		}
		in.ProviderStates = append(in.ProviderStates, pactio.ProviderState{
			Name:   state,
			Params: map[string]interface{}{key: value},
		})
		return nil
	})
}

// WithRequest sets the interaction's request method and path.
func WithRequest(h InteractionHandle, method, path string) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		in.Request.Method = method
		in.Request.Path = path
		return nil
	})
}

// ResponseStatus sets the expected response status.
func ResponseStatus(h InteractionHandle, status uint16) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		in.Response.Status = status
		return nil
	})
}

// WithQueryParameter appends one value to a query parameter name, in
// caller-supplied order. Matching rules for a query path are set separately via
// WithMatchingRule, matching how the real FFI keeps value-setting and
// rule-setting as distinct calls.
func WithQueryParameter(h InteractionHandle, name, value string) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		if in.Request.Query == nil {
			in.Request.Query = content.NewOrderedMap()
		}
		in.Request.Query.Add(name, value)
		return nil
	})
}

// WithHeader appends one value to a header name on the given side.
func WithHeader(h InteractionHandle, part Part, name, value string) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		headers := headersFor(in, part)
		if *headers == nil {
			*headers = content.NewOrderedMap()
		}
		(*headers).Add(name, value)
		return nil
	})
}

func headersFor(in *pactio.Interaction, part Part) **content.OrderedMap {
	if part == PartResponse {
		return &in.Response.Headers
	}
	return &in.Request.Headers
}

// WithMatchingRule attaches a matching rule at path within category to the
// given side of an interaction.
// The side's *rules.Map (see rulesFor) is created lazily.
func WithMatchingRule(h InteractionHandle, part Part, category rules.CategoryName, path string, rl rules.RuleList) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		target := rulesFor(in, part)
		if *target == nil {
			*target = rules.NewMap()
		}
		return (*target).Category(category).Set(path, rl)
	})
}

func rulesFor(in *pactio.Interaction, part Part) **rules.Map {
	if part == PartResponse {
		return &in.Response.Rules
	}
	return &in.Request.Rules
}

// WithBody sets the body for the given side, along with its matching
// rules and generators if any. rules/gens may be nil.
func WithBody(h InteractionHandle, part Part, contentType string, body []byte, rl *rules.Map, gens *generators.Map) error {
	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		ct := content.ParseContentType(contentType)
		optBody := content.NewPresentBody(body, &ct)
		if part == PartResponse {
			in.Response.Body = optBody
			if rl != nil {
				in.Response.Rules = rl
			}
			setGenerators(&in.ResponseGenerators, gens)
		} else {
			in.Request.Body = optBody
			if rl != nil {
				in.Request.Rules = rl
			}
			setGenerators(&in.RequestGenerators, gens)
		}
		return nil
	})
}

// WithBinaryFile sets a raw binary body with no JSON/XML/text
// interpretation: a thin alias over WithBody with an octet-stream content
// type fallback when the caller leaves one unset.
func WithBinaryFile(h InteractionHandle, part Part, contentType string, body []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return WithBody(h, part, contentType, body, nil, nil)
}

// WithMultipartFile sets a multipart/form-data body built from a single
// named file part, MIME-encoding it with
// mime/multipart so internal/matching's multipart body matcher (which
// parses real multipart/form-data, boundary and all) can compare it like
// any body a real HTTP client would have sent.
func WithMultipartFile(h InteractionHandle, part Part, partName, fileName, contentType string, body []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+partName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	fw, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := fw.Write(body); err != nil {
		return err
	}
	boundary := w.Boundary()
	if err := w.Close(); err != nil {
		return err
	}

	return global.withInteraction(h, func(_ *pactio.Pact, in *pactio.Interaction) error {
		ct := content.ParseContentType("multipart/form-data; boundary=" + boundary)
		optBody := content.NewPresentBody(buf.Bytes(), &ct)
		if part == PartResponse {
			in.Response.Body = optBody
		} else {
			in.Request.Body = optBody
		}
		return nil
	})
}

// WithSpecification pins the pact's target specification version.
func WithSpecification(pact PactHandle, v pactio.SpecVersion) error {
	return global.withPact(pact, func(p *pactio.Pact) error {
		p.SpecVersion = v
		return nil
	})
}

// WithPactMetadata sets one namespaced metadata entry.
func WithPactMetadata(pact PactHandle, namespace, key, value string) error {
	return global.withPact(pact, func(p *pactio.Pact) error {
		if p.Metadata == nil {
			p.Metadata = map[string]map[string]string{}
		}
		if p.Metadata[namespace] == nil {
			p.Metadata[namespace] = map[string]string{}
		}
		p.Metadata[namespace][key] = value
		return nil
	})
}

func setGenerators(dst **generators.Map, src *generators.Map) {
	if src == nil {
		return
	}
	*dst = src
}
