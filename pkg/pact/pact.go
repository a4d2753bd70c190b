package pact

import (
	"context"
	"fmt"

	"github.com/pact-foundation/pact-core-go/internal/ffi"
	"github.com/pact-foundation/pact-core-go/internal/mockserver"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

// Pact is the consumer-side builder for an HTTP pact under construction,
// a thin fluent wrapper over internal/ffi's handle operations. Modelled on
// Deseao-pact-go's dsl.Pact, adapted from that package's out-of-process
// daemon client to this module's in-process FFI registry.
type Pact struct {
	Consumer string
	Provider string

	// PactDir is where WritePact saves the resulting pact file. Defaults
	// to "pacts" under the working directory.
	PactDir string

	handle ffi.PactHandle
}

// NewPact registers a new pact under construction.
func NewPact(consumer, provider string) *Pact {
	return &Pact{
		Consumer: consumer,
		Provider: provider,
		PactDir:  "pacts",
		handle:   ffi.NewPact(consumer, provider),
	}
}

// WithSpecification pins the pact's target specification version.
func (p *Pact) WithSpecification(v pactio.SpecVersion) *Pact {
	_ = ffi.WithSpecification(p.handle, v)
	return p
}

// WithMetadata attaches one namespaced metadata entry to the pact file.
func (p *Pact) WithMetadata(namespace, key, value string) *Pact {
	_ = ffi.WithPactMetadata(p.handle, namespace, key, value)
	return p
}

// AddInteraction starts a new HTTP interaction with the given description.
func (p *Pact) AddInteraction(description string) *Interaction {
	h, err := ffi.NewInteraction(p.handle, description)
	return &Interaction{handle: h, err: err}
}

// Verify starts a mock server for every interaction added so far, runs
// test against its base URL, and reports whether every configured
// interaction was exercised with no mismatch. The server is always
// cleaned up before Verify returns.
func (p *Pact) Verify(test func(baseURL string) error) error {
	port, handle, err := ffi.CreateMockServerForPact(p.handle, "", nil)
	if err != nil {
		return fmt.Errorf("pact: starting mock server: %w", err)
	}
	defer ffi.CleanupMockServer(context.Background(), handle)

	if err := test(fmt.Sprintf("http://127.0.0.1:%d", port)); err != nil {
		return err
	}

	matched, err := ffi.MockServerMatched(handle)
	if err != nil {
		return err
	}
	if !matched {
		mismatches, _ := ffi.MockServerMismatches(handle)
		return fmt.Errorf("pact: verification failed, mismatches: %s", mismatches)
	}
	return nil
}

// VerifyWithTLS is Verify, but the mock server is started with the given
// TLS material (nil generates a self-signed certificate).
func (p *Pact) VerifyWithTLS(tls *mockserver.TLSConfig, test func(baseURL string) error) error {
	if tls == nil {
		tls = &mockserver.TLSConfig{}
	}
	port, handle, err := ffi.CreateMockServerForPact(p.handle, "", tls)
	if err != nil {
		return fmt.Errorf("pact: starting mock server: %w", err)
	}
	defer ffi.CleanupMockServer(context.Background(), handle)

	if err := test(fmt.Sprintf("https://127.0.0.1:%d", port)); err != nil {
		return err
	}

	matched, err := ffi.MockServerMatched(handle)
	if err != nil {
		return err
	}
	if !matched {
		mismatches, _ := ffi.MockServerMismatches(handle)
		return fmt.Errorf("pact: verification failed, mismatches: %s", mismatches)
	}
	return nil
}

// WritePact serialises the pact built so far to PactDir.
func (p *Pact) WritePact() error {
	return ffi.WritePactFile(p.handle, p.PactDir)
}

// Interaction is one HTTP request/response expectation under construction.
// Every method returns the receiver for chaining; the first error
// encountered is recorded and surfaces from Error, short-circuiting
// subsequent calls so a long chain can be written without checking each
// step.
type Interaction struct {
	handle ffi.InteractionHandle
	err    error
}

// Error returns the first error recorded while building this interaction,
// if any.
func (i *Interaction) Error() error { return i.err }

// UponReceiving overwrites the interaction's description.
func (i *Interaction) UponReceiving(description string) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.UponReceiving(i.handle, description)
	return i
}

// Given adds a provider state with no parameters.
func (i *Interaction) Given(state string) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.Given(i.handle, state)
	return i
}

// GivenWithParam adds or extends a provider state with one parameter.
func (i *Interaction) GivenWithParam(state, key string, value interface{}) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.GivenWithParam(i.handle, state, key, value)
	return i
}

// WithRequest sets the request method and path.
func (i *Interaction) WithRequest(method, path string) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.WithRequest(i.handle, method, path)
	return i
}

// WithQuery appends one value to a query parameter.
func (i *Interaction) WithQuery(name, value string) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.WithQueryParameter(i.handle, name, value)
	return i
}

// WithHeader appends one value to a request header.
func (i *Interaction) WithHeader(name, value string) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.WithHeader(i.handle, ffi.PartRequest, name, value)
	return i
}

// WithResponseHeader appends one value to a response header.
func (i *Interaction) WithResponseHeader(name, value string) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.WithHeader(i.handle, ffi.PartResponse, name, value)
	return i
}

// WithJSONBody sets the request body. value may embed Matcher leaves,
// producing matching rules alongside the literal body the mock server
// replays requests against.
func (i *Interaction) WithJSONBody(value interface{}) *Interaction {
	if i.err != nil {
		return i
	}
	body, rl, err := buildBody(value)
	if err != nil {
		i.err = err
		return i
	}
	i.err = ffi.WithBody(i.handle, ffi.PartRequest, "application/json", body, rl, nil)
	return i
}

// WillRespondWith sets the expected response status.
func (i *Interaction) WillRespondWith(status int) *Interaction {
	if i.err != nil {
		return i
	}
	i.err = ffi.ResponseStatus(i.handle, uint16(status))
	return i
}

// WithResponseJSONBody sets the response body, with the same Matcher
// support as WithJSONBody.
func (i *Interaction) WithResponseJSONBody(value interface{}) *Interaction {
	if i.err != nil {
		return i
	}
	body, rl, err := buildBody(value)
	if err != nil {
		i.err = err
		return i
	}
	i.err = ffi.WithBody(i.handle, ffi.PartResponse, "application/json", body, rl, nil)
	return i
}
