// Package ffi is the Go-shaped equivalent of the C-ABI collaborator
// boundary: integer handles over a process-wide registry and the
// documented error-code taxonomy. Panics are recovered only inside
// mockserver.Manager.Create (reached through CreateMockServer); the other
// operations here do not recover panics. There is no cgo here: callers are other Go packages
// (pkg/pact, cmd/pactcore) standing in for what would otherwise be a
// foreign-language binding.
package ffi

import (
	"sync"

	"github.com/pact-foundation/pact-core-go/internal/mockserver"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

// PactHandle identifies an in-progress HTTP pact under construction.
type PactHandle uint32

// InteractionHandle identifies one interaction within a PactHandle's pact.
type InteractionHandle uint32

// MessagePactHandle identifies an in-progress message pact under
// construction.
type MessagePactHandle uint32

// MessageHandle identifies one message within a MessagePactHandle's pact.
type MessageHandle uint32

// MockServerHandle identifies a running or stopped mock server, per
// mockserver.Entry.ID rather than a
// small integer, since that id is what create_mock_server already hands
// back as the FFI-visible identity.
type MockServerHandle = string

// registry is the single process-wide, lock-protected structure backing
// every handle table. It is created at package initialisation.
type registry struct {
	mu sync.Mutex

	nextPact        uint32
	nextInteraction uint32
	nextMessagePact uint32
	nextMessage     uint32

	pacts        map[PactHandle]*pactio.Pact
	interactions map[InteractionHandle]*interactionRef
	msgPacts     map[MessagePactHandle]*pactio.Pact
	messages     map[MessageHandle]*messageRef

	servers *mockserver.Manager
}

// interactionRef locates one interaction inside its owning pact, since
// pactio.Pact stores interactions as a slice rather than a handle-keyed
// map.
type interactionRef struct {
	pact  PactHandle
	index int
}

type messageRef struct {
	pact  MessagePactHandle
	index int
}

var global = newRegistry()

func newRegistry() *registry {
	return &registry{
		pacts:        make(map[PactHandle]*pactio.Pact),
		interactions: make(map[InteractionHandle]*interactionRef),
		msgPacts:     make(map[MessagePactHandle]*pactio.Pact),
		messages:     make(map[MessageHandle]*messageRef),
		servers:      mockserver.NewManager(nil),
	}
}

// Reset discards every handle and running mock server. Exposed for test
// isolation between packages that exercise the FFI surface; real callers
// never need it.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.pacts = make(map[PactHandle]*pactio.Pact)
	global.interactions = make(map[InteractionHandle]*interactionRef)
	global.msgPacts = make(map[MessagePactHandle]*pactio.Pact)
	global.messages = make(map[MessageHandle]*messageRef)
	global.nextPact, global.nextInteraction, global.nextMessagePact, global.nextMessage = 0, 0, 0, 0
	global.servers = mockserver.NewManager(nil)
}

// withPact runs fn with the pact identified by h held under the registry
// lock. fn must not itself call back into the registry.
func (r *registry) withPact(h PactHandle, fn func(*pactio.Pact) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pacts[h]
	if !ok {
		return ErrInvalidHandle
	}
	return fn(p)
}

func (r *registry) withInteraction(h InteractionHandle, fn func(*pactio.Pact, *pactio.Interaction) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.interactions[h]
	if !ok {
		return ErrInvalidHandle
	}
	p, ok := r.pacts[ref.pact]
	if !ok || ref.index >= len(p.Interactions) {
		return ErrInvalidHandle
	}
	return fn(p, p.Interactions[ref.index])
}

func (r *registry) withMessagePact(h MessagePactHandle, fn func(*pactio.Pact) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.msgPacts[h]
	if !ok {
		return ErrInvalidHandle
	}
	return fn(p)
}

func (r *registry) withMessage(h MessageHandle, fn func(*pactio.Pact, *pactio.Message) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.messages[h]
	if !ok {
		return ErrInvalidHandle
	}
	p, ok := r.msgPacts[ref.pact]
	if !ok || ref.index >= len(p.Messages) {
		return ErrInvalidHandle
	}
	return fn(p, p.Messages[ref.index])
}
