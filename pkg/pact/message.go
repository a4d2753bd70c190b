package pact

import (
	"encoding/json"
	"fmt"

	"github.com/pact-foundation/pact-core-go/internal/ffi"
)

// MessagePact is the consumer-side builder for an asynchronous-message
// pact under construction.
type MessagePact struct {
	Consumer string
	Provider string
	PactDir  string

	handle ffi.MessagePactHandle
}

// NewMessagePact registers a new message pact under construction.
func NewMessagePact(consumer, provider string) *MessagePact {
	return &MessagePact{
		Consumer: consumer,
		Provider: provider,
		PactDir:  "pacts",
		handle:   ffi.NewMessagePact(consumer, provider),
	}
}

// WithMetadata attaches one namespaced metadata entry to the message pact
// file.
func (p *MessagePact) WithMetadata(namespace, key, value string) *MessagePact {
	_ = ffi.WithMessagePactMetadata(p.handle, namespace, key, value)
	return p
}

// AddMessage starts a new message expectation with the given description.
func (p *MessagePact) AddMessage(description string) *Message {
	h, err := ffi.NewMessage(p.handle, description)
	return &Message{handle: h, err: err}
}

// WritePact serialises the message pact built so far to PactDir.
func (p *MessagePact) WritePact() error {
	return ffi.WriteMessagePactFile(p.handle, p.PactDir)
}

// Message is one asynchronous message expectation under construction.
type Message struct {
	handle ffi.MessageHandle
	err    error
}

// Error returns the first error recorded while building this message, if
// any.
func (m *Message) Error() error { return m.err }

// ExpectsToReceive overwrites the message's description.
func (m *Message) ExpectsToReceive(description string) *Message {
	if m.err != nil {
		return m
	}
	m.err = ffi.MessageExpectsToReceive(m.handle, description)
	return m
}

// Given adds a provider state with no parameters.
func (m *Message) Given(state string) *Message {
	if m.err != nil {
		return m
	}
	m.err = ffi.MessageGiven(m.handle, state)
	return m
}

// GivenWithParam adds or extends a provider state with one parameter.
func (m *Message) GivenWithParam(state, key string, value interface{}) *Message {
	if m.err != nil {
		return m
	}
	m.err = ffi.MessageGivenWithParam(m.handle, state, key, value)
	return m
}

// WithMetadata sets one message-level metadata entry (commonly used for
// transport headers like a Kafka message key or an AMQP routing key).
func (m *Message) WithMetadata(key string, value interface{}) *Message {
	if m.err != nil {
		return m
	}
	m.err = ffi.MessageWithMetadata(m.handle, key, value)
	return m
}

// WithJSONContents sets the message body. value may embed Matcher leaves,
// the same as Interaction.WithJSONBody.
func (m *Message) WithJSONContents(value interface{}) *Message {
	if m.err != nil {
		return m
	}
	body, rl, err := buildBody(value)
	if err != nil {
		m.err = err
		return m
	}
	m.err = ffi.MessageWithContents(m.handle, "application/json", body, rl, nil)
	return m
}

// Reify renders the message body with its generators applied and decodes
// it into v, the shape a message consumer handler actually receives.
func (m *Message) Reify(v interface{}) error {
	if m.err != nil {
		return m.err
	}
	raw, err := ffi.MessageReify(m.handle)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("pact: decoding reified message: %w", err)
	}
	return nil
}
