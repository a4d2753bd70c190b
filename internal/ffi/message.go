package ffi

import (
	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/generators"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// NewMessagePact registers a new asynchronous-message pact under
// construction.
func NewMessagePact(consumer, provider string) MessagePactHandle {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.nextMessagePact++
	h := MessagePactHandle(global.nextMessagePact)
	global.msgPacts[h] = &pactio.Pact{
		Consumer:    pactio.Party{Name: consumer},
		Provider:    pactio.Party{Name: provider},
		Metadata:    map[string]map[string]string{},
		SpecVersion: pactio.V3,
	}
	return h
}

// NewMessage appends a new message with the given description and returns
// its handle.
func NewMessage(pact MessagePactHandle, description string) (MessageHandle, error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	p, ok := global.msgPacts[pact]
	if !ok {
		return 0, ErrInvalidHandle
	}
	p.Messages = append(p.Messages, &pactio.Message{Description: description})
	global.nextMessage++
	h := MessageHandle(global.nextMessage)
	global.messages[h] = &messageRef{pact: pact, index: len(p.Messages) - 1}
	return h, nil
}

// MessageExpectsToReceive overwrites a message's description.
func MessageExpectsToReceive(h MessageHandle, description string) error {
	return global.withMessage(h, func(_ *pactio.Pact, m *pactio.Message) error {
		m.Description = description
		return nil
	})
}

// MessageGiven adds a provider state with no parameters.
func MessageGiven(h MessageHandle, state string) error {
	return global.withMessage(h, func(_ *pactio.Pact, m *pactio.Message) error {
		m.ProviderStates = append(m.ProviderStates, pactio.ProviderState{Name: state})
		return nil
	})
}

// MessageGivenWithParam adds or extends a provider state with one
// parameter.
func MessageGivenWithParam(h MessageHandle, state, key string, value interface{}) error {
	return global.withMessage(h, func(_ *pactio.Pact, m *pactio.Message) error {
		for i := range m.ProviderStates {
			if m.ProviderStates[i].Name == state {
				if m.ProviderStates[i].Params == nil {
					m.ProviderStates[i].Params = map[string]interface{}{}
				}
				m.ProviderStates[i].Params[key] = value
				return nil
			}
		}
		m.ProviderStates = append(m.ProviderStates, pactio.ProviderState{
			Name:   state,
			Params: map[string]interface{}{key: value},
		})
		return nil
	})
}

// MessageWithContents sets the message body, its matching rules, and its
// generators.
func MessageWithContents(h MessageHandle, contentType string, body []byte, rl *rules.Map, gens *generators.Map) error {
	return global.withMessage(h, func(_ *pactio.Pact, m *pactio.Message) error {
		ct := content.ParseContentType(contentType)
		m.Contents.Contents = content.NewPresentBody(body, &ct)
		m.Contents.Rules = rl
		if gens != nil {
			m.Generators = gens
		}
		return nil
	})
}

// MessageWithMetadata sets one message-level metadata entry.
func MessageWithMetadata(h MessageHandle, key string, value interface{}) error {
	return global.withMessage(h, func(_ *pactio.Pact, m *pactio.Message) error {
		if m.Contents.Metadata == nil {
			m.Contents.Metadata = map[string]interface{}{}
		}
		m.Contents.Metadata[key] = value
		return nil
	})
}

// MessageReify renders the message body with its generators applied
//, returning the JSON-encoded result callers reify
// test fixtures from.
func MessageReify(h MessageHandle) (string, error) {
	var out string
	err := global.withMessage(h, func(_ *pactio.Pact, m *pactio.Message) error {
		body := m.Contents.Contents
		if !body.IsPresent() {
			out = "null"
			return nil
		}
		if m.Generators == nil || len(m.Generators.Names()) == 0 {
			out = string(body.Bytes())
			return nil
		}
		parsed, err := content.ParseJSON(body.Bytes())
		if err != nil {
			out = string(body.Bytes())
			return nil
		}
		reified, err := generators.Apply(m.Generators.Category(generators.CategoryBody), generators.Generate, &generators.Context{}, parsed)
		if err != nil {
			return err
		}
		b, err := content.MarshalJSON(reified)
		if err != nil {
			return err
		}
		out = string(b)
		return nil
	})
	return out, err
}

// WithMessagePactMetadata sets one namespaced metadata entry on a message
// pact.
func WithMessagePactMetadata(pact MessagePactHandle, namespace, key, value string) error {
	return global.withMessagePact(pact, func(p *pactio.Pact) error {
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
