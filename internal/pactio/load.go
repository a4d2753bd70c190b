package pactio

import (
	"fmt"
	"os"

	"github.com/pact-foundation/pact-core-go/internal/content"
)

// LoadErr enumerates the failure modes of Load.
type LoadErr int

const (
	// LoadIOError covers file-not-found and any other read failure.
	LoadIOError LoadErr = iota
	// LoadParseError covers malformed JSON or a document missing the
	// consumer/provider fields every pact must carry.
	LoadParseError
)

// LoadError wraps a LoadErr with the underlying cause.
type LoadError struct {
	Kind LoadErr
	Err  error
}

func (e *LoadError) Error() string { return e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and parses a pact file from path, detecting its specification
// version from metadata.pactSpecification.version and dispatching the interaction
// list accordingly.
func Load(path string) (*Pact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: LoadIOError, Err: fmt.Errorf("pactio: reading %s: %w", path, err)}
	}
	return Parse(raw)
}

// Parse decodes a pact document already held in memory (used by Load, and
// directly by callers receiving a pact body over the wire, e.g. a
// verification request).
func Parse(raw []byte) (*Pact, error) {
	tree, err := content.ParseJSON(raw)
	if err != nil {
		return nil, &LoadError{Kind: LoadParseError, Err: fmt.Errorf("pactio: invalid JSON: %w", err)}
	}
	doc, ok := tree.(map[string]interface{})
	if !ok {
		return nil, &LoadError{Kind: LoadParseError, Err: fmt.Errorf("pactio: document root is not an object")}
	}

	version := detectSpecVersion(doc)

	p := &Pact{
		Consumer:    Party{Name: stringField(nestedObject(doc, "consumer"), "name")},
		Provider:    Party{Name: stringField(nestedObject(doc, "provider"), "name")},
		SpecVersion: version,
	}
	if p.Consumer.Name == "" || p.Provider.Name == "" {
		return nil, &LoadError{Kind: LoadParseError, Err: fmt.Errorf("pactio: pact is missing consumer or provider name")}
	}

	if metaRaw, ok := doc["metadata"].(map[string]interface{}); ok {
		p.Metadata = decodeMetadata(metaRaw)
	}

	if interactionsRaw, ok := doc["interactions"].([]interface{}); ok {
		for i, ir := range interactionsRaw {
			obj, ok := ir.(map[string]interface{})
			if !ok {
				continue
			}
			interaction, err := decodeInteraction(obj)
			if err != nil {
				return nil, &LoadError{Kind: LoadParseError, Err: fmt.Errorf("pactio: interaction %d: %w", i, err)}
			}
			p.Interactions = append(p.Interactions, interaction)
		}
	}

	if messagesRaw, ok := doc["messages"].([]interface{}); ok {
		for i, mr := range messagesRaw {
			obj, ok := mr.(map[string]interface{})
			if !ok {
				continue
			}
			msg, err := decodeMessageEntry(obj)
			if err != nil {
				return nil, &LoadError{Kind: LoadParseError, Err: fmt.Errorf("pactio: message %d: %w", i, err)}
			}
			p.Messages = append(p.Messages, msg)
		}
	}

	if syncRaw, ok := doc["synchronousMessages"].([]interface{}); ok {
		for i, sr := range syncRaw {
			obj, ok := sr.(map[string]interface{})
			if !ok {
				continue
			}
			sm, err := decodeSynchronousMessage(obj)
			if err != nil {
				return nil, &LoadError{Kind: LoadParseError, Err: fmt.Errorf("pactio: synchronous message %d: %w", i, err)}
			}
			p.SynchronousMessages = append(p.SynchronousMessages, sm)
		}
	}

	return p, nil
}

func detectSpecVersion(doc map[string]interface{}) SpecVersion {
	if meta, ok := doc["metadata"].(map[string]interface{}); ok {
		if specRaw, ok := meta["pactSpecification"].(map[string]interface{}); ok {
			if v, ok := specRaw["version"].(string); ok {
				if sv := ParseSpecVersion(v); sv != Unknown {
					return sv
				}
			}
		}
		// Legacy V1/V1.1 form: metadata["pact-specification"]["version"].
		if specRaw, ok := meta["pact-specification"].(map[string]interface{}); ok {
			if v, ok := specRaw["version"].(string); ok {
				if sv := ParseSpecVersion(v); sv != Unknown {
					return sv
				}
			}
		}
	}
	if _, ok := doc["synchronousMessages"]; ok {
		return V4
	}
	if _, ok := doc["messages"]; ok {
		return V3
	}
	return V2
}

func nestedObject(doc map[string]interface{}, key string) map[string]interface{} {
	obj, _ := doc[key].(map[string]interface{})
	return obj
}

func stringField(obj map[string]interface{}, key string) string {
	if obj == nil {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

func decodeMetadata(raw map[string]interface{}) map[string]map[string]string {
	out := make(map[string]map[string]string, len(raw))
	for section, v := range raw {
		obj, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		fields := make(map[string]string, len(obj))
		for k, fv := range obj {
			if s, ok := fv.(string); ok {
				fields[k] = s
			}
		}
		out[section] = fields
	}
	return out
}

func decodeInteraction(obj map[string]interface{}) (*Interaction, error) {
	desc, _ := obj["description"].(string)
	reqObj, _ := obj["request"].(map[string]interface{})
	respObj, _ := obj["response"].(map[string]interface{})
	req, err := decodeRequest(reqObj)
	if err != nil {
		return nil, err
	}
	resp, err := decodeResponse(respObj)
	if err != nil {
		return nil, err
	}
	reqGen, err := decodeGenerators(nestedGenerators(reqObj))
	if err != nil {
		return nil, err
	}
	respGen, err := decodeGenerators(nestedGenerators(respObj))
	if err != nil {
		return nil, err
	}
	return &Interaction{
		Description:        desc,
		ProviderStates:     decodeProviderStates(obj["providerStates"]),
		Request:            req,
		Response:           resp,
		RequestGenerators:  reqGen,
		ResponseGenerators: respGen,
	}, nil
}

func decodeMessageEntry(obj map[string]interface{}) (*Message, error) {
	desc, _ := obj["description"].(string)
	msg, err := decodeMessage(obj)
	if err != nil {
		return nil, err
	}
	gen, err := decodeGenerators(obj["generators"])
	if err != nil {
		return nil, err
	}
	return &Message{
		Description:    desc,
		ProviderStates: decodeProviderStates(obj["providerStates"]),
		Contents:       msg,
		Generators:     gen,
	}, nil
}

func decodeSynchronousMessage(obj map[string]interface{}) (*SynchronousMessage, error) {
	desc, _ := obj["description"].(string)
	reqObj, _ := obj["request"].(map[string]interface{})
	respObj, _ := obj["response"].(map[string]interface{})
	req, err := decodeMessage(reqObj)
	if err != nil {
		return nil, err
	}
	resp, err := decodeMessage(respObj)
	if err != nil {
		return nil, err
	}
	reqGen, err := decodeGenerators(nestedGenerators(reqObj))
	if err != nil {
		return nil, err
	}
	respGen, err := decodeGenerators(nestedGenerators(respObj))
	if err != nil {
		return nil, err
	}
	return &SynchronousMessage{
		Description:        desc,
		ProviderStates:     decodeProviderStates(obj["providerStates"]),
		Request:            req,
		Response:           resp,
		RequestGenerators:  reqGen,
		ResponseGenerators: respGen,
	}, nil
}

func nestedGenerators(obj map[string]interface{}) interface{} {
	if obj == nil {
		return nil
	}
	return obj["generators"]
}
