package pactio

import (
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/generators"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// encodeOrderedMap renders an *content.OrderedMap as {name: [values...]},
// the shape used for both query parameters and headers.
func encodeOrderedMap(m *content.OrderedMap) map[string]interface{} {
	if m == nil || m.Len() == 0 {
		return nil
	}
	out := make(map[string]interface{}, m.Len())
	for _, name := range m.Names() {
		vals, _ := m.Get(name)
		arr := make([]interface{}, len(vals))
		for i, v := range vals {
			arr[i] = v
		}
		out[name] = arr
	}
	return out
}

func decodeOrderedMap(raw interface{}) *content.OrderedMap {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	m := content.NewOrderedMap()
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch v := obj[name].(type) {
		case []interface{}:
			for _, e := range v {
				if s, ok := e.(string); ok {
					m.Add(name, s)
				}
			}
		case string:
			m.Add(name, v)
		}
	}
	return m
}

// encodeBody renders an OptionalBody as a self-describing envelope:
// JSON content is kept as a native tree for readability, everything else
// is base64-encoded with an explicit contentType.
func encodeBody(b content.OptionalBody) map[string]interface{} {
	out := map[string]interface{}{"state": b.State().String()}
	if ct := b.ContentType(); ct != nil {
		out["contentType"] = ct.String()
	}
	if !b.IsPresent() {
		return out
	}
	raw := b.Bytes()
	if ct := b.ContentType(); ct != nil && ct.IsJSON() {
		if tree, err := content.ParseJSON(raw); err == nil {
			out["content"] = tree
			return out
		}
	}
	out["content"] = base64.StdEncoding.EncodeToString(raw)
	out["encoding"] = "base64"
	return out
}

func decodeBody(raw interface{}) (content.OptionalBody, error) {
	if raw == nil {
		return content.NewMissingBody(), nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return content.OptionalBody{}, fmt.Errorf("pactio: body envelope is not an object")
	}
	state, _ := obj["state"].(string)
	var ct *content.ContentType
	if s, ok := obj["contentType"].(string); ok && s != "" {
		parsed := content.ParseContentType(s)
		ct = &parsed
	}
	switch state {
	case "Missing", "":
		return content.NewMissingBody(), nil
	case "Null":
		return content.NewNullBody(), nil
	case "Empty":
		return content.NewEmptyBody(), nil
	case "Present":
		if encoding, _ := obj["encoding"].(string); encoding == "base64" {
			s, _ := obj["content"].(string)
			raw, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return content.OptionalBody{}, fmt.Errorf("pactio: invalid base64 body: %w", err)
			}
			return content.NewPresentBody(raw, ct), nil
		}
		raw, err := content.MarshalJSON(obj["content"])
		if err != nil {
			return content.OptionalBody{}, fmt.Errorf("pactio: failed to re-marshal JSON body: %w", err)
		}
		return content.NewPresentBody(raw, ct), nil
	default:
		return content.OptionalBody{}, fmt.Errorf("pactio: unknown body state %q", state)
	}
}

func encodeRequest(r matching.ExpectedRequest) map[string]interface{} {
	out := map[string]interface{}{
		"method": r.NormalizedMethod(),
		"path":   r.Path,
		"body":   encodeBody(r.Body),
	}
	if q := encodeOrderedMap(r.Query); q != nil {
		out["query"] = q
	}
	if h := encodeOrderedMap(r.Headers); h != nil {
		out["headers"] = h
	}
	out["matchingRules"] = rules.ToWireV3(rulesOf(r.Rules))
	return out
}

func decodeRequest(obj map[string]interface{}) (matching.ExpectedRequest, error) {
	if obj == nil {
		return matching.ExpectedRequest{}, fmt.Errorf("pactio: request is missing")
	}
	method, _ := obj["method"].(string)
	path, _ := obj["path"].(string)
	body, err := decodeBody(obj["body"])
	if err != nil {
		return matching.ExpectedRequest{}, err
	}
	m, err := decodeMatchingRules(obj["matchingRules"])
	if err != nil {
		return matching.ExpectedRequest{}, err
	}
	return matching.ExpectedRequest{
		Request: content.Request{
			Method:  method,
			Path:    path,
			Query:   decodeOrderedMap(obj["query"]),
			Headers: decodeOrderedMap(obj["headers"]),
			Body:    body,
		},
		Rules: m,
	}, nil
}

func encodeResponse(r matching.ExpectedResponse) map[string]interface{} {
	out := map[string]interface{}{
		"status": r.Status,
		"body":   encodeBody(r.Body),
	}
	if h := encodeOrderedMap(r.Headers); h != nil {
		out["headers"] = h
	}
	out["matchingRules"] = rules.ToWireV3(rulesOf(r.Rules))
	return out
}

func decodeResponse(obj map[string]interface{}) (matching.ExpectedResponse, error) {
	if obj == nil {
		return matching.ExpectedResponse{}, fmt.Errorf("pactio: response is missing")
	}
	status, _ := numField(obj, "status")
	body, err := decodeBody(obj["body"])
	if err != nil {
		return matching.ExpectedResponse{}, err
	}
	m, err := decodeMatchingRules(obj["matchingRules"])
	if err != nil {
		return matching.ExpectedResponse{}, err
	}
	return matching.ExpectedResponse{
		Response: content.Response{
			Status:  uint16(status),
			Headers: decodeOrderedMap(obj["headers"]),
			Body:    body,
		},
		Rules: m,
	}, nil
}

func encodeMessage(msg matching.ExpectedMessage) map[string]interface{} {
	out := map[string]interface{}{
		"description": msg.Description,
		"contents":    encodeBody(msg.Contents),
	}
	if len(msg.Metadata) > 0 {
		out["metadata"] = msg.Metadata
	}
	out["matchingRules"] = rules.ToWireV3(rulesOf(msg.Rules))
	return out
}

func decodeMessage(obj map[string]interface{}) (matching.ExpectedMessage, error) {
	if obj == nil {
		return matching.ExpectedMessage{}, fmt.Errorf("pactio: message is missing")
	}
	desc, _ := obj["description"].(string)
	contents, err := decodeBody(obj["contents"])
	if err != nil {
		return matching.ExpectedMessage{}, err
	}
	metadata, _ := obj["metadata"].(map[string]interface{})
	m, err := decodeMatchingRules(obj["matchingRules"])
	if err != nil {
		return matching.ExpectedMessage{}, err
	}
	return matching.ExpectedMessage{
		Message: content.Message{
			Description: desc,
			Contents:    contents,
			Metadata:    metadata,
		},
		Rules: m,
	}, nil
}

func rulesOf(m *rules.Map) *rules.Map {
	if m == nil {
		return rules.NewMap()
	}
	return m
}

func decodeMatchingRules(raw interface{}) (*rules.Map, error) {
	if raw == nil {
		return rules.NewMap(), nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return rules.NewMap(), nil
	}
	// V3/V4 entries carry a "matchers" wrapper per category; a flat V2-style
	// object never does, so the presence of that wrapper on any one
	// category is enough to tell the shapes apart.
	isV3 := false
	for _, v := range obj {
		if catObj, ok := v.(map[string]interface{}); ok {
			if _, ok := catObj["matchers"]; ok {
				isV3 = true
				break
			}
		}
	}
	if isV3 {
		return rules.FromWireV3(obj)
	}
	return rules.FromWireV2(obj)
}

func numField(obj map[string]interface{}, key string) (float64, bool) {
	v, ok := obj[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func encodeProviderStates(ps []ProviderState) []interface{} {
	if len(ps) == 0 {
		return nil
	}
	out := make([]interface{}, len(ps))
	for i, p := range ps {
		entry := map[string]interface{}{"name": p.Name}
		if len(p.Params) > 0 {
			entry["params"] = p.Params
		}
		out[i] = entry
	}
	return out
}

func decodeProviderStates(raw interface{}) []ProviderState {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]ProviderState, 0, len(arr))
	for _, e := range arr {
		obj, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		params, _ := obj["params"].(map[string]interface{})
		out = append(out, ProviderState{Name: name, Params: params})
	}
	return out
}

func encodeGenerators(m *generators.Map) map[string]interface{} {
	if m == nil {
		return nil
	}
	wire := generators.ToWire(m)
	if len(wire) == 0 {
		return nil
	}
	return wire
}

func decodeGenerators(raw interface{}) (*generators.Map, error) {
	if raw == nil {
		return generators.NewMap(), nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return generators.NewMap(), nil
	}
	return generators.FromWire(obj)
}

// encodeDocument renders p in the wire shape used by Write: a top-level
// object keyed by consumer/provider/interactions/messages/
// synchronousMessages/metadata, the same shape Load/Parse reads back.
func encodeDocument(p *Pact) map[string]interface{} {
	doc := map[string]interface{}{
		"consumer": map[string]interface{}{"name": p.Consumer.Name},
		"provider": map[string]interface{}{"name": p.Provider.Name},
		"metadata": encodeMetadataWithVersion(p.Metadata, p.SpecVersion),
	}
	if len(p.Interactions) > 0 {
		arr := make([]interface{}, len(p.Interactions))
		for i, in := range p.Interactions {
			entry := encodeInteractionEntry(in)
			if p.SpecVersion == V4 {
				entry["key"] = interactionKey(in)
			}
			arr[i] = entry
		}
		doc["interactions"] = arr
	}
	if len(p.Messages) > 0 {
		arr := make([]interface{}, len(p.Messages))
		for i, msg := range p.Messages {
			arr[i] = encodeMessageEntry(msg)
		}
		doc["messages"] = arr
	}
	if len(p.SynchronousMessages) > 0 {
		arr := make([]interface{}, len(p.SynchronousMessages))
		for i, sm := range p.SynchronousMessages {
			arr[i] = encodeSynchronousMessageEntry(sm)
		}
		doc["synchronousMessages"] = arr
	}
	return doc
}

func encodeMetadataWithVersion(m map[string]map[string]string, v SpecVersion) map[string]interface{} {
	out := make(map[string]interface{}, len(m)+1)
	for section, fields := range m {
		inner := make(map[string]interface{}, len(fields))
		for k, val := range fields {
			inner[k] = val
		}
		out[section] = inner
	}
	out["pactSpecification"] = map[string]interface{}{"version": v.String()}
	return out
}

func encodeInteractionEntry(in *Interaction) map[string]interface{} {
	reqObj := encodeRequest(in.Request)
	respObj := encodeResponse(in.Response)
	if g := encodeGenerators(in.RequestGenerators); g != nil {
		reqObj["generators"] = g
	}
	if g := encodeGenerators(in.ResponseGenerators); g != nil {
		respObj["generators"] = g
	}
	out := map[string]interface{}{
		"description": in.Description,
		"request":     reqObj,
		"response":    respObj,
	}
	if ps := encodeProviderStates(in.ProviderStates); ps != nil {
		out["providerStates"] = ps
	}
	return out
}

func encodeMessageEntry(msg *Message) map[string]interface{} {
	out := encodeMessage(msg.Contents)
	out["description"] = msg.Description
	if ps := encodeProviderStates(msg.ProviderStates); ps != nil {
		out["providerStates"] = ps
	}
	if g := encodeGenerators(msg.Generators); g != nil {
		out["generators"] = g
	}
	return out
}

func encodeSynchronousMessageEntry(sm *SynchronousMessage) map[string]interface{} {
	reqObj := encodeMessage(sm.Request)
	respObj := encodeMessage(sm.Response)
	if g := encodeGenerators(sm.RequestGenerators); g != nil {
		reqObj["generators"] = g
	}
	if g := encodeGenerators(sm.ResponseGenerators); g != nil {
		respObj["generators"] = g
	}
	out := map[string]interface{}{
		"description": sm.Description,
		"request":     reqObj,
		"response":    respObj,
	}
	if ps := encodeProviderStates(sm.ProviderStates); ps != nil {
		out["providerStates"] = ps
	}
	return out
}
