package pactio

import (
	"fmt"
	"sort"
	"strings"
)

// MergeErr enumerates why Merge refused to combine two pacts.
type MergeErr int

const (
	// MergeConsumerProviderMismatch is returned when the two documents
	// don't describe the same pairing.
	MergeConsumerProviderMismatch MergeErr = iota
	// MergeConflict is returned when both documents define an interaction
	// with the same key but incompatible content.
	MergeConflict
)

// MergeError wraps a MergeErr with the conflicting keys, if any.
type MergeError struct {
	Kind MergeErr
	Keys []string
	Err  error
}

func (e *MergeError) Error() string { return e.Err.Error() }
func (e *MergeError) Unwrap() error { return e.Err }

// Merge combines incoming into existing, returning a new Pact. Existing
// interactions win ties on identical keys (no-op); genuinely conflicting
// content at the same key is reported as MergeConflict. The result's
// SpecVersion is the max of the two inputs. Keys come from interactionKey
// (description plus provider-state names); colliding keys are never
// re-keyed.
func Merge(existing, incoming *Pact) (*Pact, error) {
	if existing.Consumer.Name != incoming.Consumer.Name || existing.Provider.Name != incoming.Provider.Name {
		return nil, &MergeError{
			Kind: MergeConsumerProviderMismatch,
			Err: fmt.Errorf("pactio: cannot merge %s-%s into %s-%s",
				incoming.Consumer.Name, incoming.Provider.Name, existing.Consumer.Name, existing.Provider.Name),
		}
	}

	merged := &Pact{
		Consumer:    existing.Consumer,
		Provider:    existing.Provider,
		Metadata:    existing.Metadata,
		SpecVersion: maxSpecVersion(existing.SpecVersion, incoming.SpecVersion),
	}

	byKey := make(map[string]*Interaction, len(existing.Interactions))
	order := make([]string, 0, len(existing.Interactions))
	for _, in := range existing.Interactions {
		key := interactionKey(in)
		byKey[key] = in
		order = append(order, key)
	}

	var conflicts []string
	for _, in := range incoming.Interactions {
		key := interactionKey(in)
		if prior, ok := byKey[key]; ok {
			if !sameInteraction(prior, in) {
				conflicts = append(conflicts, key)
			}
			continue
		}
		byKey[key] = in
		order = append(order, key)
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, &MergeError{
			Kind: MergeConflict,
			Keys: conflicts,
			Err:  fmt.Errorf("pactio: conflicting interactions for keys: %s", strings.Join(conflicts, ", ")),
		}
	}
	for _, key := range order {
		merged.Interactions = append(merged.Interactions, byKey[key])
	}

	merged.Messages = mergeMessages(existing.Messages, incoming.Messages)
	merged.SynchronousMessages = mergeSynchronousMessages(existing.SynchronousMessages, incoming.SynchronousMessages)

	return merged, nil
}

func maxSpecVersion(a, b SpecVersion) SpecVersion {
	if a > b {
		return a
	}
	return b
}

// interactionKey derives a deterministic identity for an interaction from
// its description and provider states, independent of insertion order: the
// same key Merge uses for dedup is also the V4 key-derivation scheme.
func interactionKey(in *Interaction) string {
	var b strings.Builder
	b.WriteString(in.Description)
	for _, ps := range in.ProviderStates {
		b.WriteString("|")
		b.WriteString(ps.Name)
	}
	return b.String()
}

func sameInteraction(a, b *Interaction) bool {
	return a.Request.Method == b.Request.Method &&
		a.Request.Path == b.Request.Path &&
		a.Response.Status == b.Response.Status
}

func messageKey(description string, states []ProviderState) string {
	var b strings.Builder
	b.WriteString(description)
	for _, ps := range states {
		b.WriteString("|")
		b.WriteString(ps.Name)
	}
	return b.String()
}

func mergeMessages(existing, incoming []*Message) []*Message {
	seen := make(map[string]bool, len(existing))
	out := make([]*Message, 0, len(existing)+len(incoming))
	for _, m := range existing {
		seen[messageKey(m.Description, m.ProviderStates)] = true
		out = append(out, m)
	}
	for _, m := range incoming {
		key := messageKey(m.Description, m.ProviderStates)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

func mergeSynchronousMessages(existing, incoming []*SynchronousMessage) []*SynchronousMessage {
	seen := make(map[string]bool, len(existing))
	out := make([]*SynchronousMessage, 0, len(existing)+len(incoming))
	for _, m := range existing {
		seen[messageKey(m.Description, m.ProviderStates)] = true
		out = append(out, m)
	}
	for _, m := range incoming {
		key := messageKey(m.Description, m.ProviderStates)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}
