package ffi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pact-foundation/pact-core-go/internal/mockserver"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

// CreateMockServerForPact starts a mock server for a pact already under
// construction via NewPact/NewInteraction, binding to addr with optional TLS.
func CreateMockServerForPact(pact PactHandle, addr string, tls *mockserver.TLSConfig) (port int, handle MockServerHandle, err error) {
	err = global.withPact(pact, func(p *pactio.Pact) error {
		entry, cerr := global.servers.CreateForPact(p, mockserver.CreateOptions{Addr: addr, TLS: tls})
		if cerr != nil {
			return cerr
		}
		port = entry.Port
		handle = entry.ID
		return nil
	})
	return port, handle, err
}

// CreateMockServer starts a mock server directly from a serialized pact
// document, bypassing the handle-builder flow.
func CreateMockServer(pactJSON []byte, addr string, tls *mockserver.TLSConfig) (port int, handle MockServerHandle, err error) {
	entry, err := global.servers.Create(pactJSON, mockserver.CreateOptions{Addr: addr, TLS: tls})
	if err != nil {
		return 0, "", err
	}
	return entry.Port, entry.ID, nil
}

// MockServerMatched reports whether every configured interaction was
// exercised and no mismatch or unexpected request was observed.
func MockServerMatched(handle MockServerHandle) (bool, error) {
	v, err := global.servers.Verdict(handle)
	if err != nil {
		return false, err
	}
	return v.Matched, nil
}

// MockServerMismatches returns the JSON-encoded mismatch array: one row per unmatched expectation, unexpected
// request, or partial body/header/query mismatch.
func MockServerMismatches(handle MockServerHandle) (string, error) {
	v, err := global.servers.Verdict(handle)
	if err != nil {
		return "", err
	}
	rows := v.Rows
	if rows == nil {
		rows = []mockserver.MismatchRow{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("ffi: encoding mismatches: %w", err)
	}
	return string(b), nil
}

// MockServerLogs renders the server's event log as a sequence of
// human-readable lines. There is no separate
// captured-output buffer in this implementation: the event log recorded
// for verdict computation already carries everything a caller diagnosing
// a run needs, so this formats that same log rather than duplicating it.
func MockServerLogs(handle MockServerHandle) ([]string, error) {
	entry, ok := global.servers.Get(handle)
	if !ok {
		return nil, ErrInvalidHandle
	}
	events := entry.Events()
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		desc := "<none>"
		if ev.MatchedInteraction != nil {
			desc = ev.MatchedInteraction.Description
		}
		lines = append(lines, fmt.Sprintf("[%s] %s %s -> %s (matched: %s)",
			ev.ID, ev.Request.Method, ev.Request.Path, outcomeLabel(ev.Outcome), desc))
	}
	return lines, nil
}

func outcomeLabel(o mockserver.OutcomeKind) string {
	switch o {
	case mockserver.OutcomeMatched:
		return "matched"
	case mockserver.OutcomePartial:
		return "partial"
	case mockserver.OutcomeUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// CleanupMockServer stops the server and discards its registry entry.
func CleanupMockServer(ctx context.Context, handle MockServerHandle) error {
	return global.servers.Cleanup(ctx, handle)
}

// WritePactFile serializes the pact built under h to dir. Since this registry's pacts aren't necessarily bound
// to a running mock server, it writes directly via pactio rather than
// through the Manager, which only knows about pacts attached to a server
// it started.
func WritePactFile(pact PactHandle, dir string) error {
	return global.withPact(pact, func(p *pactio.Pact) error {
		return pactio.Write(dir, p, nil)
	})
}

// WriteMessagePactFile serializes the message pact built under h to dir.
func WriteMessagePactFile(pact MessagePactHandle, dir string) error {
	return global.withMessagePact(pact, func(p *pactio.Pact) error {
		return pactio.Write(dir, p, nil)
	})
}

// GetTLSCACertificate returns the self-signed CA certificate generated for
// a TLS mock server, PEM-encoded.
func GetTLSCACertificate(handle MockServerHandle) ([]byte, error) {
	return global.servers.TLSCACert(handle)
}
