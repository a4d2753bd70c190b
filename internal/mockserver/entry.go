// Package mockserver implements the mock-server core: a registry of
// in-process HTTP servers that replay a pact's expected interactions,
// record what actually happened, and report a verdict on shutdown.
package mockserver

import (
	"sync"

	"github.com/pact-foundation/pact-core-go/internal/id"
	"github.com/pact-foundation/pact-core-go/internal/matching"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

// State is a mock server's lifecycle state: Created -> Running ->
// Stopped. There is no transition back to an earlier state.
type State int

const (
	Created State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// OutcomeKind classifies one event in a server's event log.
type OutcomeKind int

const (
	// OutcomeMatched means the request matched an expected interaction
	// exactly.
	OutcomeMatched OutcomeKind = iota
	// OutcomePartial means the request matched an interaction but with
	// one or more non-fatal mismatches (wrong body, extra header, ...).
	OutcomePartial
	// OutcomeUnexpected means no configured interaction accepted the
	// request (method/path mismatch against every candidate).
	OutcomeUnexpected
)

// Event is one row of a mock server's event log. ID is
// an internal ULID, not exposed over the FFI surface, used only to
// correlate log lines when diagnosing a run after the fact.
type Event struct {
	ID                 string
	Request            matching.ExpectedRequest
	Outcome            OutcomeKind
	MatchedInteraction *pactio.Interaction
	Result             matching.RequestMatchResult
}

// Entry is a MockServerEntry: a single running (or stopped) mock
// server, its backing pact, and its event log. State and Log are guarded
// by the Entry's own mu, not by the owning Manager's lock; callers get a
// pointer so the server and the manager share one event log.
type Entry struct {
	ID    string
	Port  int
	Pact  *pactio.Pact
	State State

	mu  sync.Mutex
	Log []Event

	srv *server
}

// appendEvent records ev in arrival order. Within one Entry, events are
// always appended in request arrival order; across servers
// no ordering is implied.
func (e *Entry) appendEvent(ev Event) {
	if ev.ID == "" {
		ev.ID = id.ULID()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Log = append(e.Log, ev)
}

// Events returns a snapshot of the event log.
func (e *Entry) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.Log))
	copy(out, e.Log)
	return out
}
